//go:build windows

package beep

import "golang.org/x/sys/windows"

var procMessageBeep = windows.NewLazySystemDLL("user32.dll").NewProc("MessageBeep")

// MessageBeep sound types.
const (
	mbOK       = 0x00000000
	mbIconHand = 0x00000010
)

func Init() {}

func play(s Sound) {
	kind := uintptr(mbOK)
	if s == Error {
		kind = mbIconHand
	}
	go procMessageBeep.Call(kind)
}
