//go:build windows

package paste

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"promptline/shortcut"
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	sendInput      = user32.NewProc("SendInput")
	mapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

const (
	inputKeyboard        = 1
	keyeventfExtendedKey = 0x0001
	keyeventfKeyup       = 0x0002
	mapvkVkToVsc         = 0
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // union is sized by MOUSEINPUT
}

type sendInputInjector struct{}

// NewInjector returns the SendInput injector.
func NewInjector() (Injector, error) {
	if err := sendInput.Find(); err != nil {
		return nil, fmt.Errorf("SendInput unavailable: %w", err)
	}
	return sendInputInjector{}, nil
}

func (sendInputInjector) Inject(events []Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	inputs := make([]input, 0, len(events))
	for _, ev := range events {
		vk, ok := shortcut.Code(ev.Key)
		if !ok {
			return 0, fmt.Errorf("no virtual-key code for %s", ev.Key)
		}
		scan, _, _ := mapVirtualKeyW.Call(uintptr(vk), mapvkVkToVsc)
		var flags uint32
		if ev.Key.Extended() {
			flags |= keyeventfExtendedKey
		}
		if ev.Up {
			flags |= keyeventfKeyup
		}
		inputs = append(inputs, input{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wVk:     vk,
				wScan:   uint16(scan),
				dwFlags: flags,
			},
		})
	}

	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if ret == 0 {
		return 0, fmt.Errorf("SendInput failed: %w", err)
	}
	return int(ret), nil
}
