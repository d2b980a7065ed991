//go:build linux

package paste

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"promptline/shortcut"
)

// ioctl constants from linux/uinput.h
const (
	uiSetEvbit  = 0x40045564 // UI_SET_EVBIT
	uiSetKeybit = 0x40045565 // UI_SET_KEYBIT
	uiDevCreate = 0x5501     // UI_DEV_CREATE
)

// input event types from linux/input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
)

const (
	busUSB     = 0x03
	deviceName = "promptline"
	eventGap   = 5 * time.Millisecond
)

type inputEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type uinputUserDev struct {
	Name         [80]byte
	ID           inputID
	FfEffectsMax uint32
	Absmax       [64]int32
	Absmin       [64]int32
	Absfuzz      [64]int32
	Absflat      [64]int32
}

var (
	fd     *os.File
	fdOnce sync.Once
	fdErr  error
	fdMu   sync.Mutex
)

type uinputInjector struct{}

// NewInjector creates (once per process) a virtual keyboard on /dev/uinput.
func NewInjector() (Injector, error) {
	if err := initUinput(); err != nil {
		return nil, err
	}
	return uinputInjector{}, nil
}

func initUinput() error {
	fdOnce.Do(func() {
		path := "/dev/uinput"
		if _, err := os.Stat(path); err != nil {
			path = "/dev/input/uinput"
			if _, err := os.Stat(path); err != nil {
				fdErr = errors.New("uinput device not found, try: sudo modprobe uinput")
				return
			}
		}
		f, err := os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, os.ModeDevice)
		if err != nil {
			fdErr = err
			return
		}
		if err := ioctl(f, uiSetEvbit, evKey); err != nil {
			fdErr = err
			f.Close()
			return
		}
		if err := ioctl(f, uiSetEvbit, evSyn); err != nil {
			fdErr = err
			f.Close()
			return
		}
		// Register all standard keys so udev classifies this as a keyboard
		for i := uintptr(0); i < 256; i++ {
			if err := ioctl(f, uiSetKeybit, i); err != nil {
				fdErr = err
				f.Close()
				return
			}
		}
		dev := uinputUserDev{}
		copy(dev.Name[:], deviceName)
		dev.ID.Bustype = busUSB
		dev.ID.Vendor = 0x1234
		dev.ID.Product = 0x5679
		dev.ID.Version = 1
		if err := binary.Write(f, binary.LittleEndian, &dev); err != nil {
			fdErr = err
			f.Close()
			return
		}
		if err := ioctl(f, uiDevCreate, 0); err != nil {
			fdErr = err
			f.Close()
			return
		}
		fd = f
		// Give compositor time to recognize the new input device
		time.Sleep(200 * time.Millisecond)
	})
	return fdErr
}

func ioctl(f *os.File, req, arg uintptr) error {
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), req, arg); errno != 0 {
		return errno
	}
	return nil
}

func writeEvent(typ, code uint16, value int32) error {
	ev := inputEvent{Type: typ, Code: code, Value: value}
	return binary.Write(fd, binary.LittleEndian, &ev)
}

func syn() error {
	return writeEvent(evSyn, 0, 0)
}

// Inject writes each event followed by a SYN report. The short gap lets
// the compositor register modifier state before the next key.
func (uinputInjector) Inject(events []Event) (int, error) {
	codes := make([]uint16, len(events))
	for i, ev := range events {
		c, ok := shortcut.Code(ev.Key)
		if !ok {
			return 0, fmt.Errorf("no evdev code for %s", ev.Key)
		}
		codes[i] = c
	}

	fdMu.Lock()
	defer fdMu.Unlock()
	for i, ev := range events {
		if i > 0 {
			time.Sleep(eventGap)
		}
		var value int32 = 1
		if ev.Up {
			value = 0
		}
		if err := writeEvent(evKey, codes[i], value); err != nil {
			return i, err
		}
		if err := syn(); err != nil {
			return i, err
		}
	}
	return len(events), nil
}

// Verify sends Ctrl+V through the virtual keyboard and reads the events
// back from its evdev node.
func Verify() (string, error) {
	if err := initUinput(); err != nil {
		return "", fmt.Errorf("uinput init: %w", err)
	}

	entries, err := os.ReadDir("/sys/class/input")
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}

	var evdevPath string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		data, err := os.ReadFile(filepath.Join("/sys/class/input", e.Name(), "device", "name"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(data)) == deviceName {
			evdevPath = filepath.Join("/dev/input", e.Name())
			break
		}
	}
	if evdevPath == "" {
		return "", errors.New(deviceName + " evdev device not found")
	}

	evdev, err := os.Open(evdevPath)
	if err != nil {
		return "", fmt.Errorf("cannot open %s: %w", evdevPath, err)
	}
	defer evdev.Close()

	ctrl, _ := shortcut.Code(shortcut.KeyCtrl)
	v, _ := shortcut.Code("V")
	if _, err := (uinputInjector{}).Inject(Sequence(shortcut.MustParse("Ctrl+V"))); err != nil {
		return "", fmt.Errorf("inject: %w", err)
	}

	type result struct {
		ctrl, v bool
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		buf := make([]byte, 24*32)
		var r result
		n, err := evdev.Read(buf)
		if err != nil {
			r.err = err
			ch <- r
			return
		}
		for i := 0; i+24 <= n; i += 24 {
			if binary.LittleEndian.Uint16(buf[i+16:]) != evKey {
				continue
			}
			switch binary.LittleEndian.Uint16(buf[i+18:]) {
			case ctrl:
				r.ctrl = true
			case v:
				r.v = true
			}
		}
		ch <- r
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("reading events: %w", r.err)
		}
		if !r.ctrl || !r.v {
			return "", fmt.Errorf("missing events (ctrl=%v, v=%v)", r.ctrl, r.v)
		}
		return fmt.Sprintf("Ctrl+V keystroke verified via %s", evdevPath), nil
	case <-time.After(500 * time.Millisecond):
		return "", errors.New("timed out waiting for keystroke events")
	}
}
