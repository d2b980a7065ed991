//go:build gui

// Package gui is the fyne capture window with a tray menu.
package gui

import (
	"fmt"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"promptline/config"
	"promptline/history"
	"promptline/log"
	"promptline/tray"
)

// Backend is what the window drives; *pipeline.Pipeline satisfies it.
type Backend interface {
	Submit(text string) error
	Dismiss(text string)
	Toggle()
	Entries() []history.Entry
	Search(query string) []history.Entry
}

// App implements pipeline.Surface on top of a fyne window.
type App struct {
	backend Backend
	cfg     *config.Config
	onReady func()

	fyneApp fyne.App
	window  fyne.Window
	entry   *captureEntry
	search  *widget.Entry
	list    *widget.List
	status  *widget.Label

	visible atomic.Bool

	mu    sync.Mutex
	shown []history.Entry
}

func NewApp(b Backend, cfg *config.Config, onReady func()) *App {
	return &App{backend: b, cfg: cfg, onReady: onReady}
}

// Run owns the calling (main) thread until Quit.
func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.promptline.gui")
	a.fyneApp.Settings().SetTheme(&darkTheme{window: a.cfg.Window})

	if desk, ok := a.fyneApp.(desktop.App); ok {
		menu := fyne.NewMenu("promptline",
			fyne.NewMenuItem("Show", func() { go a.backend.Toggle() }),
			fyne.NewMenuItem("Quit", func() { a.fyneApp.Quit() }),
		)
		desk.SetSystemTrayMenu(menu)
		a.setTrayState(tray.Idle)
	}

	a.window = a.fyneApp.NewWindow("promptline")
	a.window.SetContent(a.build())
	a.window.Resize(fyne.NewSize(float32(a.cfg.Window.Width()), float32(a.cfg.Window.Height())))
	a.window.SetFixedSize(true)
	a.window.CenterOnScreen()
	a.window.SetCloseIntercept(a.dismiss)

	go a.onReady()

	// The window stays hidden until the first Show.
	a.fyneApp.Run()
	return nil
}

func (a *App) build() fyne.CanvasObject {
	sc := a.cfg.Shortcuts

	a.entry = newCaptureEntry(a.cfg.Window.TextareaRows)
	a.entry.SetPlaceHolder("Type, then " + sc.Paste + " to paste")
	for chord, fn := range map[string]func(){
		sc.Paste: a.submit,
		sc.Close: a.dismiss,
		sc.Clear: func() { a.entry.SetText("") },
		sc.Search: func() {
			a.window.Canvas().Focus(a.search)
		},
		sc.LineStart:   a.entry.send(fyne.KeyHome),
		sc.LineEnd:     a.entry.send(fyne.KeyEnd),
		sc.CharBack:    a.entry.send(fyne.KeyLeft),
		sc.CharForward: a.entry.send(fyne.KeyRight),
		sc.DeleteChar:  a.entry.send(fyne.KeyDelete),
	} {
		if !a.entry.bind(chord, fn) {
			log.Warnf("gui: cannot bind %q", chord)
		}
	}

	a.search = widget.NewEntry()
	a.search.SetPlaceHolder("Search history")
	a.search.OnChanged = a.refresh

	a.list = widget.NewList(
		func() int {
			a.mu.Lock()
			defer a.mu.Unlock()
			return len(a.shown)
		},
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Truncation = fyne.TextTruncateEllipsis
			l.SizeName = theme.SizeNameCaptionText
			return l
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			a.mu.Lock()
			defer a.mu.Unlock()
			if id < len(a.shown) {
				o.(*widget.Label).SetText(a.shown[id].Text)
			}
		},
	)
	a.list.OnSelected = func(id widget.ListItemID) {
		a.mu.Lock()
		var text string
		if id < len(a.shown) {
			text = a.shown[id].Text
		}
		a.mu.Unlock()
		a.entry.SetText(text)
		a.list.UnselectAll()
		a.window.Canvas().Focus(a.entry)
	}

	a.status = widget.NewLabel("")
	a.status.Importance = widget.DangerImportance

	buttons := container.NewHBox(
		a.status,
		layout.NewSpacer(),
		widget.NewButton("Close", a.dismiss),
		widget.NewButton("Paste", a.submit),
	)
	top := container.NewBorder(a.search, nil, nil, nil, a.list)
	return container.NewBorder(nil, buttons, nil, nil, container.NewVSplit(top, a.entry))
}

func (a *App) refresh(query string) {
	var entries []history.Entry
	if query == "" {
		entries = a.backend.Entries()
	} else {
		entries = a.backend.Search(query)
	}
	a.mu.Lock()
	a.shown = entries
	a.mu.Unlock()
	a.list.Refresh()
}

func (a *App) submit() {
	text := a.entry.Text
	go a.backend.Submit(text)
}

func (a *App) dismiss() {
	text := a.entry.Text
	go a.backend.Dismiss(text)
}

func (a *App) setTrayState(s tray.State) {
	desk, ok := a.fyneApp.(desktop.App)
	if !ok {
		return
	}
	desk.SetSystemTrayIcon(fyne.NewStaticResource(fmt.Sprintf("tray-%s.png", s), tray.Icon(s)))
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}

func (a *App) Show(draft string) {
	a.visible.Store(true)
	fyne.Do(func() {
		a.status.SetText("")
		a.search.SetText("")
		a.refresh("")
		a.entry.SetText(draft)
		a.setTrayState(tray.Capturing)
		a.window.Show()
		a.window.RequestFocus()
		a.window.Canvas().Focus(a.entry)
	})
}

func (a *App) Hide() {
	a.visible.Store(false)
	fyne.Do(func() {
		a.window.Hide()
		a.entry.SetText("")
		a.setTrayState(tray.Idle)
	})
}

func (a *App) Visible() bool { return a.visible.Load() }

// Failed shows err in the window and as a desktop notification, since the
// window is usually hidden by the time a paste fails.
func (a *App) Failed(err error) {
	fyne.Do(func() {
		a.status.SetText(err.Error())
		a.setTrayState(tray.Failed)
		a.fyneApp.SendNotification(fyne.NewNotification("promptline", err.Error()))
	})
}

// Text is the unsent editor content.
func (a *App) Text() string {
	var text string
	fyne.DoAndWait(func() { text = a.entry.Text })
	return text
}
