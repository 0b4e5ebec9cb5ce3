package ui

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/ederatone/drawide/painter"
	"github.com/ederatone/drawide/painter/lang"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// clickRadius is the radius of the circle command inserted by a right click.
const clickRadius = 20

// TextEvent carries a complete replacement buffer to the UI goroutine.
type TextEvent struct {
	Text string
}

// Visualizer manages the application window: keystrokes go into Editor,
// every edit rebuilds the scene, and textures from Loop are shown on screen.
type Visualizer struct {
	Title         string
	Width, Height int

	Loop    *painter.Loop
	Builder *lang.Builder
	Editor  *Editor

	pw screen.Window
	sz size.Event

	mu      sync.Mutex
	tx      screen.Texture
	pending *string // replacement text that arrived before the window existed
}

// Update receives a texture from the painter loop and schedules a repaint.
func (v *Visualizer) Update(t screen.Texture) {
	v.mu.Lock()
	v.tx = t
	pw := v.pw
	v.mu.Unlock()
	if pw != nil {
		pw.Send(paint.Event{})
	}
}

// TextChanged is the editor's change listener: it re-evaluates the full buffer.
func (v *Visualizer) TextChanged(text string) {
	scene, errs := lang.Submit(v.Loop, v.Builder, text)
	for _, e := range errs {
		painter.Logger().Debug("diagnostic", "line", e.Line, "err", e.Err)
	}
	painter.Logger().Debug("text changed", "bytes", len(text), "shapes", len(scene))
}

// ReplaceText hands a complete buffer to the UI goroutine, which applies it
// with ApplyText. It is safe to call from any goroutine. Text that arrives
// before the window is open is applied once it is.
func (v *Visualizer) ReplaceText(text string) {
	v.mu.Lock()
	pw := v.pw
	if pw == nil {
		v.pending = &text
	}
	v.mu.Unlock()
	if pw != nil {
		pw.Send(TextEvent{Text: text})
	}
}

// ApplyText replaces the editor buffer. It must run on the UI goroutine.
func (v *Visualizer) ApplyText(text string) {
	painter.Logger().Debug("buffer replaced", "bytes", len(text))
	v.Editor.SetText(text)
}

// HandleKey applies one key event to the editor. It reports whether the
// window should close.
func (v *Visualizer) HandleKey(e key.Event) (quit bool) {
	if e.Direction == key.DirRelease {
		return false
	}
	switch e.Code {
	case key.CodeEscape:
		return true
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		v.Editor.Newline()
	case key.CodeDeleteBackspace:
		v.Editor.Backspace()
	default:
		if e.Rune >= ' ' && e.Modifiers&(key.ModControl|key.ModMeta) == 0 {
			v.Editor.Insert(e.Rune)
		}
	}
	return false
}

// SetSize records the window size used to map clicks to canvas coordinates.
func (v *Visualizer) SetSize(e size.Event) {
	v.sz = e
}

// HandleMouse appends a circle command at the point of a right click.
func (v *Visualizer) HandleMouse(e mouse.Event) {
	if e.Button != mouse.ButtonRight || e.Direction != mouse.DirPress {
		return
	}
	if v.sz.WidthPx == 0 || v.sz.HeightPx == 0 {
		return
	}
	x := int(float64(e.X) * float64(v.Width) / float64(v.sz.WidthPx))
	y := int(float64(e.Y) * float64(v.Height) / float64(v.sz.HeightPx))

	text := v.Editor.Text()
	if text != "" && text[len(text)-1] != '\n' {
		text += "\n"
	}
	v.Editor.SetText(text + fmt.Sprintf("circle %d %d %d", x, y, clickRadius))
}

// Main opens the window, starts the painter loop and runs the UI event loop
// until the window is closed or Escape is pressed.
func (v *Visualizer) Main() error {
	if v.Editor == nil {
		v.Editor = &Editor{}
	}
	if v.Editor.OnChange == nil {
		v.Editor.OnChange = v.TextChanged
	}
	log := painter.Logger().With("component", "ui")

	var mainErr error
	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  v.Title,
			Width:  v.Width,
			Height: v.Height,
		})
		if err != nil {
			mainErr = fmt.Errorf("ui: create window: %w", err)
			return
		}
		defer w.Release()

		v.mu.Lock()
		v.pw = w
		pending := v.pending
		v.pending = nil
		v.mu.Unlock()

		if err := v.Loop.Start(s); err != nil {
			mainErr = err
			return
		}
		defer v.Loop.Stop()

		if pending != nil {
			v.ApplyText(*pending)
		} else if text := v.Editor.Text(); text != "" {
			v.Editor.OnChange(text)
		}

		for {
			switch e := w.NextEvent().(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}
				if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOn {
					w.Send(paint.Event{})
				}

			case size.Event:
				v.SetSize(e)
				w.Send(paint.Event{})

			case paint.Event:
				v.mu.Lock()
				tx := v.tx
				v.mu.Unlock()
				if tx != nil {
					w.Scale(v.sz.Bounds(), tx, tx.Bounds(), screen.Src, nil)
				} else {
					w.Fill(v.sz.Bounds(), color.White, screen.Src)
				}
				w.Publish()

			case mouse.Event:
				v.HandleMouse(e)

			case TextEvent:
				v.ApplyText(e.Text)

			case key.Event:
				if v.HandleKey(e) {
					log.Info("escape pressed, closing window")
					return
				}

			case error:
				log.Error("window event", "err", e)
			}
		}
	})
	return mainErr
}
