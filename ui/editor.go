package ui

import "unicode/utf8"

// Editor is the command text buffer. Every mutation reports the complete
// new text to OnChange.
type Editor struct {
	OnChange func(text string)

	text []byte
}

// Text returns the current buffer contents.
func (e *Editor) Text() string { return string(e.text) }

// SetText replaces the whole buffer.
func (e *Editor) SetText(s string) {
	e.text = append(e.text[:0], s...)
	e.changed()
}

// Insert appends r at the end of the buffer.
func (e *Editor) Insert(r rune) {
	e.text = utf8.AppendRune(e.text, r)
	e.changed()
}

// Newline starts a new command line.
func (e *Editor) Newline() { e.Insert('\n') }

// Backspace removes the last rune. It is a no-op on an empty buffer.
func (e *Editor) Backspace() {
	if len(e.text) == 0 {
		return
	}
	_, n := utf8.DecodeLastRune(e.text)
	e.text = e.text[:len(e.text)-n]
	e.changed()
}

func (e *Editor) changed() {
	if e.OnChange != nil {
		e.OnChange(string(e.text))
	}
}
