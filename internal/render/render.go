// Package render redraws the edit line in place using only carriage
// return, plain characters and backspaces.
package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	markerLeft  = '<'
	markerRight = '>'
	filler      = '#'
)

// Line is what one redraw shows.
type Line struct {
	Prompt string
	Width  int // terminal columns
	Text   string
	Cursor int
}

// Avail is the number of text columns left by the prompt, the separator
// cell before the text and the marker cell after it.
func Avail(prompt string, width int) int {
	return width - runewidth.StringWidth(prompt) - 2
}

// Scroll adjusts the previous scroll offset s so that the window
// [s, s+avail] covers the cursor, moving it as little as possible.
// Lines that fit have offset 0.
func Scroll(s, avail, length, cursor int) int {
	if avail <= 0 || avail >= length {
		return 0
	}
	if length-s < avail {
		s = length - avail
	}
	if cursor < s {
		s = cursor
	} else if cursor > s+avail {
		s = cursor - avail
	}
	if s < 0 {
		s = 0
	}
	return s
}

// Draw writes one redraw of l to w and returns the scroll offset to pass
// to the next call.
func Draw(w io.Writer, l Line, s int) (int, error) {
	var b bytes.Buffer
	b.WriteByte('\r')

	avail := Avail(l.Prompt, l.Width)
	length := len(l.Text)
	switch {
	case avail <= 0:
		prompt := runewidth.Truncate(l.Prompt, l.Width, "")
		b.WriteString(prompt)
		if used := runewidth.StringWidth(prompt); used < l.Width {
			b.WriteByte(' ')
			b.WriteString(strings.Repeat(string(filler), l.Width-used-1))
		}

	case avail >= length:
		s = 0
		b.WriteString(l.Prompt)
		b.WriteByte(' ')
		b.WriteString(l.Text)
		b.WriteString(strings.Repeat(" ", avail+1-length))
		b.WriteString(strings.Repeat("\b", avail+1-l.Cursor))

	default:
		s = Scroll(s, avail, length, l.Cursor)
		b.WriteString(l.Prompt)
		if s > 0 {
			b.WriteByte(markerLeft)
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(l.Text[s : s+avail])
		if length > s+avail {
			b.WriteByte(markerRight)
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(strings.Repeat("\b", s+avail+1-l.Cursor))
	}

	_, err := w.Write(b.Bytes())
	return s, err
}
