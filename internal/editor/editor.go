// Package editor reads one command line from a raw-mode terminal,
// applying cursor edits and history browsing and redrawing after each.
package editor

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/baaaaaaaka/mysh/internal/render"
	"github.com/baaaaaaaka/mysh/internal/term"
)

// ErrInterrupted is returned when the user discards the line with ^C.
var ErrInterrupted = errors.New("interrupted")

// Terminal is the part of term.Driver the editor needs.
type Terminal interface {
	ReadEvent() (term.Event, error)
	Size() (width, height int, err error)
}

type Options struct {
	Terminal Terminal
	Out      io.Writer
	History  Recaller
	// MaxLineLen is the line buffer size; lines hold at most MaxLineLen-1
	// bytes.
	MaxLineLen int
	Logger     *zap.Logger
}

type Editor struct {
	term    Terminal
	out     io.Writer
	history Recaller
	maxLen  int
	log     *zap.Logger
}

func New(opts Options) *Editor {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{
		term:    opts.Terminal,
		out:     opts.Out,
		history: opts.History,
		maxLen:  opts.MaxLineLen,
		log:     log,
	}
}

// ReadLine edits a fresh line behind prompt until Enter, ^C or end of
// input. End of input, including ^D, yields io.EOF.
func (e *Editor) ReadLine(prompt string) (string, error) {
	buf := NewBuffer(e.maxLen - 1)
	scroll := e.redraw(prompt, buf, 0)

	for {
		ev, err := e.term.ReadEvent()
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}

		changed := false
		switch ev.Key {
		case term.KeyEnter:
			line := buf.Commit()
			_, _ = io.WriteString(e.out, "\n")
			return line, nil
		case term.KeyEOF:
			_, _ = io.WriteString(e.out, "\n")
			return "", io.EOF
		case term.KeyInterrupt:
			_, _ = io.WriteString(e.out, "^C\n")
			return "", ErrInterrupted
		case term.KeyRune:
			changed = buf.Insert(ev.Ch)
		case term.KeyBackspace:
			changed = buf.DeleteBefore()
		case term.KeyDelete:
			changed = buf.DeleteAt()
		case term.KeyLeft:
			changed = buf.MoveLeft()
		case term.KeyRight:
			changed = buf.MoveRight()
		case term.KeyHome:
			changed = buf.MoveHome()
		case term.KeyEnd:
			changed = buf.MoveEnd()
		case term.KeyUp:
			if e.history != nil {
				changed = buf.HistoryUp(e.history)
			}
		case term.KeyDown:
			if e.history != nil {
				changed = buf.HistoryDown(e.history)
			}
		}
		if changed {
			scroll = e.redraw(prompt, buf, scroll)
		}
	}
}

// redraw skips the frame entirely when the terminal size is unknown.
func (e *Editor) redraw(prompt string, buf *Buffer, scroll int) int {
	width, _, err := e.term.Size()
	if err != nil {
		e.log.Debug("skip redraw", zap.Error(err))
		return scroll
	}
	text, cursor := buf.Display()
	next, err := render.Draw(e.out, render.Line{
		Prompt: prompt,
		Width:  width,
		Text:   text,
		Cursor: cursor,
	}, scroll)
	if err != nil {
		e.log.Debug("redraw failed", zap.Error(err))
	}
	return next
}
