// Package lock implements the full-screen password lock.
package lock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const MaxPasswordLen = 20

var (
	ErrCanceled    = errors.New("password lock canceled")
	ErrEndOfStream = errors.New("unexpected end of stream")
)

var newScreen = tcell.NewScreen

type phase int

const (
	phaseSet phase = iota
	phaseCheck
	phaseLocked
	phaseUnlocked
)

var phasePrompts = map[phase]string{
	phaseSet:    "Set password: ",
	phaseCheck:  "Check password: ",
	phaseLocked: "Password: ",
}

// machine holds the lock state independent of the screen.
type machine struct {
	phase    phase
	password string
	typed    []byte
	message  string
}

type quitEvent struct{ when time.Time }

func (e *quitEvent) When() time.Time { return e.when }

// Run sets a password, then blocks on a locked screen until the same
// password is typed again. Interrupt keys are ignored throughout.
func Run(ctx context.Context) error {
	screen, err := newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			screen.PostEvent(&quitEvent{when: time.Now()})
		case <-done:
		}
	}()

	m := &machine{}
	for {
		draw(screen, m)
		switch ev := screen.PollEvent().(type) {
		case nil:
			return ErrEndOfStream
		case *quitEvent:
			return ctx.Err()
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if err := m.key(ev); err != nil {
				return err
			}
			if m.phase == phaseUnlocked {
				return nil
			}
		}
	}
}

func (m *machine) key(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		return m.submit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(m.typed) > 0 {
			m.typed = m.typed[:len(m.typed)-1]
		}
	case tcell.KeyCtrlD:
		if m.phase != phaseLocked {
			return ErrEndOfStream
		}
	case tcell.KeyRune:
		ch := ev.Rune()
		if ch > ' ' && ch < 0x7f && len(m.typed) < MaxPasswordLen {
			m.typed = append(m.typed, byte(ch))
		}
	}
	return nil
}

func (m *machine) submit() error {
	typed := string(m.typed)
	m.typed = m.typed[:0]
	switch m.phase {
	case phaseSet:
		if typed == "" {
			return ErrCanceled
		}
		m.password = typed
		m.phase = phaseCheck
		m.message = ""
	case phaseCheck:
		if typed == m.password {
			m.phase = phaseLocked
			m.message = ""
			return nil
		}
		m.password = ""
		m.phase = phaseSet
		m.message = "Password check failed"
	case phaseLocked:
		if typed == m.password {
			m.phase = phaseUnlocked
			return nil
		}
		m.message = "Invalid password"
	}
	return nil
}

func draw(screen tcell.Screen, m *machine) {
	screen.Clear()
	w, h := screen.Size()
	style := tcell.StyleDefault
	y := 0
	if m.phase == phaseLocked {
		y = h / 2
		title := "mysh is locked"
		writeText(screen, centered(title, w), y-2, title, style.Bold(true))
	}
	line := phasePrompts[m.phase] + strings.Repeat("*", len(m.typed))
	x := 0
	if m.phase == phaseLocked {
		x = centered(phasePrompts[phaseLocked]+strings.Repeat("*", MaxPasswordLen), w)
	}
	writeText(screen, x, y, line, style)
	screen.ShowCursor(x+runewidth.StringWidth(line), y)
	if m.message != "" {
		writeText(screen, x, y+1, m.message, style.Foreground(tcell.ColorRed))
	}
	screen.Show()
}

func centered(s string, width int) int {
	x := (width - runewidth.StringWidth(s)) / 2
	if x < 0 {
		return 0
	}
	return x
}

func writeText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	if y < 0 {
		return
	}
	offset := 0
	for _, ch := range text {
		width := runewidth.RuneWidth(ch)
		if width == 0 {
			continue
		}
		screen.SetContent(x+offset, y, ch, nil, style)
		offset += width
	}
}
