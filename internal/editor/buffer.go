package editor

import "github.com/baaaaaaaka/mysh/internal/history"

// Recaller resolves history entries relative to the most recent one.
type Recaller interface {
	Relative(offset int) (history.Entry, bool)
}

// Buffer is the line being composed plus the history browse state. While
// browsing (offset < 0) the displayed text is the previewed entry and the
// live text is left untouched until the first edit copies the preview in.
type Buffer struct {
	text     []byte
	capacity int
	cursor   int

	offset  int
	preview string
}

// NewBuffer returns an empty buffer holding at most capacity bytes.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{text: make([]byte, 0, capacity), capacity: capacity}
}

// Display returns the text currently shown and the cursor within it.
func (b *Buffer) Display() (string, int) {
	if b.offset != 0 {
		return b.preview, b.cursor
	}
	return string(b.text), b.cursor
}

func (b *Buffer) Offset() int { return b.offset }

func (b *Buffer) Browsing() bool { return b.offset != 0 }

func (b *Buffer) Len() int {
	if b.offset != 0 {
		return len(b.preview)
	}
	return len(b.text)
}

func (b *Buffer) Cursor() int { return b.cursor }

// Insert puts ch at the cursor. It reports false when the buffer is full.
func (b *Buffer) Insert(ch byte) bool {
	b.materialize()
	if len(b.text) >= b.capacity {
		return false
	}
	b.text = append(b.text, 0)
	copy(b.text[b.cursor+1:], b.text[b.cursor:])
	b.text[b.cursor] = ch
	b.cursor++
	return true
}

// DeleteBefore removes the byte left of the cursor.
func (b *Buffer) DeleteBefore() bool {
	if b.cursor == 0 {
		return false
	}
	b.materialize()
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	return true
}

// DeleteAt removes the byte under the cursor.
func (b *Buffer) DeleteAt() bool {
	if b.cursor >= b.Len() {
		return false
	}
	b.materialize()
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
	return true
}

func (b *Buffer) MoveLeft() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

func (b *Buffer) MoveRight() bool {
	if b.cursor >= b.Len() {
		return false
	}
	b.cursor++
	return true
}

func (b *Buffer) MoveHome() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor = 0
	return true
}

func (b *Buffer) MoveEnd() bool {
	if b.cursor == b.Len() {
		return false
	}
	b.cursor = b.Len()
	return true
}

// HistoryUp previews the entry one step older than the current one. It
// reports false, changing nothing, when no such entry exists.
func (b *Buffer) HistoryUp(h Recaller) bool {
	e, ok := h.Relative(b.offset - 1)
	if !ok {
		return false
	}
	b.offset--
	b.preview = e.Text
	b.cursor = len(e.Text)
	return true
}

// HistoryDown previews the next newer entry, or returns to the live text
// once the newest entry is passed.
func (b *Buffer) HistoryDown(h Recaller) bool {
	if b.offset == 0 {
		return false
	}
	b.offset++
	if b.offset != 0 {
		if e, ok := h.Relative(b.offset); ok {
			b.preview = e.Text
			b.cursor = len(e.Text)
			return true
		}
		b.offset = 0
	}
	b.preview = ""
	b.cursor = len(b.text)
	return true
}

// Commit returns the accepted line. A line accepted while browsing is the
// previewed entry.
func (b *Buffer) Commit() string {
	b.materialize()
	return string(b.text)
}

// materialize copies the previewed entry into the live text and leaves
// browse mode. Entries longer than the capacity are cut to fit.
func (b *Buffer) materialize() {
	if b.offset == 0 {
		return
	}
	text := b.preview
	if len(text) > b.capacity {
		text = text[:b.capacity]
	}
	b.text = append(b.text[:0], text...)
	if b.cursor > len(b.text) {
		b.cursor = len(b.text)
	}
	b.offset = 0
	b.preview = ""
}
