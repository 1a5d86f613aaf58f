package history

import "strings"

const DefaultCapacity = 32

// Entry is one accepted command line. Seq is assigned at append time and
// never reused, even after the entry is evicted.
type Entry struct {
	Seq  int
	Text string
}

// Store is a fixed-capacity ring of entries. Live sequence numbers always
// form the contiguous range [first, first+count).
type Store struct {
	slots []Entry
	start int
	count int
}

func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{slots: make([]Entry, capacity)}
}

func (s *Store) Cap() int { return len(s.slots) }

func (s *Store) Len() int { return s.count }

// Append records text and returns the stored entry. Once the ring is
// full the oldest entry is overwritten.
func (s *Store) Append(text string) Entry {
	seq := 1
	if s.count > 0 {
		seq = s.slot(s.count-1).Seq + 1
	}
	e := Entry{Seq: seq, Text: text}

	if s.count < len(s.slots) {
		s.slots[(s.start+s.count)%len(s.slots)] = e
		s.count++
		return e
	}
	s.slots[s.start] = e
	s.start = (s.start + 1) % len(s.slots)
	return e
}

// BySeq resolves an absolute sequence number.
func (s *Store) BySeq(n int) (Entry, bool) {
	if s.count == 0 {
		return Entry{}, false
	}
	first := s.slots[s.start].Seq
	if n < first || n >= first+s.count {
		return Entry{}, false
	}
	return s.slot(n - first), true
}

// Relative resolves a negative offset from the end: -1 is the most recent
// entry, -Len() the oldest live one.
func (s *Store) Relative(offset int) (Entry, bool) {
	if offset >= 0 || s.count+offset < 0 {
		return Entry{}, false
	}
	return s.slot(s.count + offset), true
}

// Prefix returns the most recent entry whose text starts with prefix. An
// empty prefix never matches.
func (s *Store) Prefix(prefix string) (Entry, bool) {
	if prefix == "" {
		return Entry{}, false
	}
	for i := s.count - 1; i >= 0; i-- {
		if e := s.slot(i); strings.HasPrefix(e.Text, prefix) {
			return e, true
		}
	}
	return Entry{}, false
}

// Last is the "!!" lookup.
func (s *Store) Last() (Entry, bool) {
	return s.Relative(-1)
}

// Entries returns the live entries oldest first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, s.count)
	for i := 0; i < s.count; i++ {
		out = append(out, s.slot(i))
	}
	return out
}

func (s *Store) slot(i int) Entry {
	return s.slots[(s.start+i)%len(s.slots)]
}
