package term

import (
	"errors"
	"io"
)

type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyInterrupt
	KeyEOF
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyDelete
	KeyHome
	KeyEnd
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyInterrupt: "interrupt",
	KeyEOF:       "eof",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyDelete:    "delete",
	KeyHome:      "home",
	KeyEnd:       "end",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one decoded input unit. Ch is set only for KeyRune.
type Event struct {
	Key Key
	Ch  byte
}

const (
	byteInterrupt = 3
	byteEOT       = 4
	byteBS        = 8
	byteLF        = '\n'
	byteCR        = '\r'
	byteESC       = 27
	byteDEL       = 127
)

type escState int

const (
	escStart escState = iota
	escCSI
	escCSIDelete
	escSS3
)

// escStep is one edge of the escape decoder: either a further state or a
// resolved key. A byte with no edge discards the sequence.
type escStep struct {
	next escState
	key  Key
}

var escTable = map[escState]map[byte]escStep{
	escStart: {
		'[': {next: escCSI},
		'O': {next: escSS3},
	},
	escCSI: {
		'A': {key: KeyUp},
		'B': {key: KeyDown},
		'C': {key: KeyRight},
		'D': {key: KeyLeft},
		'H': {key: KeyHome},
		'F': {key: KeyEnd},
		'3': {next: escCSIDelete},
	},
	escCSIDelete: {
		'~': {key: KeyDelete},
	},
	escSS3: {
		'H': {key: KeyHome},
		'F': {key: KeyEnd},
	},
}

// Decode reads the next input unit from r. Unknown control bytes and
// unrecognized escape sequences come back as KeyNone; the bytes they
// consumed are not replayed. End of input is reported as KeyEOF with a
// nil error.
func Decode(r io.ByteReader) (Event, error) {
	b, err := r.ReadByte()
	if err != nil {
		return eofOr(err)
	}

	switch {
	case b >= 0x20 && b < byteDEL:
		return Event{Key: KeyRune, Ch: b}, nil
	case b == byteLF || b == byteCR:
		return Event{Key: KeyEnter}, nil
	case b == byteBS || b == byteDEL:
		return Event{Key: KeyBackspace}, nil
	case b == byteEOT:
		return Event{Key: KeyEOF}, nil
	case b == byteInterrupt:
		return Event{Key: KeyInterrupt}, nil
	case b == byteESC:
		return decodeEscape(r)
	}
	return Event{Key: KeyNone}, nil
}

func decodeEscape(r io.ByteReader) (Event, error) {
	state := escStart
	for {
		b, err := r.ReadByte()
		if err != nil {
			return eofOr(err)
		}
		step, ok := escTable[state][b]
		if !ok {
			return Event{Key: KeyNone}, nil
		}
		if step.key != KeyNone {
			return Event{Key: step.key}, nil
		}
		state = step.next
	}
}

func eofOr(err error) (Event, error) {
	if errors.Is(err, io.EOF) {
		return Event{Key: KeyEOF}, nil
	}
	return Event{}, err
}
