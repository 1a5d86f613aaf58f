package term

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func decodeAll(t *testing.T, input string) []Event {
	t.Helper()
	r := bytes.NewReader([]byte(input))
	var out []Event
	for {
		ev, err := Decode(r)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		out = append(out, ev)
		if ev.Key == KeyEOF {
			return out
		}
	}
}

func TestDecode_SingleBytes(t *testing.T) {
	tests := []struct {
		in   string
		want Event
	}{
		{"a", Event{Key: KeyRune, Ch: 'a'}},
		{" ", Event{Key: KeyRune, Ch: ' '}},
		{"~", Event{Key: KeyRune, Ch: '~'}},
		{"\n", Event{Key: KeyEnter}},
		{"\r", Event{Key: KeyEnter}},
		{"\x08", Event{Key: KeyBackspace}},
		{"\x7f", Event{Key: KeyBackspace}},
		{"\x03", Event{Key: KeyInterrupt}},
		{"\x04", Event{Key: KeyEOF}},
		{"\x01", Event{Key: KeyNone}},
		{"\xc3", Event{Key: KeyNone}},
		{"", Event{Key: KeyEOF}},
	}
	for _, tt := range tests {
		got, err := Decode(bytes.NewReader([]byte(tt.in)))
		if err != nil {
			t.Fatalf("Decode(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Decode(%q)=%+v want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDecode_EscapeTable(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"\x1b[A", KeyUp},
		{"\x1b[B", KeyDown},
		{"\x1b[C", KeyRight},
		{"\x1b[D", KeyLeft},
		{"\x1b[3~", KeyDelete},
		{"\x1bOH", KeyHome},
		{"\x1bOF", KeyEnd},
		{"\x1b[H", KeyHome},
		{"\x1b[F", KeyEnd},
	}
	for _, tt := range tests {
		got, err := Decode(bytes.NewReader([]byte(tt.in)))
		if err != nil {
			t.Fatalf("Decode(%q): %v", tt.in, err)
		}
		if got.Key != tt.want {
			t.Fatalf("Decode(%q)=%v want %v", tt.in, got.Key, tt.want)
		}
	}
}

func TestDecode_UnknownSequenceIsDiscardedWithoutReplay(t *testing.T) {
	// "\x1b[3x": the "x" breaks the delete sequence and is swallowed with it.
	got := decodeAll(t, "\x1b[3xa\x1bZb\x1b[5~")
	want := []Event{
		{Key: KeyNone},
		{Key: KeyRune, Ch: 'a'},
		{Key: KeyNone},
		{Key: KeyRune, Ch: 'b'},
		{Key: KeyNone},
		{Key: KeyRune, Ch: '~'},
		{Key: KeyEOF},
	}
	if len(got) != len(want) {
		t.Fatalf("events=%+v want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d=%+v want %+v", i, got[i], want[i])
		}
	}
}

func TestDecode_EOFInsideEscape(t *testing.T) {
	got, err := Decode(bytes.NewReader([]byte("\x1b[")))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Key != KeyEOF {
		t.Fatalf("got %v want eof", got.Key)
	}
}

type failingReader struct{}

func (failingReader) ReadByte() (byte, error) { return 0, io.ErrClosedPipe }

func TestDecode_PropagatesReadErrors(t *testing.T) {
	if _, err := Decode(failingReader{}); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestKeyString(t *testing.T) {
	if KeyUp.String() != "up" || Key(99).String() != "unknown" {
		t.Fatalf("unexpected names %q %q", KeyUp, Key(99))
	}
}
