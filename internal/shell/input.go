package shell

import (
	"bufio"
	"errors"
	"io"
)

// lineReader reads commands from a non-terminal input. A line ends at
// "\n", NUL or end of input; NUL and end of input also end the session
// once the pending line has been returned.
type lineReader struct {
	r    *bufio.Reader
	max  int
	done bool
}

func newLineReader(r io.Reader, maxLineLen int) *lineReader {
	return &lineReader{r: bufio.NewReader(r), max: maxLineLen}
}

// Next returns the next line. ok is false once the input is exhausted.
func (l *lineReader) Next() (line string, ok bool, err error) {
	if l.done {
		return "", false, nil
	}
	buf := make([]byte, 0, 64)
	for {
		c, err := l.r.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", false, err
			}
			l.done = true
			return string(buf), true, nil
		}
		switch c {
		case '\n':
			return string(buf), true, nil
		case 0:
			l.done = true
			return string(buf), true, nil
		}
		if len(buf) < l.max-1 {
			buf = append(buf, c)
		}
	}
}
