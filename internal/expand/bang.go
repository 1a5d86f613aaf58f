// Package expand rewrites an accepted command line before it is
// tokenized: history references ("!!", "!N", "!-N", "!prefix") first,
// then aliases on the first word.
package expand

import (
	"errors"
	"strconv"
	"strings"

	"github.com/baaaaaaaka/mysh/internal/history"
)

const (
	DefaultMaxLineLen     = 1024
	DefaultMaxAliasPasses = 64
)

var (
	ErrHistoryNotFound   = errors.New("history not found")
	ErrTooLong           = errors.New("command is too long")
	ErrTooManyExpansions = errors.New("too many alias expansions")
)

// History is the read side of history.Store used by bang expansion.
type History interface {
	Last() (history.Entry, bool)
	BySeq(n int) (history.Entry, bool)
	Relative(offset int) (history.Entry, bool)
	Prefix(prefix string) (history.Entry, bool)
}

// Bang trims line and replaces every "!" reference with the text of the
// history entry it names. Scanning resumes after each inserted text, so a
// recalled entry containing "!" is never expanded again. Any failed lookup
// or a result of maxLen bytes or more aborts the whole line.
func Bang(line string, h History, maxLen int) (string, int, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLen
	}
	out := []byte(strings.Trim(line, " \t"))
	count := 0

	for i := 0; i < len(out); {
		if out[i] != '!' {
			i++
			continue
		}
		entry, span, ok := resolveBang(out[i+1:], h)
		if !ok {
			return "", 0, ErrHistoryNotFound
		}
		if len(out)-span+len(entry.Text) >= maxLen {
			return "", 0, ErrTooLong
		}
		out = splice(out, i, i+span, entry.Text)
		i += len(entry.Text)
		count++
	}
	return string(out), count, nil
}

// resolveBang decodes the selector following a "!" and returns the entry
// and the length of the whole reference including the "!".
func resolveBang(sel []byte, h History) (history.Entry, int, bool) {
	if len(sel) > 0 && sel[0] == '!' {
		e, ok := h.Last()
		return e, 2, ok
	}

	if n, width, ok := parseNumber(sel); ok {
		var (
			e  history.Entry
			ok bool
		)
		if n < 0 {
			e, ok = h.Relative(n)
		} else {
			e, ok = h.BySeq(n)
		}
		return e, 1 + width, ok
	}

	end := 0
	for end < len(sel) && !isBlank(sel[end]) {
		end++
	}
	e, ok := h.Prefix(string(sel[:end]))
	return e, 1 + end, ok
}

// parseNumber reads an optionally signed decimal at the start of b.
func parseNumber(b []byte) (int, int, bool) {
	i := 0
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		i++
	}
	start := i
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	if i == start {
		return 0, 0, false
	}
	n, err := strconv.Atoi(string(b[:i]))
	if err != nil {
		// Out of range for int: no entry can carry that number.
		return 0, i, true
	}
	return n, i, true
}

func splice(b []byte, from, to int, text string) []byte {
	out := make([]byte, 0, len(b)-(to-from)+len(text))
	out = append(out, b[:from]...)
	out = append(out, text...)
	return append(out, b[to:]...)
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}
