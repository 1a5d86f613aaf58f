package expand

import "strings"

// Aliases is the read side of alias.Table.
type Aliases interface {
	Lookup(name string) (string, bool)
}

type AliasOptions struct {
	// MaxLineLen bounds the composed line; results of MaxLineLen bytes or
	// more are rejected.
	MaxLineLen int
	// MaxPasses bounds the number of substitutions for one line. Alias
	// chains that revisit a first word never settle, so they end here.
	MaxPasses int
}

// Alias repeatedly replaces the first word of line with its alias until
// the first word matches no alias. The rest of the line is kept as is.
// It returns the final line and the number of substitutions made.
func Alias(line string, aliases Aliases, opts AliasOptions) (string, int, error) {
	if opts.MaxLineLen <= 0 {
		opts.MaxLineLen = DefaultMaxLineLen
	}
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = DefaultMaxAliasPasses
	}

	count := 0
	for {
		line = strings.TrimLeft(line, " \t")
		word := line
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			word = line[:i]
		}

		repl, ok := aliases.Lookup(word)
		if !ok {
			return line, count, nil
		}
		if count == opts.MaxPasses {
			return "", count, ErrTooManyExpansions
		}
		if len(line)-len(word)+len(repl) >= opts.MaxLineLen {
			return "", count, ErrTooLong
		}
		line = repl + line[len(word):]
		count++
	}
}
