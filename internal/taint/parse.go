package taint

import (
	"fmt"
	"unicode"
)

// Warning is a non-fatal diagnostic produced while parsing a flag
// letter string.
type Warning interface {
	// Lines returns the diagnostic text, one element per output line.
	Lines() []string
}

// UnknownFlagWarning reports an input character that matches no table
// entry. The character is already upper-cased.
type UnknownFlagWarning struct {
	Char rune
}

func (w UnknownFlagWarning) Lines() []string {
	return []string{fmt.Sprintf("Warning: Unknown taint flag '%c' ignored.", w.Char)}
}

// ConflictWarning reports that the input named a flag's off letter
// while another input character set the same flag. The set flag wins.
type ConflictWarning struct {
	OnChar  rune
	OffChar rune
}

func (w ConflictWarning) Lines() []string {
	return []string{
		fmt.Sprintf("Warning: Conflicting taint flags '%c' and '%c'", w.OnChar, w.OffChar),
		fmt.Sprintf("         Using taint-enabling flag '%c'", w.OnChar),
	}
}

// ParseFlags builds a taint word from a string of flag letters.
//
// Matching is case-insensitive. Each character is resolved against the
// table in order: an on-letter match sets the flag's bit, an off-letter
// match is an explicit no-op, and anything else produces an
// UnknownFlagWarning. A second pass then walks the input left to right
// and, for each character naming an off letter whose flag ended up set,
// emits a ConflictWarning. Nothing is fatal; the accumulated word and
// all warnings are always returned.
//
// The conflict pass revisits every character against the whole table so
// that warnings come out in the same order for the same input every
// time, duplicates included.
func ParseFlags(input string) (uint64, []Warning) {
	var mask uint64
	var warnings []Warning
	for _, ch := range input {
		ch = unicode.ToUpper(ch)
		matched := false
		for _, def := range Table {
			if ch == def.OnChar {
				mask |= def.Value()
				matched = true
				break
			}
			if def.HasOffChar() && ch == def.OffChar {
				matched = true
				break
			}
		}
		if !matched {
			warnings = append(warnings, UnknownFlagWarning{Char: ch})
		}
	}
	for _, ch := range input {
		ch = unicode.ToUpper(ch)
		for _, def := range Table {
			if !def.HasOffChar() || ch != def.OffChar {
				continue
			}
			if mask&def.Value() == def.Value() {
				warnings = append(warnings, ConflictWarning{OnChar: def.OnChar, OffChar: def.OffChar})
			}
		}
	}
	return mask, warnings
}
