// Package diff computes word-level edit scripts between two text blobs.
//
// The output satisfies a reconstruction contract relied on by renderers:
// concatenating the Unchanged and Removed segments in order reproduces the
// old text, and concatenating Unchanged and Added reproduces the new text.
package diff

import (
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type Kind int

const (
	Unchanged Kind = iota
	Added
	Removed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

type Segment struct {
	Value string `json:"value"`
	Kind  Kind   `json:"kind"`
}

// Words diffs two texts at word granularity. Tokens are maximal runs of
// whitespace or non-whitespace, so whitespace survives the round trip
// intact. Pure function of its inputs.
//
// Each distinct token is mapped to a rune and the Myers edit script runs
// over the rune strings, the same token-to-char technique diffmatchpatch
// uses for its line mode.
func Words(oldText, newText string) []Segment {
	oldTokens := tokenize(oldText)
	newTokens := tokenize(newText)

	vocab := make(map[string]rune)
	var tokens []string
	encode := func(ts []string) []rune {
		rs := make([]rune, len(ts))
		for i, t := range ts {
			r, ok := vocab[t]
			if !ok {
				r = indexRune(len(tokens))
				vocab[t] = r
				tokens = append(tokens, t)
			}
			rs[i] = r
		}
		return rs
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(encode(oldTokens), encode(newTokens), false)

	var segments []Segment
	for _, d := range diffs {
		value := ""
		for _, r := range d.Text {
			value += tokens[runeIndex(r)]
		}
		if value == "" {
			continue
		}
		kind := Unchanged
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = Added
		case diffmatchpatch.DiffDelete:
			kind = Removed
		}
		segments = append(segments, Segment{Value: value, Kind: kind})
	}
	return segments
}

// tokenize splits text into alternating runs of whitespace and
// non-whitespace. Concatenating the tokens reproduces the input exactly.
func tokenize(s string) []string {
	if s == "" {
		return nil
	}
	runes := []rune(s)
	var tokens []string
	start := 0
	space := unicode.IsSpace(runes[0])
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || unicode.IsSpace(runes[i]) != space {
			tokens = append(tokens, string(runes[start:i]))
			if i < len(runes) {
				start = i
				space = unicode.IsSpace(runes[i])
			}
		}
	}
	return tokens
}

// indexRune maps a vocabulary index to a valid rune, skipping the
// surrogate block.
func indexRune(i int) rune {
	r := i + 1
	if r >= 0xD800 {
		r += 0x800
	}
	return rune(r)
}

func runeIndex(r rune) int {
	i := int(r)
	if i >= 0xE000 {
		i -= 0x800
	}
	return i - 1
}
