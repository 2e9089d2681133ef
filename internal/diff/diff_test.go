package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reconstruct concatenates the segments that belong to one side of the
// diff: old = unchanged + removed, new = unchanged + added.
func reconstruct(segments []Segment, side Kind) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Kind == Unchanged || s.Kind == side {
			b.WriteString(s.Value)
		}
	}
	return b.String()
}

func TestWordsReconstruction(t *testing.T) {
	cases := []struct {
		name string
		old  string
		new  string
	}{
		{"simple replacement", "Hello world", "Hello there"},
		{"append", "Hello world", "Hello world!!"},
		{"prepend", "world", "Hello world"},
		{"full rewrite", "alpha beta gamma", "one two three four"},
		{"whitespace change", "a  b\tc", "a b c"},
		{"multiline", "line one\nline two\n", "line one\nline 2\nline three\n"},
		{"old empty", "", "Hello world"},
		{"new empty", "Hello world", ""},
		{"both empty", "", ""},
		{"unicode", "café au lait", "café con leche"},
		{"repeated words", "the the the cat", "the cat the cat"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			segments := Words(tc.old, tc.new)
			assert.Equal(t, tc.old, reconstruct(segments, Removed), "unchanged+removed must rebuild the old text")
			assert.Equal(t, tc.new, reconstruct(segments, Added), "unchanged+added must rebuild the new text")
		})
	}
}

func TestWordsIdentity(t *testing.T) {
	text := "Write a summary of the following article in three sentences.\n\nBe concise."
	segments := Words(text, text)

	var b strings.Builder
	for _, s := range segments {
		require.Equal(t, Unchanged, s.Kind)
		b.WriteString(s.Value)
	}
	assert.Equal(t, text, b.String())
}

func TestWordsIsPure(t *testing.T) {
	old, new := "one two three", "one 2 three"
	first := Words(old, new)
	second := Words(old, new)
	assert.Equal(t, first, second)
}

func TestWordsWordGranularity(t *testing.T) {
	segments := Words("Hello world", "Hello there")

	// "Hello " should survive as one unchanged run, not per-character
	// fragments.
	require.NotEmpty(t, segments)
	assert.Equal(t, Unchanged, segments[0].Kind)
	assert.Equal(t, "Hello ", segments[0].Value)

	var removed, added []string
	for _, s := range segments {
		switch s.Kind {
		case Removed:
			removed = append(removed, s.Value)
		case Added:
			added = append(added, s.Value)
		}
	}
	assert.Equal(t, []string{"world"}, removed)
	assert.Equal(t, []string{"there"}, added)
}

func TestTokenize(t *testing.T) {
	assert.Nil(t, tokenize(""))
	assert.Equal(t, []string{"one"}, tokenize("one"))
	assert.Equal(t, []string{"one", " ", "two"}, tokenize("one two"))
	assert.Equal(t, []string{"  ", "a", "\t\n", "b", " "}, tokenize("  a\t\nb "))
}

func TestKindJSON(t *testing.T) {
	b, err := Added.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"added"`, string(b))
}
