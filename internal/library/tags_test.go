package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/calebmoss/promptvault/internal/models"
)

func TestAggregateTags(t *testing.T) {
	now := time.Now()
	all := []models.Prompt{
		prompt("one", now, withTags("A", "a ", "B")),
		prompt("two", now, withTags("a", "C")),
	}

	counts := AggregateTags(all)

	assert.Equal(t, []TagCount{
		{Tag: "a", Count: 3},
		{Tag: "b", Count: 1},
		{Tag: "c", Count: 1},
	}, counts)
}

func TestAggregateTagsSkipsEmpty(t *testing.T) {
	now := time.Now()
	all := []models.Prompt{
		prompt("one", now, withTags("", "  ", "real")),
		prompt("two", now),
	}

	assert.Equal(t, []TagCount{{Tag: "real", Count: 1}}, AggregateTags(all))
}

func TestTopTags(t *testing.T) {
	counts := []TagCount{
		{Tag: "rare", Count: 1},
		{Tag: "common", Count: 5},
		{Tag: "tied-a", Count: 3},
		{Tag: "tied-b", Count: 3},
	}

	t.Run("count descending, ties keep encounter order", func(t *testing.T) {
		top := TopTags(counts, 3)
		assert.Equal(t, []TagCount{
			{Tag: "common", Count: 5},
			{Tag: "tied-a", Count: 3},
			{Tag: "tied-b", Count: 3},
		}, top)
	})

	t.Run("n larger than the set returns everything", func(t *testing.T) {
		assert.Len(t, TopTags(counts, 10), 4)
	})

	t.Run("input order survives", func(t *testing.T) {
		TopTags(counts, 2)
		assert.Equal(t, "rare", counts[0].Tag)
	})
}

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"trims and lowercases", []string{" SEO ", "Writing"}, []string{"seo", "writing"}},
		{"drops empties", []string{"", "  ", "x"}, []string{"x"}},
		{"dedupes keeping first position", []string{"b", "A", "a", "B"}, []string{"b", "a"}},
		{"nil in, empty out", nil, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeTags(tc.in))
		})
	}
}

func TestUnionTags(t *testing.T) {
	t.Run("existing order first, then new tags", func(t *testing.T) {
		got := UnionTags([]string{"x", "y"}, []string{"y", "w"})
		assert.Equal(t, []string{"x", "y", "w"}, got)
	})

	t.Run("no additions is a no-op", func(t *testing.T) {
		got := UnionTags([]string{"x"}, []string{"x"})
		assert.Equal(t, []string{"x"}, got)
	})

	t.Run("empty existing", func(t *testing.T) {
		got := UnionTags(nil, []string{"a", "b"})
		assert.Equal(t, []string{"a", "b"}, got)
	})
}
