package library

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmoss/promptvault/internal/models"
)

func version(number int, content string) models.PromptVersion {
	return models.PromptVersion{
		ID:            uuid.New(),
		Content:       content,
		VersionNumber: number,
		CreatedAt:     time.Now(),
	}
}

func TestSortVersions(t *testing.T) {
	raw := []models.PromptVersion{version(2, "b"), version(1, "a"), version(3, "c")}

	sorted := SortVersions(raw)

	require.Len(t, sorted, 3)
	assert.Equal(t, 3, sorted[0].VersionNumber)
	assert.Equal(t, 2, sorted[1].VersionNumber)
	assert.Equal(t, 1, sorted[2].VersionNumber)
	// input untouched
	assert.Equal(t, 2, raw[0].VersionNumber)
}

func TestActiveVersion(t *testing.T) {
	v1 := version(1, "first")
	v2 := version(2, "second")
	p := &models.Prompt{ID: uuid.New(), Versions: []models.PromptVersion{v1, v2}}

	t.Run("defaults to highest number", func(t *testing.T) {
		active, err := ActiveVersion(p, nil)
		require.NoError(t, err)
		assert.Equal(t, v2.ID, active.ID)
	})

	t.Run("explicit selection wins", func(t *testing.T) {
		active, err := ActiveVersion(p, &v1.ID)
		require.NoError(t, err)
		assert.Equal(t, v1.ID, active.ID)
	})

	t.Run("stale selection falls back to latest", func(t *testing.T) {
		gone := uuid.New()
		active, err := ActiveVersion(p, &gone)
		require.NoError(t, err)
		assert.Equal(t, v2.ID, active.ID)
	})

	t.Run("zero versions is an integrity violation", func(t *testing.T) {
		empty := &models.Prompt{ID: uuid.New()}
		_, err := ActiveVersion(empty, nil)
		var iErr *IntegrityError
		require.ErrorAs(t, err, &iErr)
	})
}

func TestNextVersionNumber(t *testing.T) {
	t.Run("max plus one", func(t *testing.T) {
		n, err := NextVersionNumber([]models.PromptVersion{version(1, ""), version(3, ""), version(2, "")})
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("zero versions fails loudly", func(t *testing.T) {
		_, err := NextVersionNumber(nil)
		var iErr *IntegrityError
		require.ErrorAs(t, err, &iErr)
	})
}

func TestWordCount(t *testing.T) {
	cases := []struct {
		content string
		want    int
	}{
		{"Hello", 1},
		{"Hello world", 2},
		{"  Hello   world  ", 2},
		{"one\ntwo\tthree", 3},
		// Empty and whitespace-only content count 0, not the naive
		// split's 1.
		{"", 0},
		{"   \n\t ", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WordCount(tc.content), "content %q", tc.content)
	}
}
