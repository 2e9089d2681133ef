package library

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmoss/promptvault/internal/models"
)

func prompt(title string, createdAt time.Time, opts ...func(*models.Prompt)) models.Prompt {
	p := models.Prompt{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Title:      title,
		CategoryID: uuid.New(),
		CreatedAt:  createdAt,
		Versions:   []models.PromptVersion{version(1, "")},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func withTags(tags ...string) func(*models.Prompt) {
	return func(p *models.Prompt) { p.Tags = tags }
}

func withContent(content string) func(*models.Prompt) {
	return func(p *models.Prompt) {
		p.Versions = []models.PromptVersion{version(1, content)}
	}
}

func withFavorite() func(*models.Prompt) {
	return func(p *models.Prompt) { p.IsFavorite = true }
}

func titles(items []models.Prompt) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Title
	}
	return out
}

func TestDeriveSearch(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	all := []models.Prompt{
		prompt("Blog outline", base, withTags("seo", "writing")),
		prompt("Code review", base.Add(time.Hour), withContent("Review this Go function for bugs")),
		prompt("Sales email", base.Add(2*time.Hour), withTags("outreach")),
	}

	cases := []struct {
		name   string
		search string
		want   []string
	}{
		{"empty matches everything", "", []string{"Blog outline", "Code review", "Sales email"}},
		{"title substring, case-insensitive", "BLOG", []string{"Blog outline"}},
		{"tag substring", "reach", []string{"Sales email"}},
		{"latest version content", "go function", []string{"Code review"}},
		{"no hit", "kubernetes", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := Derive(all, Query{Search: tc.search})
			assert.Equal(t, tc.want, titles(page.Items))
			assert.Equal(t, len(tc.want), page.TotalCount)
		})
	}
}

func TestDeriveSearchUsesLatestVersionOnly(t *testing.T) {
	p := prompt("Drafts", time.Now())
	p.Versions = []models.PromptVersion{version(1, "ancient wording"), version(2, "fresh wording")}

	assert.Equal(t, 0, Derive([]models.Prompt{p}, Query{Search: "ancient"}).TotalCount)
	assert.Equal(t, 1, Derive([]models.Prompt{p}, Query{Search: "fresh"}).TotalCount)
}

func TestDeriveFacets(t *testing.T) {
	base := time.Now()
	catID := uuid.New()
	inCat := prompt("In category", base)
	inCat.CategoryID = catID
	all := []models.Prompt{
		prompt("Favorite one", base, withFavorite(), withTags("SEO")),
		prompt("Plain one", base),
		inCat,
	}

	t.Run("ALL and empty behave the same", func(t *testing.T) {
		assert.Equal(t, 3, Derive(all, Query{Facet: FacetAll}).TotalCount)
		assert.Equal(t, 3, Derive(all, Query{}).TotalCount)
	})

	t.Run("FAVORITES", func(t *testing.T) {
		page := Derive(all, Query{Facet: FacetFavorites})
		assert.Equal(t, []string{"Favorite one"}, titles(page.Items))
	})

	t.Run("tag facet matches case-insensitively", func(t *testing.T) {
		page := Derive(all, Query{Facet: "TAG:seo"})
		assert.Equal(t, []string{"Favorite one"}, titles(page.Items))
	})

	t.Run("anything else is a category id", func(t *testing.T) {
		page := Derive(all, Query{Facet: catID.String()})
		assert.Equal(t, []string{"In category"}, titles(page.Items))

		assert.Equal(t, 0, Derive(all, Query{Facet: uuid.NewString()}).TotalCount)
	})
}

func TestDeriveSort(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	all := []models.Prompt{
		prompt("banana", base.Add(time.Hour)),
		prompt("Apple", base.Add(2*time.Hour)),
		prompt("cherry", base),
	}

	cases := []struct {
		name string
		sort SortOrder
		want []string
	}{
		{"newest first", SortNewest, []string{"Apple", "banana", "cherry"}},
		{"oldest first", SortOldest, []string{"cherry", "banana", "Apple"}},
		{"alphabetical ignores case", SortTitleAZ, []string{"Apple", "banana", "cherry"}},
		{"unknown order keeps input order", SortOrder("BOGUS"), []string{"banana", "Apple", "cherry"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := Derive(all, Query{Sort: tc.sort})
			assert.Equal(t, tc.want, titles(page.Items))
		})
	}
}

func TestDerivePagination(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var all []models.Prompt
	for i := 0; i < 23; i++ {
		all = append(all, prompt(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute)))
	}

	t.Run("pages partition the result set", func(t *testing.T) {
		q := Query{Sort: SortOldest, PageSize: 10}
		var collected []string
		for pageNum := 1; ; pageNum++ {
			q.Page = pageNum
			page := Derive(all, q)
			assert.Equal(t, 23, page.TotalCount)
			assert.Equal(t, 3, page.TotalPages)
			collected = append(collected, titles(page.Items)...)
			if pageNum >= page.TotalPages {
				assert.Len(t, page.Items, 3)
				break
			}
			assert.Len(t, page.Items, 10)
		}
		assert.Equal(t, titles(Derive(all, Query{Sort: SortOldest, PageSize: 23}).Items), collected)
	})

	t.Run("default page size", func(t *testing.T) {
		page := Derive(all, Query{Page: 1})
		assert.Equal(t, DefaultPageSize, page.PageSize)
		assert.Len(t, page.Items, DefaultPageSize)
	})

	t.Run("page beyond the end clamps to the last page", func(t *testing.T) {
		page := Derive(all, Query{Page: 99, PageSize: 10})
		assert.Equal(t, 3, page.Page)
		assert.Len(t, page.Items, 3)
	})

	t.Run("empty collection", func(t *testing.T) {
		page := Derive(nil, Query{Page: 1, PageSize: 10})
		assert.Equal(t, 0, page.TotalCount)
		assert.Equal(t, 0, page.TotalPages)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.Page)
	})
}

func TestDeriveShareShortCircuit(t *testing.T) {
	base := time.Now()
	shared := prompt("Shared", base, withFavorite())
	other := prompt("Shared twin", base)
	all := []models.Prompt{other, shared}

	// Search, facet and sort are all ignored once a share id is set.
	q := Query{
		Search:  "no such text",
		Facet:   "TAG:absent",
		Sort:    SortTitleAZ,
		ShareID: shared.ID.String(),
	}
	page := Derive(all, q)
	require.Len(t, page.Items, 1)
	assert.Equal(t, shared.ID, page.Items[0].ID)
	assert.Equal(t, 1, page.TotalCount)

	t.Run("unknown share id yields nothing", func(t *testing.T) {
		page := Derive(all, Query{ShareID: uuid.NewString()})
		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.TotalCount)
	})
}

func TestDeriveIsPure(t *testing.T) {
	base := time.Now()
	all := []models.Prompt{
		prompt("b", base),
		prompt("a", base.Add(time.Minute)),
	}
	q := Query{Sort: SortTitleAZ, Page: 1, PageSize: 10}

	first := Derive(all, q)
	second := Derive(all, q)
	assert.Equal(t, first, second)
	// the caller's slice keeps its order
	assert.Equal(t, "b", all[0].Title)
}

func TestDeriveConcurrentTitleSort(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var all []models.Prompt
	for _, title := range []string{"delta", "Alpha", "charlie", "Bravo", "echo", "Foxtrot"} {
		all = append(all, prompt(title, base))
		base = base.Add(time.Minute)
	}
	q := Query{Sort: SortTitleAZ, Page: 1, PageSize: 10}
	want := Derive(all, q)

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				got := Derive(all, q)
				if i == 0 {
					results[g] = titles(got.Items)
				}
			}
		}(g)
	}
	wg.Wait()

	for g, got := range results {
		assert.Equal(t, titles(want.Items), got, "goroutine %d", g)
	}
}

func TestQueryTransitionsResetPage(t *testing.T) {
	q := Query{Search: "old", Facet: FacetAll, Sort: SortNewest, Page: 3, PageSize: 10}

	assert.Equal(t, 1, q.WithSearch("new").Page)
	assert.Equal(t, 1, q.WithFacet(FacetFavorites).Page)
	assert.Equal(t, 1, q.WithSort(SortTitleAZ).Page)
	// the receiver is untouched
	assert.Equal(t, 3, q.Page)
}
