package library

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/calebmoss/promptvault/internal/models"
)

type SortOrder string

const (
	SortNewest  SortOrder = "NEWEST"
	SortOldest  SortOrder = "OLDEST"
	SortTitleAZ SortOrder = "AZ"
)

const (
	FacetAll       = "ALL"
	FacetFavorites = "FAVORITES"
	// TagFacetPrefix marks a facet value as a tag filter: "TAG:seo".
	TagFacetPrefix = "TAG:"
)

const DefaultPageSize = 10

// Query is the full view state the pipeline derives from. A set ShareID
// short-circuits everything else.
type Query struct {
	Search   string    `json:"search"`
	Facet    string    `json:"facet"`
	Sort     SortOrder `json:"sort"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	ShareID  string    `json:"share_id,omitempty"`
}

// WithSearch, WithFacet and WithSort reset the page to 1: any change to
// what is shown restarts pagination from the top.
func (q Query) WithSearch(search string) Query {
	q.Search = search
	q.Page = 1
	return q
}

func (q Query) WithFacet(facet string) Query {
	q.Facet = facet
	q.Page = 1
	return q
}

func (q Query) WithSort(order SortOrder) Query {
	q.Sort = order
	q.Page = 1
	return q
}

// Page is one derived view of the collection.
type Page struct {
	Items      []models.Prompt `json:"items"`
	TotalCount int             `json:"total_count"`
	TotalPages int             `json:"total_pages"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}

// Derive filters, sorts and paginates the full collection under the given
// query. It is a pure function of its inputs: same collection and query,
// same page. Safe for concurrent use.
func Derive(all []models.Prompt, q Query) Page {
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}

	var matched []models.Prompt
	if q.ShareID != "" {
		for _, p := range all {
			if p.ID.String() == q.ShareID {
				matched = append(matched, p)
				break
			}
		}
	} else {
		for _, p := range all {
			if matchesSearch(&p, q.Search) && matchesFacet(&p, q.Facet) {
				matched = append(matched, p)
			}
		}
		sortPrompts(matched, q.Sort)
	}

	total := len(matched)
	totalPages := (total + q.PageSize - 1) / q.PageSize

	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * q.PageSize
	end := start + q.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      matched[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   q.PageSize,
	}
}

// matchesSearch checks for a case-insensitive substring in the title, any
// tag, or the latest version's content.
func matchesSearch(p *models.Prompt, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(latestContent(p)), needle)
}

func matchesFacet(p *models.Prompt, facet string) bool {
	switch {
	case facet == "" || facet == FacetAll:
		return true
	case facet == FacetFavorites:
		return p.IsFavorite
	case strings.HasPrefix(facet, TagFacetPrefix):
		want := strings.ToLower(strings.TrimPrefix(facet, TagFacetPrefix))
		for _, t := range p.Tags {
			if strings.ToLower(t) == want {
				return true
			}
		}
		return false
	default:
		// Any other facet value is a category id.
		return p.CategoryID.String() == facet
	}
}

func latestContent(p *models.Prompt) string {
	best := -1
	content := ""
	for i := range p.Versions {
		if p.Versions[i].VersionNumber > best {
			best = p.Versions[i].VersionNumber
			content = p.Versions[i].Content
		}
	}
	return content
}

// sortPrompts applies a stable, total order so pagination is
// deterministic. An unknown sort order leaves the input order untouched.
func sortPrompts(prompts []models.Prompt, order SortOrder) {
	switch order {
	case SortNewest:
		sort.SliceStable(prompts, func(i, j int) bool {
			return prompts[i].CreatedAt.After(prompts[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(prompts, func(i, j int) bool {
			return prompts[i].CreatedAt.Before(prompts[j].CreatedAt)
		})
	case SortTitleAZ:
		// CompareString mutates the collator's internal buffers, so each
		// sort gets its own instance rather than sharing one across
		// goroutines.
		col := collate.New(language.English)
		sort.SliceStable(prompts, func(i, j int) bool {
			return col.CompareString(prompts[i].Title, prompts[j].Title) < 0
		})
	}
}
