package library

import (
	"sort"
	"strings"

	"github.com/calebmoss/promptvault/internal/models"
)

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// AggregateTags counts tag usage across the whole collection. Tags are
// trimmed and lowercased before counting; empty tags are dropped. The
// result preserves first-encounter order so top-N ties stay stable.
func AggregateTags(all []models.Prompt) []TagCount {
	index := make(map[string]int)
	var counts []TagCount
	for _, p := range all {
		for _, raw := range p.Tags {
			tag := strings.ToLower(strings.TrimSpace(raw))
			if tag == "" {
				continue
			}
			if i, ok := index[tag]; ok {
				counts[i].Count++
				continue
			}
			index[tag] = len(counts)
			counts = append(counts, TagCount{Tag: tag, Count: 1})
		}
	}
	return counts
}

// TopTags returns the n most used tags, count descending, ties broken by
// encounter order.
func TopTags(counts []TagCount, n int) []TagCount {
	top := make([]TagCount, len(counts))
	copy(top, counts)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if n >= 0 && n < len(top) {
		top = top[:n]
	}
	return top
}

// NormalizeTags prepares a user-entered tag list for storage: trimmed,
// lowercased, empties dropped, duplicates removed with insertion order
// preserved.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// UnionTags merges new tags into an existing set: existing tags keep their
// order, then new tags not already present are appended.
func UnionTags(existing, added []string) []string {
	out := make([]string, 0, len(existing)+len(added))
	seen := make(map[string]bool, len(existing)+len(added))
	for _, t := range existing {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range added {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
