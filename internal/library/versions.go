package library

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/calebmoss/promptvault/internal/models"
)

// SortVersions orders a prompt's raw version list newest-first by version
// number. The store returns versions unsorted; every consumer goes through
// this view.
func SortVersions(versions []models.PromptVersion) []models.PromptVersion {
	sorted := make([]models.PromptVersion, len(versions))
	copy(sorted, versions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].VersionNumber > sorted[j].VersionNumber
	})
	return sorted
}

// ActiveVersion returns the version to display for a prompt: the explicit
// session selection when it still exists, otherwise the highest-numbered
// version. A prompt with zero versions is invalid state.
func ActiveVersion(p *models.Prompt, explicitID *uuid.UUID) (*models.PromptVersion, error) {
	if len(p.Versions) == 0 {
		return nil, &IntegrityError{Msg: "prompt " + p.ID.String() + " has no versions"}
	}
	if explicitID != nil {
		for i := range p.Versions {
			if p.Versions[i].ID == *explicitID {
				return &p.Versions[i], nil
			}
		}
	}
	sorted := SortVersions(p.Versions)
	return &sorted[0], nil
}

// NextVersionNumber computes the number a newly appended version gets.
// Edits-in-place never pass through here, so the counter only moves on
// explicit "save as new version" actions.
func NextVersionNumber(versions []models.PromptVersion) (int, error) {
	if len(versions) == 0 {
		return 0, &IntegrityError{Msg: "cannot append a version to a prompt with none"}
	}
	max := 0
	for _, v := range versions {
		if v.VersionNumber > max {
			max = v.VersionNumber
		}
	}
	return max + 1, nil
}

// WordCount counts whitespace-delimited tokens after trimming. Empty or
// whitespace-only content counts 0.
func WordCount(content string) int {
	return len(strings.Fields(content))
}
