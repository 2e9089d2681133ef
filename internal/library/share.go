package library

import (
	"github.com/calebmoss/promptvault/internal/models"
)

// ResolveShare locates the single prompt a share reference identifies.
// Pure lookup; nil when the reference matches nothing. Anyone holding the
// reference can view the prompt; there is no signature or expiry.
func ResolveShare(all []models.Prompt, shareID string) *models.Prompt {
	for i := range all {
		if all[i].ID.String() == shareID {
			return &all[i]
		}
	}
	return nil
}
