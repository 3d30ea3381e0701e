package keys

import (
	"fmt"
	"strings"

	"placecast/models"
)

// sanitizeKey replaces spaces with hyphens and lowercases the string.
// You could expand this to strip other characters if needed.
func sanitizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// Place returns the canonical object key for a Place record.
func Place(p models.Place) string {
	category := p.Category
	if category == "" {
		category = "uncategorized"
	}
	return fmt.Sprintf("places/%s/%s.json",
		sanitizeKey(category),
		sanitizeKey(p.ID),
	)
}
