package announce

import (
	"fmt"
	"strings"

	"placecast/models"
)

// Compose builds the forum post title and body for a place announcement.
// The body prefers the address when one is present; otherwise it falls back
// to coordinates rendered with four decimal places. Empty optional fields are
// omitted entirely rather than rendered with a bare label.
func Compose(p models.Place, experienceID, viewerBaseURL string) (title, body string) {
	title = "New Place Added: " + p.Name

	var lines []string
	if p.Address != "" {
		lines = append(lines, "Address: "+p.Address)
	} else {
		lines = append(lines, fmt.Sprintf("Location: %.4f, %.4f", p.Latitude, p.Longitude))
	}
	if p.Category != "" {
		lines = append(lines, "Category: "+p.Category)
	}
	if p.Description != "" {
		lines = append(lines, p.Description)
	}
	lines = append(lines, fmt.Sprintf("View it here: %s/experiences/%s", strings.TrimRight(viewerBaseURL, "/"), experienceID))

	return title, strings.Join(lines, "\n")
}
