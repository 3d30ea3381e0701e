package announce

import (
	"strings"
	"testing"

	"placecast/models"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name        string
		place       models.Place
		wantTitle   string
		wantInBody  []string
		notInBody   []string
	}{
		{
			name: "address takes precedence over coordinates",
			place: models.Place{
				Name:      "Blue Bottle",
				Address:   "300 Webster St, Oakland",
				Latitude:  37.7983,
				Longitude: -122.2712,
				Category:  "cafe",
			},
			wantTitle:  "New Place Added: Blue Bottle",
			wantInBody: []string{"Address: 300 Webster St, Oakland", "Category: cafe"},
			notInBody:  []string{"Location:", "37.79"},
		},
		{
			name: "coordinates rendered to four decimal places",
			place: models.Place{
				Name:      "Hidden Spring",
				Latitude:  46.97531842,
				Longitude: -103.53002199,
			},
			wantTitle:  "New Place Added: Hidden Spring",
			wantInBody: []string{"Location: 46.9753, -103.5300"},
			notInBody:  []string{"Address:", "46.97531", "Category:"},
		},
		{
			name: "empty category omits the label entirely",
			place: models.Place{
				Name:    "Hidden Spring",
				Address: "somewhere",
			},
			wantInBody: []string{"Address: somewhere"},
			notInBody:  []string{"Category:"},
		},
		{
			name: "description is carried through",
			place: models.Place{
				Name:        "Hidden Spring",
				Address:     "somewhere",
				Description: "A quiet spot off the trail.",
			},
			wantInBody: []string{"A quiet spot off the trail."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := Compose(tt.place, "exp_42", "https://viewer.example.com/")
			if tt.wantTitle != "" && title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			for _, want := range tt.wantInBody {
				if !strings.Contains(body, want) {
					t.Errorf("body %q should contain %q", body, want)
				}
			}
			for _, not := range tt.notInBody {
				if strings.Contains(body, not) {
					t.Errorf("body %q should not contain %q", body, not)
				}
			}
		})
	}
}

func TestCompose_ViewerLink(t *testing.T) {
	_, body := Compose(models.Place{Name: "X", Address: "y"}, "exp_42", "https://viewer.example.com/")
	if !strings.Contains(body, "https://viewer.example.com/experiences/exp_42") {
		t.Errorf("body %q should link the viewer page for the experience", body)
	}
	if strings.Contains(body, ".com//experiences") {
		t.Errorf("body %q has a doubled slash in the viewer link", body)
	}
}
