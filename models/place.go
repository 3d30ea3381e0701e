package models

import (
	"errors"
	"strings"
)

// ErrNoLocation is returned by Validate for places that carry neither an
// address nor coordinates.
var ErrNoLocation = errors.New("place needs an address or coordinates")

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is a point of interest submitted for announcement. It is read-only
// input to the announcer; only the enrichment pipeline fills in fields that
// were left empty at submission time.
type Place struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address,omitempty"`
	Description string  `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Category    string  `json:"category,omitempty"`
}

// HasCoordinates reports whether the place carries a usable coordinate pair.
// (0, 0) is treated as unset; it is open ocean, not a place anyone submits.
func (p Place) HasCoordinates() bool {
	return p.Latitude != 0 || p.Longitude != 0
}

// Validate checks the invariants a place must satisfy before it enters the
// intake bucket: a name, and an address or coordinates to locate it by.
func (p Place) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("place name is required")
	}
	if strings.TrimSpace(p.Address) == "" && !p.HasCoordinates() {
		return ErrNoLocation
	}
	return nil
}
