package main

import (
	"context"

	"placecast/internal/enrich"
	"placecast/models"
	"placecast/pkg/geocode"
)

// geocodeStep fills in coordinates for places submitted with an address only.
// Places that already carry coordinates pass through untouched, and a lookup
// failure leaves the place as-is (the announcement uses the address anyway).
func geocodeStep(gc *geocode.Client) enrich.Step[models.Place] {
	return func(ctx context.Context, p *models.Place) error {
		if p.HasCoordinates() || p.Address == "" {
			return nil
		}
		res, err := gc.Search(ctx, p.Address)
		if err != nil {
			return err
		}
		p.Latitude = res.Lat
		p.Longitude = res.Lon
		return nil
	}
}
