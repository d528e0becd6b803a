package geocode

import (
	"context"
	"fmt"
	"os"
	"sync"

	"googlemaps.github.io/maps"

	"github.com/goldjoker92/vigiApp-sub000/types"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
	initErr    error
)

// InitMapsClient initializes and returns a singleton Google Maps client.
// Reverse geocoding is optional: without MAPS_CREDENTIALS it stays disabled.
func InitMapsClient() (*maps.Client, error) {
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			initErr = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, initErr = maps.NewClient(maps.WithAPIKey(apiKey))
	})
	return mapsClient, initErr
}

// Enabled reports whether reverse geocoding is configured.
func Enabled() bool {
	_, err := InitMapsClient()
	return err == nil
}

// FillAddress reverse-geocodes coordinates into payload address fields,
// keeping anything the reporter already typed. Best effort: a failed lookup
// leaves the payload untouched.
func FillAddress(ctx context.Context, lat, lng float64, payload *types.ReportPayload) error {
	if payload.Street != "" || payload.City != "" {
		return nil
	}
	client, err := InitMapsClient()
	if err != nil {
		return err
	}

	results, err := client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	for _, comp := range results[0].AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "route":
				payload.Street = comp.LongName
			case "street_number":
				payload.Number = comp.LongName
			case "locality", "administrative_area_level_2":
				if payload.City == "" {
					payload.City = comp.LongName
				}
			case "administrative_area_level_1":
				payload.UF = comp.ShortName
			}
		}
	}
	return nil
}
