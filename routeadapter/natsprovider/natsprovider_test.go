package natsprovider

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/asgard/wayfarer/navroute"
)

func TestProvider_DefaultTimeout(t *testing.T) {
	p := &Provider{}
	if got := p.timeout(); got != 5*time.Second {
		t.Errorf("timeout() = %v, want 5s", got)
	}
}

func TestProvider_ExplicitTimeoutIsRespected(t *testing.T) {
	p := &Provider{Timeout: 30 * time.Second}
	if got := p.timeout(); got != 30*time.Second {
		t.Errorf("timeout() = %v, want 30s", got)
	}
}

func TestRequestPayload_MarshalsLocationAndWaypoints(t *testing.T) {
	loc := navroute.UserLocation{
		Coordinates:         navroute.GeographicCoordinate{Lat: 1, Lng: 2},
		HorizontalAccuracyM: 5,
	}
	waypoints := []navroute.Waypoint{{Coordinate: navroute.GeographicCoordinate{Lat: 3, Lng: 4}, Kind: navroute.Break}}

	body, err := json.Marshal(requestPayload{Location: loc, Waypoints: waypoints})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded requestPayload
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Location.Coordinates != loc.Coordinates {
		t.Errorf("Coordinates = %+v, want %+v", decoded.Location.Coordinates, loc.Coordinates)
	}
	if len(decoded.Waypoints) != 1 || decoded.Waypoints[0].Kind != navroute.Break {
		t.Errorf("Waypoints = %+v", decoded.Waypoints)
	}
}
