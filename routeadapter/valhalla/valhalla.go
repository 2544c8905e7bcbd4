// Package valhalla implements routeadapter.RouteResponseParser for
// Valhalla/OSRM-compatible routing backends: the wire format used by
// Valhalla's /route endpoint and the OSRM-derived voiceInstructions and
// bannerInstructions extensions most such backends also emit.
package valhalla

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/asgard/wayfarer/naverrors"
	"github.com/asgard/wayfarer/navroute"
)

// response mirrors the top-level Valhalla/OSRM route response.
type response struct {
	Routes []routeJSON `json:"routes"`
}

type routeJSON struct {
	Legs     []legJSON `json:"legs"`
	Distance float64   `json:"distance"` // meters
}

type legJSON struct {
	Steps []stepJSON `json:"steps"`
}

type stepJSON struct {
	Geometry          geometryJSON       `json:"geometry"`
	Distance          float64            `json:"distance"`
	Name              string             `json:"name"`
	Maneuver          maneuverJSON       `json:"maneuver"`
	VoiceInstructions []voiceJSON        `json:"voiceInstructions"`
	BannerInstructions []bannerJSON      `json:"bannerInstructions"`
}

// geometryJSON accepts either an encoded polyline6 string or a raw
// [lng, lat] coordinate list, since both appear across Valhalla-family
// backends depending on configuration.
type geometryJSON struct {
	raw json.RawMessage
}

func (g *geometryJSON) UnmarshalJSON(data []byte) error {
	g.raw = append([]byte(nil), data...)
	return nil
}

func (g geometryJSON) decode() ([]navroute.GeographicCoordinate, error) {
	var encoded string
	if err := json.Unmarshal(g.raw, &encoded); err == nil {
		return decodePolyline6(encoded)
	}

	var points [][2]float64
	if err := json.Unmarshal(g.raw, &points); err != nil {
		return nil, naverrors.Wrap(err, naverrors.KindParseError, "step geometry is neither an encoded polyline nor a coordinate list")
	}
	coords := make([]navroute.GeographicCoordinate, len(points))
	for i, p := range points {
		coords[i] = navroute.GeographicCoordinate{Lng: p[0], Lat: p[1]}
	}
	return coords, nil
}

type maneuverJSON struct {
	Type        string `json:"type"`
	Modifier    string `json:"modifier"`
	Instruction string `json:"instruction"`
	ExitNumber  *int   `json:"exit_number"`
}

type voiceJSON struct {
	DistanceAlongGeometry float64 `json:"distanceAlongGeometry"`
	Announcement          string  `json:"announcement"`
	SSMLAnnouncement      string  `json:"ssmlAnnouncement"`
}

type bannerJSON struct {
	DistanceAlongGeometry float64          `json:"distanceAlongGeometry"`
	Primary               bannerTextJSON   `json:"primary"`
	Secondary             *bannerTextJSON  `json:"secondary"`
}

type bannerTextJSON struct {
	Text            string `json:"text"`
	Type            string `json:"type"`
	Modifier        string `json:"modifier"`
	DegreesOfExit   *int   `json:"degrees"`
}

// Parser implements routeadapter.RouteResponseParser for the Valhalla
// wire format.
type Parser struct{}

// ParseResponse decodes a Valhalla/OSRM-style JSON route response into
// navroute.Route values.
func (Parser) ParseResponse(body []byte) ([]*navroute.Route, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, naverrors.Wrap(err, naverrors.KindParseError, "malformed route response")
	}
	if len(resp.Routes) == 0 {
		return nil, naverrors.New(naverrors.KindParseError, "response contains no routes")
	}

	routes := make([]*navroute.Route, 0, len(resp.Routes))
	for _, r := range resp.Routes {
		route, err := parseRoute(r)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}

func parseRoute(r routeJSON) (*navroute.Route, error) {
	var steps []navroute.RouteStep
	for _, leg := range r.Legs {
		for _, s := range leg.Steps {
			step, err := parseStep(s)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
		}
	}

	route, err := navroute.NewRoute(steps, nil)
	if err != nil {
		return nil, err
	}
	return route, nil
}

func parseStep(s stepJSON) (navroute.RouteStep, error) {
	geometry, err := s.Geometry.decode()
	if err != nil {
		return navroute.RouteStep{}, err
	}
	if len(geometry) < 2 {
		return navroute.RouteStep{}, naverrors.New(naverrors.KindParseError, "route step has fewer than 2 geometry points")
	}

	var roadName *string
	if s.Name != "" {
		roadName = &s.Name
	}

	visuals := make([]navroute.VisualInstruction, 0, len(s.BannerInstructions))
	for _, b := range s.BannerInstructions {
		visuals = append(visuals, navroute.VisualInstruction{
			Primary:                        toVisualContent(b.Primary),
			Secondary:                      toOptionalVisualContent(b.Secondary),
			TriggerDistanceBeforeManeuverM: b.DistanceAlongGeometry,
		})
	}

	spokens := make([]navroute.SpokenInstruction, 0, len(s.VoiceInstructions))
	for _, v := range s.VoiceInstructions {
		var ssml *string
		if v.SSMLAnnouncement != "" {
			ssml = &v.SSMLAnnouncement
		}
		spokens = append(spokens, navroute.SpokenInstruction{
			Text:                           v.Announcement,
			SSML:                           ssml,
			TriggerDistanceBeforeManeuverM: v.DistanceAlongGeometry,
			UtteranceID:                    uuid.New(),
		})
	}

	instructionText := s.Maneuver.Instruction
	if instructionText == "" {
		instructionText = describeManeuver(s.Maneuver)
	}

	return navroute.RouteStep{
		Geometry:           geometry,
		DistanceM:          s.Distance,
		RoadName:           roadName,
		Instruction:        instructionText,
		VisualInstructions: visuals,
		SpokenInstructions: spokens,
	}, nil
}

func toVisualContent(b bannerTextJSON) navroute.VisualInstructionContent {
	var mtype, modifier *string
	if b.Type != "" {
		mtype = &b.Type
	}
	if b.Modifier != "" {
		modifier = &b.Modifier
	}
	return navroute.VisualInstructionContent{
		Text:                  b.Text,
		ManeuverType:          mtype,
		ManeuverModifier:      modifier,
		RoundaboutExitDegrees: b.DegreesOfExit,
	}
}

func toOptionalVisualContent(b *bannerTextJSON) *navroute.VisualInstructionContent {
	if b == nil {
		return nil
	}
	content := toVisualContent(*b)
	return &content
}

// describeManeuver synthesizes OSRM-style instruction text from a
// maneuver's type/modifier when the backend didn't supply one directly.
func describeManeuver(m maneuverJSON) string {
	var sb strings.Builder
	switch m.Type {
	case "turn":
		sb.WriteString("Turn")
	case "merge":
		sb.WriteString("Merge")
	case "roundabout":
		sb.WriteString("Enter the roundabout")
	case "arrive":
		sb.WriteString("Arrive at your destination")
	case "depart":
		sb.WriteString("Head out")
	default:
		sb.WriteString("Continue")
	}
	if m.Modifier != "" {
		sb.WriteString(" ")
		sb.WriteString(m.Modifier)
	}
	return sb.String()
}

// decodePolyline6 decodes a Google-style encoded polyline with 1e-6
// precision (Valhalla's default "polyline6" geometry encoding).
func decodePolyline6(encoded string) ([]navroute.GeographicCoordinate, error) {
	return decodePolyline(encoded, 1e6)
}

func decodePolyline(encoded string, precision float64) ([]navroute.GeographicCoordinate, error) {
	var coords []navroute.GeographicCoordinate
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		deltaLat, next, err := decodeSignedValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lat += deltaLat

		if index >= len(encoded) {
			return nil, naverrors.New(naverrors.KindParseError, "truncated polyline encoding")
		}
		deltaLng, next, err := decodeSignedValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lng += deltaLng

		coords = append(coords, navroute.GeographicCoordinate{
			Lat: float64(lat) / precision,
			Lng: float64(lng) / precision,
		})
	}
	return coords, nil
}

func decodeSignedValue(encoded string, index int) (value int, nextIndex int, err error) {
	shift, result := uint(0), 0
	for {
		if index >= len(encoded) {
			return 0, index, naverrors.New(naverrors.KindParseError, "truncated polyline encoding")
		}
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		value = ^(result >> 1)
	} else {
		value = result >> 1
	}
	return value, index, nil
}
