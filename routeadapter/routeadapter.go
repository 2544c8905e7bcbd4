// Package routeadapter defines the two plug-in shapes the host uses to
// fetch routes from an external routing backend (spec section 4.6). The
// navigation core never performs network I/O itself; it only consumes
// the parsed []navroute.Route values these adapters produce.
package routeadapter

import (
	"context"

	"github.com/asgard/wayfarer/navroute"
)

// RequestKind discriminates RouteRequest variants. HttpPost is the only
// variant the specification requires; it is kept as a tagged union
// rather than a single struct so a future transport can be added without
// breaking RouteRequestGenerator's signature.
type RequestKind int

const (
	// HttpPost issues an HTTP POST to URL with Headers and Body.
	HttpPost RequestKind = iota
)

// RouteRequest is what a RouteRequestGenerator produces and an
// httpadapter.Transport (or an equivalent host transport) executes.
type RouteRequest struct {
	Kind    RequestKind
	URL     string
	Headers map[string]string
	Body    []byte
}

// RouteRequestGenerator builds a backend-specific RouteRequest from the
// user's current location and the waypoints they want to visit.
type RouteRequestGenerator interface {
	GenerateRequest(location navroute.UserLocation, waypoints []navroute.Waypoint) (RouteRequest, error)
}

// RouteResponseParser turns a backend's raw response bytes into the
// Route values the controller can be built over. Implementations return
// a naverrors error of kind ParseError on malformed input.
type RouteResponseParser interface {
	ParseResponse(body []byte) ([]*navroute.Route, error)
}

// CustomRouteProvider is the asynchronous plug-in shape: a host
// implementation that fetches routes itself (over NATS, gRPC, an SDK
// call, or anything else) rather than going through
// RouteRequestGenerator/RouteResponseParser.
type CustomRouteProvider interface {
	GetRoutes(ctx context.Context, location navroute.UserLocation, waypoints []navroute.Waypoint) ([]*navroute.Route, error)
}
