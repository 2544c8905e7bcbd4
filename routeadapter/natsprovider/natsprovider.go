// Package natsprovider implements routeadapter.CustomRouteProvider over
// a NATS request/reply round trip: the host publishes the location and
// waypoints to a subject and a routing service on the other end replies
// with a parsed-compatible payload.
package natsprovider

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/asgard/wayfarer/naverrors"
	"github.com/asgard/wayfarer/navroute"
	"github.com/asgard/wayfarer/routeadapter"
)

// Provider implements routeadapter.CustomRouteProvider by issuing a NATS
// request on Subject and parsing the reply with Parser.
type Provider struct {
	Conn    *nats.Conn
	Subject string
	Parser  routeadapter.RouteResponseParser
	Timeout time.Duration
}

// New builds a Provider. A zero Timeout defaults to 5 seconds.
func New(conn *nats.Conn, subject string, parser routeadapter.RouteResponseParser) *Provider {
	return &Provider{Conn: conn, Subject: subject, Parser: parser, Timeout: 5 * time.Second}
}

type requestPayload struct {
	Location  navroute.UserLocation `json:"location"`
	Waypoints []navroute.Waypoint   `json:"waypoints"`
}

// GetRoutes publishes location and waypoints to Subject and parses the
// reply with Parser. It respects ctx's deadline in addition to Timeout,
// whichever is sooner.
func (p *Provider) GetRoutes(ctx context.Context, location navroute.UserLocation, waypoints []navroute.Waypoint) ([]*navroute.Route, error) {
	payload, err := json.Marshal(requestPayload{Location: location, Waypoints: waypoints})
	if err != nil {
		return nil, naverrors.Wrap(err, naverrors.KindRequestGenerationError, "failed to encode NATS route request")
	}

	boundedCtx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	msg, err := p.Conn.RequestWithContext(boundedCtx, p.Subject, payload)
	if err != nil {
		return nil, naverrors.Wrap(err, naverrors.KindRequestGenerationError, "NATS route request failed")
	}

	routes, err := p.Parser.ParseResponse(msg.Data)
	if err != nil {
		return nil, err
	}
	return routes, nil
}

func (p *Provider) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return 5 * time.Second
}
