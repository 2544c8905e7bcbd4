// Package httpadapter executes routeadapter.RouteRequest values (the
// HttpPost variant) against a routing backend over HTTP, transparently
// decompressing gzip- or deflate-encoded responses.
package httpadapter

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"

	"github.com/asgard/wayfarer/naverrors"
	"github.com/asgard/wayfarer/navlog"
	"github.com/asgard/wayfarer/routeadapter"
)

// Transport executes RouteRequest values over HTTP. The navigation core
// never holds one of these directly; only the host, wiring a
// RouteRequestGenerator/RouteResponseParser pair together, does.
type Transport struct {
	Client *http.Client
	Logger *navlog.Logger
}

// New builds a Transport with a default http.Client and logger.
func New() *Transport {
	return &Transport{Client: http.DefaultClient, Logger: navlog.New()}
}

// Do executes req and returns its decompressed response body.
func (t *Transport) Do(ctx context.Context, req routeadapter.RouteRequest) ([]byte, error) {
	if req.Kind != routeadapter.HttpPost {
		return nil, naverrors.New(naverrors.KindRequestGenerationError, "httpadapter only supports the HttpPost request variant")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, naverrors.Wrap(err, naverrors.KindRequestGenerationError, "failed to build HTTP request")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Accept-Encoding", "gzip, deflate")

	t.logger().Debug("requesting route from %s", req.URL)
	resp, err := t.client().Do(httpReq)
	if err != nil {
		return nil, naverrors.Wrap(err, naverrors.KindRequestGenerationError, "route request failed")
	}
	defer resp.Body.Close()

	body, err := decompress(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return nil, naverrors.Wrap(err, naverrors.KindParseError, "failed to decompress route response")
	}

	if resp.StatusCode >= 400 {
		return nil, naverrors.New(naverrors.KindRequestGenerationError, "route backend returned an error status")
	}
	return body, nil
}

func (t *Transport) client() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return http.DefaultClient
}

func (t *Transport) logger() *navlog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return navlog.New()
}

func decompress(encoding string, body io.Reader) ([]byte, error) {
	switch encoding {
	case "gzip":
		r, err := gzip.NewReader(body)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case "deflate":
		r := flate.NewReader(body)
		defer r.Close()
		return io.ReadAll(r)
	default:
		return io.ReadAll(body)
	}
}
