// Command navserver is a demonstration host for the navigation core: it
// accepts a Valhalla/OSRM-compatible route response over HTTP and parses
// it, then streams TripState updates over
// a WebSocket as the connected client reports new locations.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/asgard/wayfarer/navigation"
	"github.com/asgard/wayfarer/navlog"
	"github.com/asgard/wayfarer/navroute"
	"github.com/asgard/wayfarer/routeadapter/valhalla"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file overlaying defaults")
	flag.Parse()

	logger := navlog.New()

	cfg, err := loadServerConfig(*configPath)
	if err != nil {
		logger.Error("navserver: failed to load config: %v", err)
		return
	}

	srv := newServer(cfg, logger)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowCredentials: false,
	}))

	router.Post("/routes", srv.handleCreateRoute)
	router.Get("/ws/{routeID}", srv.handleWebSocket)

	logger.Info("navserver: listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		logger.Error("navserver: server exited: %v", err)
	}
}

// server holds every route a client has uploaded, keyed by an
// auto-incrementing ID, so a WebSocket client can attach to one by ID.
type server struct {
	cfg    serverConfig
	logger *navlog.Logger
	parser valhalla.Parser

	mu     sync.Mutex
	nextID int
	routes map[string]*navroute.Route
}

func newServer(cfg serverConfig, logger *navlog.Logger) *server {
	return &server{cfg: cfg, logger: logger, routes: make(map[string]*navroute.Route)}
}

// handleCreateRoute accepts a Valhalla/OSRM-compatible route response
// body, parses it, and returns an ID the client can open a WebSocket
// session against.
func (s *server) handleCreateRoute(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	routes, err := s.parser.ParseResponse(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.nextID++
	id := strconv.Itoa(s.nextID)
	s.routes[id] = routes[0]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"route_id": id})
}

// handleWebSocket upgrades the connection and streams TripState values
// for the route named by the routeID path parameter.
func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "routeID")

	s.mu.Lock()
	route, ok := s.routes[routeID]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown route_id", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("navserver: websocket upgrade failed: %v", err)
		return
	}

	controller := navigation.New(route, navigation.Config{
		StepAdvance:            s.cfg.stepAdvanceMode(),
		RouteDeviationTracking: s.cfg.deviationTracking(),
	})
	newSession(conn, controller, s.logger).run()
}
