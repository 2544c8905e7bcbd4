package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/asgard/wayfarer/navigation"
	"github.com/asgard/wayfarer/navlog"
	"github.com/asgard/wayfarer/navroute"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// locationMessage is the JSON shape a client sends over the WebSocket
// for every new fix.
type locationMessage struct {
	Lat                 float64 `json:"lat"`
	Lng                 float64 `json:"lng"`
	HorizontalAccuracyM float64 `json:"horizontal_accuracy_m"`
}

// session drives one *navigation.Controller for the lifetime of a single
// WebSocket connection: every well-formed inbound locationMessage produces
// one TripState, which is queued for sending and dropped if the send
// buffer is full. Malformed messages are logged and skipped.
type session struct {
	conn       *websocket.Conn
	controller *navigation.Controller
	state      navigation.TripState
	started    bool
	send       chan []byte
	logger     *navlog.Logger
}

func newSession(conn *websocket.Conn, controller *navigation.Controller, logger *navlog.Logger) *session {
	return &session{conn: conn, controller: controller, send: make(chan []byte, 16), logger: logger}
}

func (s *session) run() {
	go s.writePump()
	s.readPump()
}

func (s *session) readPump() {
	defer s.conn.Close()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("navserver: read error: %v", err)
			}
			close(s.send)
			return
		}

		var msg locationMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.logger.Warn("navserver: malformed location message: %v", err)
			continue
		}

		location := navroute.UserLocation{
			Coordinates:         navroute.GeographicCoordinate{Lat: msg.Lat, Lng: msg.Lng},
			HorizontalAccuracyM: msg.HorizontalAccuracyM,
			Timestamp:           time.Now(),
		}

		if !s.started {
			s.state = s.controller.InitialState(location)
			s.started = true
		} else {
			s.state = s.controller.UpdateUserLocation(s.state, location)
		}

		body, err := json.Marshal(s.state)
		if err != nil {
			s.logger.Error("navserver: failed to encode trip state: %v", err)
			continue
		}
		select {
		case s.send <- body:
		default:
			s.logger.Warn("navserver: send buffer full, dropping trip state")
		}
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
