// Package main implements the soccer match server.
//
// Architecture overview:
// - Each match runs its own authoritative SimLoop goroutine at TICK_RATE Hz.
// - State patches are broadcast to clients at PATCH_RATE Hz.
// - Connection goroutines never touch match state directly; every action
//   is handed off as an Intent onto the match's own goroutine.
//
// Connection flow:
// 1. Client connects via WebSocket to /ws.
// 2. Client sends a `join` message (name, team, character, map, code).
// 3. Server assigns the client to a match (by code, or public matchmaking)
//    and sends back `room-code` with the match's join code and session id.
// 4. Client sends `input`/`kick`/`chat`/... messages; server broadcasts
//    `patch` snapshots and discrete events.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/fenixsports/soccer-server/internal/config"
	"github.com/fenixsports/soccer-server/internal/match"
	"github.com/fenixsports/soccer-server/internal/matchmaker"
	"github.com/fenixsports/soccer-server/internal/network"
)

// Server is the process-wide game server instance: it owns the match
// registry, the WebSocket upgrader, and the set of live connections grouped
// by the match they've joined (for broadcast).
type Server struct {
	cfg      *config.ServerConfig
	registry *matchmaker.Registry
	protocol *network.Protocol
	upgrader websocket.Upgrader
	logger   zerolog.Logger

	mu         sync.RWMutex
	byMatch    map[string]map[*ClientConnection]bool
	allConns   map[*ClientConnection]bool
}

// ClientConnection is one connected WebSocket client. Reads and writes run
// on their own goroutines; match state is only ever touched by handing an
// Intent to the registry.
type ClientConnection struct {
	ws     *websocket.Conn
	server *Server

	sessionID string
	matchID   string

	sendChan chan []byte
	done     chan struct{}

	chatLimiter *rate.Limiter
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := loadConfig()
	srv := NewServer(cfg, logger)

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Int("tick_rate_hz", config.TickRate).
		Int("patch_rate_hz", config.PatchRate).
		Int("max_clients_per_match", config.MaxClients).
		Msg("starting soccer server")

	if err := srv.Start(); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func loadConfig() *config.ServerConfig {
	cfg := config.DefaultServerConfig()

	if host := os.Getenv("HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if cors := os.Getenv("ENABLE_CORS"); cors == "false" {
		cfg.EnableCORS = false
	}

	return cfg
}

// NewServer constructs a Server with an empty match registry wired to
// broadcast through this server's connection set.
func NewServer(cfg *config.ServerConfig, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		protocol: network.NewProtocol(),
		logger:   logger,
		byMatch:  make(map[string]map[*ClientConnection]bool),
		allConns: make(map[*ClientConnection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return cfg.EnableCORS
			},
		},
	}
	s.registry = matchmaker.NewRegistry(s.newSink, logger)
	return s
}

// Start registers HTTP handlers and the background empty-match sweep, then
// blocks serving connections.
func (s *Server) Start() error {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for now := range ticker.C {
			if removed := s.registry.SweepEmpty(now); removed > 0 {
				s.logger.Info().Int("removed", removed).Msg("swept empty matches")
			}
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.logger.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats := s.registry.GetStats()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"matches":%d,"players":%d}`, stats.TotalMatches, stats.TotalPlayers)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := &ClientConnection{
		ws:          ws,
		server:      s,
		sessionID:   uuid.NewString(),
		sendChan:    make(chan []byte, 256),
		done:        make(chan struct{}),
		chatLimiter: rate.NewLimiter(rate.Limit(config.ChatRateLimit), config.ChatRateBurst),
	}

	s.mu.Lock()
	s.allConns[conn] = true
	s.mu.Unlock()

	s.logger.Info().Str("session_id", conn.sessionID).Str("remote", ws.RemoteAddr().String()).Msg("connection opened")

	go conn.writePump()
	go conn.readPump()
}

// newSink builds the EventSink a newly created match uses to reach every
// connection currently joined to it.
func (s *Server) newSink(matchID string) match.EventSink {
	return &connSink{server: s, matchID: matchID, protocol: s.protocol}
}

func (s *Server) joinConnToMatch(c *ClientConnection, matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byMatch[matchID] == nil {
		s.byMatch[matchID] = make(map[*ClientConnection]bool)
	}
	s.byMatch[matchID][c] = true
}

func (s *Server) leaveConnFromMatch(c *ClientConnection, matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.byMatch[matchID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(s.byMatch, matchID)
		}
	}
}

func (s *Server) connsFor(matchID string) []*ClientConnection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.byMatch[matchID]
	out := make([]*ClientConnection, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// connSink implements match.EventSink by JSON-encoding payloads through the
// Protocol and fanning them out to every connection joined to matchID.
type connSink struct {
	server   *Server
	matchID  string
	protocol *network.Protocol
}

func (cs *connSink) BroadcastPatch(snap match.Snapshot) {
	frame := cs.protocol.Encode(network.TypePatch, snap)
	for _, c := range cs.server.connsFor(cs.matchID) {
		c.Send(frame)
	}
}

func (cs *connSink) BroadcastEvent(eventType string, payload any) {
	frame := cs.protocol.Encode(eventType, payload)
	for _, c := range cs.server.connsFor(cs.matchID) {
		c.Send(frame)
	}
}

func (cs *connSink) SendToPlayer(sessionID, eventType string, payload any) {
	frame := cs.protocol.Encode(eventType, payload)
	for _, c := range cs.server.connsFor(cs.matchID) {
		if c.sessionID == sessionID {
			c.Send(frame)
			return
		}
	}
}

// Send queues a frame for delivery, dropping it if the client's outbound
// buffer is saturated rather than blocking the match's broadcast.
func (c *ClientConnection) Send(data []byte) {
	select {
	case c.sendChan <- data:
	case <-c.done:
	default:
	}
}

func (c *ClientConnection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	defer c.cleanup()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.sendChan:
			c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *ClientConnection) readPump() {
	defer c.cleanup()

	c.ws.SetReadLimit(8192)
	c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.logger.Warn().Str("session_id", c.sessionID).Err(err).Msg("read error")
			}
			return
		}
		c.handleMessage(data)
	}
}

func (c *ClientConnection) handleMessage(data []byte) {
	env, err := c.server.protocol.DecodeEnvelope(data)
	if err != nil {
		c.sendError(network.ErrorCodeInvalid, "malformed message")
		return
	}

	switch env.Type {
	case network.TypeJoin:
		c.handleJoin(env.Data)
	case network.TypeInput:
		c.handleInput(env.Data)
	case network.TypeKick:
		c.handleKick(env.Data)
	case network.TypeJoinTeam:
		c.handleJoinTeam(env.Data)
	case network.TypeChat:
		c.handleChat(env.Data)
	case network.TypeUpdateState:
		c.handleUpdateState(env.Data)
	case network.TypeStartGame:
		c.handleStartGame()
	case network.TypeEndGame:
		c.handleEndGame()
	case network.TypePing:
		c.handlePing(env.Data)
	}
}

func (c *ClientConnection) sendError(code, message string) {
	c.Send(c.server.protocol.Encode(network.TypeError, network.ErrorPayload{Code: code, Message: message}))
}

func (c *ClientConnection) handleJoin(data json.RawMessage) {
	opts, err := c.server.protocol.DecodeJoin(data)
	if err != nil {
		c.sendError(network.ErrorCodeInvalid, "invalid join payload")
		return
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = "Player"
	}
	if len(name) > 20 {
		name = name[:20]
	}

	var m *match.Match
	if opts.Code != "" {
		m, _ = c.server.registry.GetByCode(strings.ToUpper(opts.Code))
		if m == nil {
			c.sendError(network.ErrorCodeInvalid, "unknown join code")
			return
		}
	} else if opts.IsPublic {
		m, err = c.server.registry.CreatePublicMatch(opts.Map)
	} else {
		m, err = c.server.registry.CreatePrivateMatch(opts.Map)
	}
	if err != nil || m == nil {
		c.sendError(network.ErrorCodeRoomFull, "server full")
		return
	}

	c.matchID = m.ID
	c.server.joinConnToMatch(c, m.ID)

	sessionID := c.sessionID
	character := opts.Character
	team := opts.Team
	c.server.registry.Enqueue(m.ID, func(mm *match.Match) {
		if _, err := mm.Join(sessionID, team, character); err != nil {
			return
		}
	})

	c.Send(c.server.protocol.Encode(network.TypeRoomCode, map[string]any{
		"sessionId": c.sessionID,
		"matchId":   m.ID,
		"code":      m.Code,
	}))
}

func (c *ClientConnection) handleInput(data json.RawMessage) {
	if c.matchID == "" {
		return
	}
	wire, err := c.server.protocol.DecodeInput(data)
	if err != nil {
		return
	}

	records := make([]match.InputRecord, len(wire))
	for i, w := range wire {
		records[i] = match.InputRecord{
			Tick: w.Tick, X: w.X, Z: w.Z, RotY: w.RotY, JumpRequestID: w.JumpRequestID,
		}
	}

	sessionID := c.sessionID
	c.server.registry.Enqueue(c.matchID, func(mm *match.Match) {
		mm.SubmitInput(sessionID, records)
	})
}

func (c *ClientConnection) handleKick(data json.RawMessage) {
	if c.matchID == "" {
		return
	}
	k, err := c.server.protocol.DecodeKick(data)
	if err != nil {
		return
	}
	sessionID := c.sessionID
	c.server.registry.Enqueue(c.matchID, func(mm *match.Match) {
		mm.Kick(sessionID, k.ImpulseX, k.ImpulseY, k.ImpulseZ)
	})
}

func (c *ClientConnection) handleJoinTeam(data json.RawMessage) {
	if c.matchID == "" {
		return
	}
	j, err := c.server.protocol.DecodeJoinTeam(data)
	if err != nil {
		return
	}
	sessionID := c.sessionID
	c.server.registry.Enqueue(c.matchID, func(mm *match.Match) {
		mm.Leave(sessionID)
		mm.Join(sessionID, j.Team, j.Character)
	})
}

func (c *ClientConnection) handleUpdateState(data json.RawMessage) {
	if c.matchID == "" {
		return
	}
	u, err := c.server.protocol.DecodeUpdateState(data)
	if err != nil || !network.UpdateStateWhitelist[u.Key] {
		return
	}
	sessionID := c.sessionID
	c.server.registry.Enqueue(c.matchID, func(mm *match.Match) {
		mm.UpdateState(sessionID, u.Key, u.Value)
	})
}

func (c *ClientConnection) handleChat(data json.RawMessage) {
	if c.matchID == "" {
		return
	}
	if !c.chatLimiter.Allow() {
		return
	}
	chat, err := c.server.protocol.DecodeChat(data)
	if err != nil {
		return
	}
	msg := strings.TrimSpace(chat.Message)
	if msg == "" {
		return
	}
	if len(msg) > config.ChatMaxLen {
		msg = msg[:config.ChatMaxLen]
	}

	sessionID := c.sessionID
	matchID := c.matchID
	for _, peer := range c.server.connsFor(matchID) {
		peer.Send(c.server.protocol.Encode(network.TypeChatMessage, map[string]any{
			"sessionId": sessionID,
			"message":   msg,
		}))
	}
}

func (c *ClientConnection) handleStartGame() {
	if c.matchID == "" {
		return
	}
	sessionID := c.sessionID
	matchID := c.matchID
	if !c.server.registry.Enqueue(matchID, func(mm *match.Match) {
		if err := mm.StartGame(sessionID); err != nil {
			c.sendError(network.ErrorCodeNotHost, "only the host may start the match")
		}
	}) {
		c.sendError(network.ErrorCodeInvalid, "match unavailable")
	}
}

func (c *ClientConnection) handleEndGame() {
	if c.matchID == "" {
		return
	}
	sessionID := c.sessionID
	c.server.registry.Enqueue(c.matchID, func(mm *match.Match) {
		if err := mm.EndGame(sessionID); err != nil {
			c.sendError(network.ErrorCodeNotHost, "only the host may end the match")
		}
	})
}

func (c *ClientConnection) handlePing(data json.RawMessage) {
	var ping struct {
		Timestamp int64 `json:"timestamp"`
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &ping); err != nil {
			return
		}
	}
	c.Send(c.server.protocol.Encode(network.TypePong, map[string]any{"timestamp": ping.Timestamp}))
}

func (c *ClientConnection) cleanup() {
	c.server.mu.Lock()
	delete(c.server.allConns, c)
	c.server.mu.Unlock()

	if c.matchID != "" {
		c.server.leaveConnFromMatch(c, c.matchID)
		sessionID := c.sessionID
		c.server.registry.Enqueue(c.matchID, func(mm *match.Match) {
			mm.Leave(sessionID)
		})
	}

	select {
	case <-c.done:
	default:
		close(c.done)
	}
	c.ws.Close()
	c.server.logger.Info().Str("session_id", c.sessionID).Msg("connection closed")
}
