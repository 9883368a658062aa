package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/andronedrei/arena-battle/internal/sim"
	"github.com/andronedrei/arena-battle/internal/strategy"
	"github.com/andronedrei/arena-battle/logging"
	"github.com/andronedrei/arena-battle/logging/lifecycle"
)

const (
	// requiredClients is how many connected clients a match needs before
	// the ready checks can start it.
	requiredClients = 2

	writeDeadline = 5 * time.Second

	// endGraceDelay is how long clients keep their connection after the
	// final matchEnd frame, so slow readers still receive it.
	endGraceDelay = 3 * time.Second

	teamSize = 3
)

var gameModes = []string{"deathmatch", "koth", "ctf"}

// hubClient is one websocket subscriber. The write mutex serializes frames
// from the reader goroutine and the broadcast path.
type hubClient struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex

	ready bool
	mode  string
}

// Hub owns the lobby and the running match. Clients vote on a mode and
// ready up; once enough clients agree the hub builds the world, spawns both
// teams and becomes the match's snapshot sink.
type Hub struct {
	cfg       sim.Config
	walls     *sim.Walls
	publisher logging.Publisher

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*hubClient
	match   *sim.Match
}

func newHub(cfg sim.Config, walls *sim.Walls, publisher logging.Publisher) *Hub {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Hub{
		cfg:       cfg,
		walls:     walls,
		publisher: publisher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[string]*hubClient),
	}
}

// handleWS upgrades a connection and runs its read loop until it drops.
func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := &hubClient{id: uuid.NewString(), conn: conn}

	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()
	telemetry.ClientsJoined.Add(1)

	h.send(client, newWelcomeMessage(client.id, gameModes, requiredClients))
	h.broadcastLobby()

	h.readLoop(client)

	h.mu.Lock()
	delete(h.clients, client.id)
	h.mu.Unlock()
	conn.Close()
	telemetry.ClientsDisconnected.Add(1)

	lifecycle.ClientDisconnected(context.Background(), h.publisher, 0,
		logging.EntityRef{ID: client.id, Kind: logging.EntityKindClient},
		lifecycle.ClientDisconnectedPayload{Reason: "read loop ended"})
	h.broadcastLobby()
}

func (h *Hub) readLoop(client *hubClient) {
	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := decodeClientMessage(data)
		if err != nil {
			h.send(client, newErrorMessage("malformed message"))
			continue
		}
		switch msg.Type {
		case msgSelectMode:
			if !validMode(msg.Mode) {
				h.send(client, newErrorMessage(fmt.Sprintf("unknown mode %q", msg.Mode)))
				continue
			}
			h.mu.Lock()
			client.mode = msg.Mode
			h.mu.Unlock()
			h.broadcastLobby()
			h.maybeStartMatch()
		case msgReady:
			h.mu.Lock()
			client.ready = msg.Ready
			h.mu.Unlock()
			h.broadcastLobby()
			h.maybeStartMatch()
		default:
			h.send(client, newErrorMessage(fmt.Sprintf("unknown message type %q", msg.Type)))
		}
	}
}

func validMode(mode string) bool {
	for _, m := range gameModes {
		if m == mode {
			return true
		}
	}
	return false
}

// agreedMode returns the mode every client voted for, or "" while votes are
// missing or split.
func (h *Hub) agreedModeLocked() string {
	agreed := ""
	for _, c := range h.clients {
		if c.mode == "" {
			return ""
		}
		if agreed == "" {
			agreed = c.mode
		} else if c.mode != agreed {
			return ""
		}
	}
	return agreed
}

func (h *Hub) broadcastLobby() {
	h.mu.Lock()
	msg := lobbyMessage{Type: "lobby", AgreedMode: h.agreedModeLocked()}
	for _, c := range h.clients {
		msg.Clients = append(msg.Clients, lobbyClient{ID: c.id, Ready: c.ready, Mode: c.mode})
	}
	targets := h.clientListLocked()
	h.mu.Unlock()

	for _, c := range targets {
		h.send(c, msg)
	}
}

func (h *Hub) clientListLocked() []*hubClient {
	list := make([]*hubClient, 0, len(h.clients))
	for _, c := range h.clients {
		list = append(list, c)
	}
	return list
}

// maybeStartMatch starts a match when the lobby is full, unanimous on mode,
// and everyone is ready.
func (h *Hub) maybeStartMatch() {
	h.mu.Lock()
	if h.match != nil {
		h.mu.Unlock()
		return
	}
	if len(h.clients) < requiredClients {
		h.mu.Unlock()
		return
	}
	for _, c := range h.clients {
		if !c.ready {
			h.mu.Unlock()
			return
		}
	}
	mode := h.agreedModeLocked()
	if mode == "" {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	if err := h.startMatch(mode); err != nil {
		h.broadcast(newErrorMessage(fmt.Sprintf("match start failed: %v", err)))
	}
}

func (h *Hub) startMatch(mode string) error {
	world, err := sim.NewWorld(sim.WorldOptions{
		Config:    h.cfg,
		Walls:     h.walls,
		Mode:      buildMode(mode, h.cfg),
		Publisher: h.publisher,
	})
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	if err := spawnTeams(world, mode, h.cfg); err != nil {
		return fmt.Errorf("spawn teams: %w", err)
	}

	match := sim.NewMatch(world, h, h.publisher)
	match.SetTickObserver(func(d time.Duration) {
		telemetry.RecordTick(uint64(d))
	})

	h.mu.Lock()
	if h.match != nil {
		h.mu.Unlock()
		return nil
	}
	h.match = match
	h.mu.Unlock()

	h.broadcast(newWallsMessage(world.Walls()))
	h.broadcast(matchStartMessage{Type: "matchStart", Mode: mode})

	if err := match.Start(); err != nil {
		h.mu.Lock()
		h.match = nil
		h.mu.Unlock()
		return err
	}
	telemetry.MatchesStarted.Add(1)
	return nil
}

func buildMode(mode string, cfg sim.Config) sim.Mode {
	switch mode {
	case "koth":
		return sim.NewKOTH(cfg.KOTH)
	case "ctf":
		return sim.NewCTF(cfg.CTF)
	default:
		return sim.NewDeathmatch()
	}
}

// spawnTeams places both teams in mirrored columns with mode-appropriate
// strategies.
func spawnTeams(world *sim.World, mode string, cfg sim.Config) error {
	tags := strategyLineup(mode)
	spacing := cfg.AgentRadius * 4
	for i := 0; i < teamSize; i++ {
		y := cfg.WorldHeight/2 + (float64(i)-float64(teamSize-1)/2)*spacing
		tag := tags[i%len(tags)]

		for _, side := range []struct {
			team sim.Team
			x    float64
		}{
			{sim.TeamA, cfg.AgentRadius * 5},
			{sim.TeamB, cfg.WorldWidth - cfg.AgentRadius*5},
		} {
			strat, err := strategy.New(tag)
			if err != nil {
				return err
			}
			if _, err := world.SpawnAgent(sim.SpawnSpec{
				Pos:          sim.Vec2{X: side.x, Y: y},
				Team:         side.team,
				Strategy:     strat,
				StrategyName: tag,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func strategyLineup(mode string) []string {
	switch mode {
	case "koth":
		return []string{"koth", "koth", "hunter"}
	case "ctf":
		return []string{"ctf", "ctf", "ctf-defender"}
	default:
		return []string{"hunter", "defender", "random"}
	}
}

// DeliverSnapshot fans one state frame out to every client. Implements
// sim.SnapshotSink; called from the match goroutine.
func (h *Hub) DeliverSnapshot(snap sim.Snapshot) error {
	data, err := json.Marshal(newStateMessage(snap))
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	telemetry.RecordBroadcast(len(data), len(snap.Agents)+len(snap.Bullets))
	h.broadcastRaw(data)
	return nil
}

// MatchEnded sends the final state and outcome, then tears the lobby down
// after a grace delay.
func (h *Hub) MatchEnded(result sim.Result, snap sim.Snapshot) {
	telemetry.MatchesFinished.Add(1)
	if data, err := json.Marshal(newStateMessage(snap)); err == nil {
		h.broadcastRaw(data)
	}
	h.broadcast(newMatchEndMessage(result))

	time.AfterFunc(endGraceDelay, func() {
		h.mu.Lock()
		h.match = nil
		clients := h.clientListLocked()
		h.mu.Unlock()
		for _, c := range clients {
			c.conn.Close()
		}
	})
}

func (h *Hub) broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.broadcastRaw(data)
}

func (h *Hub) broadcastRaw(data []byte) {
	h.mu.Lock()
	clients := h.clientListLocked()
	h.mu.Unlock()
	for _, c := range clients {
		h.sendRaw(c, data)
	}
}

func (h *Hub) send(c *hubClient, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.sendRaw(c, data)
}

// sendRaw writes one frame under the client's write mutex. A failed write
// closes the connection; the read loop notices and cleans up.
func (h *Hub) sendRaw(c *hubClient, data []byte) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		telemetry.BroadcastFailures.Add(1)
		c.conn.Close()
	}
}
