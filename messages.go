package main

import (
	"encoding/json"

	"github.com/andronedrei/arena-battle/internal/sim"
)

// Inbound message envelope. Type routes the payload.
type clientMessage struct {
	Type string `json:"type"`
	// selectMode
	Mode string `json:"mode,omitempty"`
	// ready
	Ready bool `json:"ready"`
}

const (
	msgSelectMode = "selectMode"
	msgReady      = "ready"
)

// Outbound message types.

type welcomeMessage struct {
	Type            string   `json:"type"`
	ClientID        string   `json:"clientId"`
	Modes           []string `json:"modes"`
	RequiredClients int      `json:"requiredClients"`
}

type lobbyClient struct {
	ID    string `json:"id"`
	Ready bool   `json:"ready"`
	Mode  string `json:"mode,omitempty"`
}

type lobbyMessage struct {
	Type string `json:"type"`
	// AgreedMode is empty until every client votes the same mode.
	AgreedMode string        `json:"agreedMode,omitempty"`
	Clients    []lobbyClient `json:"clients"`
}

type wallsMessage struct {
	Type     string   `json:"type"`
	GridUnit float64  `json:"gridUnit"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Cells    [][2]int `json:"cells"`
}

type matchStartMessage struct {
	Type string `json:"type"`
	Mode string `json:"mode"`
}

type stateMessage struct {
	Type string `json:"type"`
	sim.Snapshot
}

type matchEndMessage struct {
	Type   string `json:"type"`
	Winner int    `json:"winner"`
	Draw   bool   `json:"draw"`
	Reason string `json:"reason"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newWelcomeMessage(clientID string, modes []string, required int) welcomeMessage {
	return welcomeMessage{Type: "welcome", ClientID: clientID, Modes: modes, RequiredClients: required}
}

func newWallsMessage(walls *sim.Walls) wallsMessage {
	width, height := walls.Bounds()
	return wallsMessage{
		Type:     "walls",
		GridUnit: walls.GridUnit(),
		Width:    width,
		Height:   height,
		Cells:    walls.Cells(),
	}
}

func newStateMessage(snap sim.Snapshot) stateMessage {
	return stateMessage{Type: "state", Snapshot: snap}
}

func newMatchEndMessage(result sim.Result) matchEndMessage {
	return matchEndMessage{
		Type:   "matchEnd",
		Winner: int(result.Winner),
		Draw:   result.Draw,
		Reason: result.Reason,
	}
}

func newErrorMessage(message string) errorMessage {
	return errorMessage{Type: "error", Message: message}
}

// decodeClientMessage parses one inbound frame.
func decodeClientMessage(data []byte) (clientMessage, error) {
	var msg clientMessage
	err := json.Unmarshal(data, &msg)
	return msg, err
}
