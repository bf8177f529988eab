package sdk

import "context"

// Player is the host side of the contract as seen by a game.
type Player interface {
	// Href returns the URL of an asset served by the player.
	Href(path string) string

	// Get fetches an asset and returns its bytes.
	Get(ctx context.Context, path string) ([]byte, error)

	// Ready registers a callback run once assets can be fetched. It runs
	// immediately if the player is already ready.
	Ready(cb func())
}

// ControllerInput is the state of one controller for a single frame.
type ControllerInput struct {
	Controller int  `json:"controller" yaml:"controller"`
	Up         bool `json:"up" yaml:"up"`
	Down       bool `json:"down" yaml:"down"`
	Left       bool `json:"left" yaml:"left"`
	Right      bool `json:"right" yaml:"right"`
}

// Controller is an input source bound to a player slot.
type Controller interface {
	ID() int
	Label() string
	Inputs() ControllerInput
}

// Game is implemented by every game.
type Game interface {
	// Help returns a short description of the game and its inputs.
	Help() string

	Play()
	Pause()
	Stop()

	// Resize is called after the player viewport changed size.
	Resize()

	// SaveState returns a snapshot LoadState can restore.
	SaveState() any
	LoadState(state any)

	// GetStateForAgent returns the observation exposed to AI agents.
	GetStateForAgent() any

	// Tick advances the game by one frame. delta is in frames, scaled by
	// the player speed.
	Tick(inputs []ControllerInput, delta float64)
}

// BootOptions are passed to a game's BootFunc.
type BootOptions struct {
	Player Player
	Width  int
	Height int
	Speed  float64
}

// BootFunc creates a game. It is the single entry point a game exports.
type BootFunc func(ctx context.Context, opts BootOptions) (Game, error)
