package service

import (
	"context"
	"fmt"

	"booker-api/core/constants"
	"booker-api/core/logger"
)

type GateState string

const (
	GateIdle      GateState = "idle"
	GatePrompting GateState = "prompting"
)

// Gate keeps logged-out viewers from appearing enabled. Its state is stored so the prompt
// survives the navigation it triggers.
type Gate struct {
	store KeyValueStore
	state GateState
}

func LoadGate(ctx context.Context, store KeyValueStore) (*Gate, error) {
	g := &Gate{store: store, state: GateIdle}
	data, ok, err := store.Get(ctx, constants.OverlayGateStorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load gate: %w", err)
	}
	if ok && GateState(data) == GatePrompting {
		g.state = GatePrompting
	}
	return g, nil
}

func (g *Gate) State() GateState {
	return g.state
}

// Observe applies the current session and flag. It reports true only on the Idle to Prompting
// transition, whose entry action turns the flag off through qs.
func (g *Gate) Observe(ctx context.Context, hasSession bool, qs *QueryState) (bool, error) {
	if hasSession {
		return false, g.set(ctx, GateIdle)
	}
	if !qs.Enabled() {
		return false, nil
	}

	qs.SetEnabled(false)
	if g.state == GatePrompting {
		return false, nil
	}
	if err := g.set(ctx, GatePrompting); err != nil {
		return false, err
	}
	logger.Info("Gate:Observe:Prompting")
	return true, nil
}

// RequestPrompt is the switch path for viewers without a session.
func (g *Gate) RequestPrompt(ctx context.Context, open bool) error {
	if open {
		return g.set(ctx, GatePrompting)
	}
	return g.set(ctx, GateIdle)
}

func (g *Gate) Dismiss(ctx context.Context) error {
	return g.set(ctx, GateIdle)
}

func (g *Gate) set(ctx context.Context, state GateState) error {
	if g.state == state {
		return nil
	}
	if err := g.store.Set(ctx, constants.OverlayGateStorageKey, []byte(state)); err != nil {
		return fmt.Errorf("failed to store gate: %w", err)
	}
	g.state = state
	return nil
}
