package override

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/params"
)

func newStore(t *testing.T) *params.Store {
	t.Helper()
	store, err := params.NewStore(params.Parameters{Alpha: 0.85, MaxExpiryHorizon: 500})
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	return store
}

func TestApplyBareAlpha(t *testing.T) {
	store := newStore(t)
	console := NewConsole(store, zerolog.Nop())

	console.Apply("0.95")
	if got := store.Snapshot().Alpha; got != 0.95 {
		t.Fatalf("expected alpha 0.95, got %.2f", got)
	}
}

func TestApplyNamedCommands(t *testing.T) {
	store := newStore(t)
	console := NewConsole(store, zerolog.Nop())

	console.Apply("alpha 0.9")
	console.Apply("horizon 800")

	p := store.Snapshot()
	if p.Alpha != 0.9 {
		t.Fatalf("expected alpha 0.9, got %.2f", p.Alpha)
	}
	if p.MaxExpiryHorizon != 800 {
		t.Fatalf("expected horizon 800, got %d", p.MaxExpiryHorizon)
	}
}

func TestApplyRejectsInvalid(t *testing.T) {
	store := newStore(t)
	console := NewConsole(store, zerolog.Nop())

	console.Apply("alpha 1.5")
	console.Apply("horizon -3")
	console.Apply("alpha nope")
	console.Apply("gibberish with words")

	p := store.Snapshot()
	if p.Alpha != 0.85 || p.MaxExpiryHorizon != 500 {
		t.Fatalf("rejected overrides must not change parameters, got %+v", p)
	}
}

func TestRunConsumesLines(t *testing.T) {
	store := newStore(t)
	console := NewConsole(store, zerolog.Nop())

	input := strings.NewReader("alpha 0.92\nhorizon 600\n")
	if err := console.Run(context.Background(), input); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	p := store.Snapshot()
	if p.Alpha != 0.92 || p.MaxExpiryHorizon != 600 {
		t.Fatalf("unexpected parameters after run: %+v", p)
	}
}
