package handler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/herald-tools/herald/internal/domain"
	"github.com/herald-tools/herald/internal/log"
)

func buttonEvent(customID string) *domain.Interaction {
	return &domain.Interaction{
		ID:        "i1",
		User:      domain.User{ID: "u1"},
		ChannelID: "c1",
		Component: domain.ComponentButton,
		CustomID:  customID,
	}
}

func selectEvent(values ...string) *domain.Interaction {
	return &domain.Interaction{
		ID:        "i2",
		Component: domain.ComponentSelectMenu,
		CustomID:  "picker",
		Values:    values,
	}
}

// recorder collects run invocations across goroutines.
type recorder struct {
	mu   sync.Mutex
	runs []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, name)
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.runs))
	copy(out, r.runs)
	return out
}

func claimAll(name string, rec *recorder) Handler {
	return Handler{
		Name:  name,
		Parse: func(_ context.Context, in *domain.Interaction) (any, bool) { return in.CustomID, true },
		Run: func(_ context.Context, _ *domain.Interaction, _ any) error {
			rec.add(name)
			return nil
		},
	}
}

func TestStore_DispatchEmptyStoreIsNoOp(t *testing.T) {
	s := NewStore(log.Nop{})

	report := s.Dispatch(context.Background(), buttonEvent("x"))
	require.Zero(t, report.Matched)
	require.Zero(t, report.Claimed)
	require.NotEmpty(t, report.DispatchID)
}

func TestStore_ClassificationByCapability(t *testing.T) {
	rec := &recorder{}
	s := NewStore(log.Nop{})

	_, err := s.Register(CapabilityButton, claimAll("buttons", rec))
	require.NoError(t, err)
	_, err = s.Register(CapabilitySelectMenu, claimAll("menus", rec))
	require.NoError(t, err)
	_, err = s.Register(CapabilityAnyComponent, claimAll("any", rec))
	require.NoError(t, err)

	report := s.Dispatch(context.Background(), buttonEvent("confirm"))
	require.Equal(t, 2, report.Matched, "button and any-component match")
	require.Equal(t, 2, report.Claimed)
	require.ElementsMatch(t, []string{"buttons", "any"}, rec.names())

	// A bare command interaction is no component event at all.
	report = s.Dispatch(context.Background(), &domain.Interaction{ID: "i3", CommandName: "ping"})
	require.Zero(t, report.Matched)
}

func TestStore_FilterDecidesClaim(t *testing.T) {
	rec := &recorder{}
	s := NewStore(log.Nop{})

	picky := Handler{
		Name: "picky",
		Parse: func(_ context.Context, in *domain.Interaction) (any, bool) {
			if in.CustomID != "wanted" {
				return nil, false
			}
			return in.CustomID, true
		},
		Run: func(_ context.Context, _ *domain.Interaction, _ any) error {
			rec.add("picky")
			return nil
		},
	}
	_, err := s.Register(CapabilityButton, picky)
	require.NoError(t, err)

	report := s.Dispatch(context.Background(), buttonEvent("other"))
	require.Equal(t, 1, report.Matched)
	require.Zero(t, report.Claimed)
	require.Empty(t, rec.names())

	report = s.Dispatch(context.Background(), buttonEvent("wanted"))
	require.Equal(t, 1, report.Claimed)
	require.Equal(t, []string{"picky"}, rec.names())
}

func TestStore_ParsePanicIsIsolated(t *testing.T) {
	rec := &recorder{}
	s := NewStore(log.Nop{})

	panicking := Handler{
		Name:  "panicking",
		Parse: func(_ context.Context, _ *domain.Interaction) (any, bool) { panic("boom") },
		Run: func(_ context.Context, _ *domain.Interaction, _ any) error {
			rec.add("panicking")
			return nil
		},
	}
	_, err := s.Register(CapabilityButton, panicking)
	require.NoError(t, err)
	_, err = s.Register(CapabilityButton, claimAll("healthy", rec))
	require.NoError(t, err)

	var report Report
	require.NotPanics(t, func() {
		report = s.Dispatch(context.Background(), buttonEvent("x"))
	})
	require.Equal(t, 2, report.Matched)
	require.Equal(t, 1, report.Claimed, "a panicking parse means not claimed")
	require.Equal(t, []string{"healthy"}, rec.names(), "the claiming handler still runs")
	require.Zero(t, report.Failed)
}

func TestStore_RunFailuresAreIsolated(t *testing.T) {
	rec := &recorder{}
	s := NewStore(log.Nop{})

	failing := Handler{
		Name:  "failing",
		Parse: func(_ context.Context, in *domain.Interaction) (any, bool) { return nil, true },
		Run: func(_ context.Context, _ *domain.Interaction, _ any) error {
			return errors.New("handler exploded")
		},
	}
	panicking := Handler{
		Name:  "panicking",
		Parse: func(_ context.Context, in *domain.Interaction) (any, bool) { return nil, true },
		Run: func(_ context.Context, _ *domain.Interaction, _ any) error {
			panic("run boom")
		},
	}
	_, err := s.Register(CapabilityButton, failing)
	require.NoError(t, err)
	_, err = s.Register(CapabilityButton, panicking)
	require.NoError(t, err)
	_, err = s.Register(CapabilityButton, claimAll("healthy", rec))
	require.NoError(t, err)

	var report Report
	require.NotPanics(t, func() {
		report = s.Dispatch(context.Background(), buttonEvent("x"))
	})
	require.Equal(t, 3, report.Claimed)
	require.Equal(t, 2, report.Failed)
	require.Equal(t, []string{"healthy"}, rec.names())
}

func TestStore_PayloadFlowsFromParseToRun(t *testing.T) {
	s := NewStore(log.Nop{})

	var got any
	var mu sync.Mutex
	h := Handler{
		Name: "payload",
		Parse: func(_ context.Context, in *domain.Interaction) (any, bool) {
			return map[string]string{"picked": in.Values[0]}, true
		},
		Run: func(_ context.Context, _ *domain.Interaction, payload any) error {
			mu.Lock()
			defer mu.Unlock()
			got = payload
			return nil
		},
	}
	_, err := s.Register(CapabilitySelectMenu, h)
	require.NoError(t, err)

	s.Dispatch(context.Background(), selectEvent("red", "blue"))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, map[string]string{"picked": "red"}, got)
}

func TestStore_Unregister(t *testing.T) {
	rec := &recorder{}
	s := NewStore(log.Nop{})

	id, err := s.Register(CapabilityButton, claimAll("gone", rec))
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	require.True(t, s.Unregister(id))
	require.False(t, s.Unregister(id))
	require.Zero(t, s.Len())

	report := s.Dispatch(context.Background(), buttonEvent("x"))
	require.Zero(t, report.Matched)
}

func TestStore_RegisterValidation(t *testing.T) {
	s := NewStore(log.Nop{})

	_, err := s.Register(CapabilityButton, Handler{Name: "incomplete"})
	require.Error(t, err)
}

func TestStore_ConcurrentDispatches(t *testing.T) {
	rec := &recorder{}
	s := NewStore(log.Nop{})
	_, err := s.Register(CapabilityAnyComponent, claimAll("worker", rec))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(context.Background(), buttonEvent("x"))
		}()
	}
	wg.Wait()

	require.Len(t, rec.names(), 8, "the store is safely shared across dispatches")
}
