// Package handler implements the component-event dispatch store: handlers
// register under a capability tag, incoming interactions are classified
// against each registration, claiming handlers run concurrently, and every
// failure is isolated so one handler can never abort its siblings.
package handler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/herald-tools/herald/internal/domain"
)

// Capability classifies the event shapes a handler is interested in. The
// set is closed; the classifier table below is the single source of truth
// for which events each tag accepts.
type Capability int

const (
	CapabilityButton Capability = iota
	CapabilitySelectMenu
	CapabilityModal
	CapabilityAnyComponent
)

func (c Capability) String() string {
	switch c {
	case CapabilityButton:
		return "button"
	case CapabilitySelectMenu:
		return "selectMenu"
	case CapabilityModal:
		return "modal"
	case CapabilityAnyComponent:
		return "anyComponent"
	default:
		return "invalid"
	}
}

// classifiers maps each capability tag to the event-shape predicate that
// decides whether a registration sees an event at all. Tags absent from the
// table are skipped, not errors.
var classifiers = map[Capability]func(*domain.Interaction) bool{
	CapabilityButton: func(in *domain.Interaction) bool {
		return in.Component == domain.ComponentButton
	},
	CapabilitySelectMenu: func(in *domain.Interaction) bool {
		return in.Component == domain.ComponentSelectMenu
	},
	CapabilityModal: func(in *domain.Interaction) bool {
		return in.Component == domain.ComponentModal
	},
	CapabilityAnyComponent: func(in *domain.Interaction) bool {
		return in.Component != domain.ComponentNone
	},
}

// Handler pairs a filter/parse step with a run step. Parse inspects an
// event and either claims it (optionally transforming it into a payload for
// Run) or declines. Both steps are isolated: a panic in Parse means "not
// claimed", a panic or error in Run never reaches sibling handlers.
type Handler struct {
	Name  string
	Parse func(ctx context.Context, in *domain.Interaction) (any, bool)
	Run   func(ctx context.Context, in *domain.Interaction, payload any) error
}

type registration struct {
	id         string
	capability Capability
	handler    Handler
}

// Report summarizes one dispatch for callers and tests. Failures are
// reported through the logger side channel, never propagated.
type Report struct {
	DispatchID string
	Matched    int
	Claimed    int
	Failed     int
}

// Store holds registered handlers. Registrations are added at setup and
// treated as read-only during dispatch, so a Store is safe to share across
// concurrently dispatched events.
type Store struct {
	mu      sync.RWMutex
	entries []registration
	log     domain.Logger
}

// NewStore creates an empty handler store reporting through the given
// logger.
func NewStore(logger domain.Logger) *Store {
	return &Store{log: logger}
}

// Register adds a handler under a capability tag and returns its identity.
// Insertion order is preserved for filter iteration only; run order across
// claiming handlers is not guaranteed.
func (s *Store) Register(capability Capability, h Handler) (string, error) {
	if h.Parse == nil || h.Run == nil {
		return "", fmt.Errorf("handler %q needs both a parse and a run step", h.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.entries = append(s.entries, registration{id: id, capability: capability, handler: h})
	return id, nil
}

// Unregister removes a handler by identity. Returns false if the identity
// is unknown.
func (s *Store) Unregister(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registrations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

type claim struct {
	reg     registration
	payload any
}

// Dispatch classifies the event against every registration, invokes the
// filter/parse step of each match in registration order, then runs all
// claiming handlers concurrently and waits for them to settle. Zero
// registrations or zero claims return without spinning up any concurrency
// machinery. No handler failure ever escapes Dispatch.
func (s *Store) Dispatch(ctx context.Context, in *domain.Interaction) Report {
	s.mu.RLock()
	entries := make([]registration, len(s.entries))
	copy(entries, s.entries)
	s.mu.RUnlock()

	report := Report{DispatchID: uuid.NewString()}
	if len(entries) == 0 {
		return report
	}

	var claims []claim
	for _, e := range entries {
		accepts, ok := classifiers[e.capability]
		if !ok || !accepts(in) {
			continue
		}
		report.Matched++

		payload, claimed := s.safeParse(ctx, e, in, report.DispatchID)
		if claimed {
			claims = append(claims, claim{reg: e, payload: payload})
		}
	}
	report.Claimed = len(claims)
	if len(claims) == 0 {
		return report
	}

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range claims {
		g.Go(func() error {
			if err := s.safeRun(gctx, in, c); err != nil {
				failed.Add(1)
				s.log.Error("dispatch %s: handler %s failed: %v",
					report.DispatchID, c.reg.handler.Name, err)
			}
			// Failures are isolated: never fail the group.
			return nil
		})
	}
	_ = g.Wait()

	report.Failed = int(failed.Load())
	return report
}

// safeParse runs a filter/parse step, converting a panic into "not claimed".
func (s *Store) safeParse(ctx context.Context, e registration, in *domain.Interaction, dispatchID string) (payload any, claimed bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("dispatch %s: handler %s parse panicked: %v", dispatchID, e.handler.Name, r)
			payload, claimed = nil, false
		}
	}()
	return e.handler.Parse(ctx, in)
}

// safeRun executes a claiming handler's run step, converting a panic into
// an error.
func (s *Store) safeRun(ctx context.Context, in *domain.Interaction, c claim) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("run panicked: %v", r)
		}
	}()
	return c.reg.handler.Run(ctx, in, c.payload)
}
