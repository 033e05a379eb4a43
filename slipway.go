package slipway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opskit/slipway/internal/deck"
	"github.com/opskit/slipway/internal/wizard"
	"github.com/opskit/slipway/pkg/domain"
)

// Version is the library version, surfaced by the CLI.
const Version = "0.3.0"

// Wizard is the high-level entry point for the Slipway library. It wraps the
// internal state machine and provides a simplified API for hosts.
type Wizard struct {
	engine     *wizard.Engine
	slides     []domain.Slide
	entrySlide string
	deckPath   string
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Wizard.
type Option func(*Wizard)

// WithDeck supplies the slide deck directly, bypassing file loading and the
// built-in deck.
func WithDeck(slides []domain.Slide, entry string) Option {
	return func(w *Wizard) {
		w.slides = slides
		w.entrySlide = entry
	}
}

// WithDeckFile loads the slide deck from a YAML file.
func WithDeckFile(path string) Option {
	return func(w *Wizard) {
		w.deckPath = path
	}
}

// WithEntrySlide overrides the deck's designated entry slide.
func WithEntrySlide(slideID string) Option {
	return func(w *Wizard) {
		w.entrySlide = slideID
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Wizard) {
		w.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

// New initializes a Wizard. Without options it runs the built-in onboarding
// deck; WithDeckFile and WithDeck substitute a custom one. Deck validation
// failures (unknown navigate targets, duplicate slide IDs, a missing entry)
// are reported here, never at transition time.
func New(opts ...Option) (*Wizard, error) {
	w := &Wizard{}
	for _, opt := range opts {
		opt(w)
	}

	if w.slides == nil && w.deckPath != "" {
		file, err := deck.Load(w.deckPath)
		if err != nil {
			return nil, err
		}
		w.slides = file.Slides
		if w.entrySlide == "" {
			w.entrySlide = file.Entry
		}
	}
	if w.slides == nil {
		w.slides = deck.Default()
		if w.entrySlide == "" {
			w.entrySlide = deck.DefaultEntry
		}
	}

	d, err := wizard.NewDeck(w.entrySlide, w.slides)
	if err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}

	w.engine = wizard.NewEngine(d, w.logger, w.hooks)
	return w, nil
}

// Engine exposes the underlying state machine for hosts that need the full
// transition surface (the HTTP adapter and the terminal runner do).
func (w *Wizard) Engine() *wizard.Engine {
	return w.engine
}

// Start creates the initial state for a session.
func (w *Wizard) Start(sessionID string) (*domain.State, error) {
	return w.engine.NewSession(sessionID, "")
}

// Select interprets one option choice and returns the successor state.
func (w *Wizard) Select(ctx context.Context, state *domain.State, optionValue string) (*domain.State, error) {
	return w.engine.Select(ctx, state, optionValue)
}

// GoBack rewinds one step. With empty history it returns the state unchanged.
func (w *Wizard) GoBack(ctx context.Context, state *domain.State) *domain.State {
	return w.engine.GoBack(ctx, state)
}

// SubmitServiceName resolves the service-name prompt. The returned request
// describes the spreadsheet row the host must append.
func (w *Wizard) SubmitServiceName(ctx context.Context, state *domain.State, name string) (*domain.State, *domain.UpdateRequest, error) {
	return w.engine.SubmitServiceName(ctx, state, name)
}

// ChooseService resolves the service-selection overlay with a directory entry.
func (w *Wizard) ChooseService(ctx context.Context, state *domain.State, svc domain.Service) (*domain.State, *domain.UpdateRequest, error) {
	return w.engine.ChooseService(ctx, state, svc)
}

// Cancel dismisses the active overlay.
func (w *Wizard) Cancel(ctx context.Context, state *domain.State) (*domain.State, error) {
	return w.engine.Cancel(ctx, state)
}

// Render builds the view for the current state without transitioning.
func (w *Wizard) Render(state *domain.State) (*wizard.View, error) {
	return w.engine.Render(state)
}

// Slides returns the deck's slides in ID order, for introspection tools.
func (w *Wizard) Slides() []domain.Slide {
	return w.engine.Deck().Slides()
}
