package wizard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/opskit/slipway/pkg/domain"
)

// Engine is the wizard state machine. It holds only immutable configuration;
// all session state travels in *domain.State, so one engine serves any
// number of sessions.
//
// Every transition clones the incoming state and returns a fresh one. The
// response-map write and the history push are applied on the clone before
// any sub-state entry, so a later failure in a delegated call never leaves a
// session with a corrupted position or history.
type Engine struct {
	deck   *Deck
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// NewEngine creates an engine over a validated deck. logger may be nil.
func NewEngine(deck *Deck, logger *slog.Logger, hooks domain.LifecycleHooks) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{deck: deck, logger: logger, hooks: hooks}
}

// Deck exposes the slide table for introspection.
func (e *Engine) Deck() *Deck {
	return e.deck
}

// NewSession starts a session at entrySlide, or at the deck's entry when
// entrySlide is empty.
func (e *Engine) NewSession(sessionID, entrySlide string) (*domain.State, error) {
	if entrySlide == "" {
		entrySlide = e.deck.entry
	}
	if _, ok := e.deck.Slide(entrySlide); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSlideNotFound, entrySlide)
	}
	state := domain.NewState(sessionID, entrySlide)
	e.emitSlideEnter(context.Background(), state.SessionID, entrySlide)
	return state, nil
}

// Select interprets one user choice on the current slide.
//
// It records "{slideID}_response" = option value, pushes the current slide
// onto history, and then branches on the option's action: proceed completes
// the session, navigate moves to the target slide, and the two spreadsheet
// actions open their overlay phase without changing the slide.
func (e *Engine) Select(ctx context.Context, state *domain.State, optionValue string) (*domain.State, error) {
	if state.Phase != domain.PhaseSlide {
		return nil, fmt.Errorf("%w: select during %s", domain.ErrWrongPhase, state.Phase)
	}

	slide, ok := e.deck.Slide(state.CurrentSlide)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSlideNotFound, state.CurrentSlide)
	}
	opt, ok := slide.OptionByValue(optionValue)
	if !ok {
		return nil, fmt.Errorf("%w: %q on slide %s", domain.ErrUnknownOption, optionValue, slide.ID)
	}

	next := state.Snapshot()
	next.Data[domain.ResponseKey(slide.ID)] = opt.Value
	next.History = append(next.History, slide.ID)

	e.emitOptionSelect(ctx, state.SessionID, slide.ID, opt)

	switch opt.Action {
	case domain.ActionProceed:
		next.Phase = domain.PhaseCompleted
		e.logger.Debug("session completed", "session", next.SessionID, "slide", slide.ID)
		if e.hooks.OnComplete != nil {
			e.hooks.OnComplete(ctx, next.SessionID, next.Data)
		}

	case domain.ActionNavigate:
		// Target existence is guaranteed by deck validation.
		next.CurrentSlide = opt.NextSlide
		e.emitSlideEnter(ctx, next.SessionID, opt.NextSlide)

	case domain.ActionUpdateSpreadsheet:
		next.Phase = domain.PhaseServiceName

	case domain.ActionLookupServices:
		next.Phase = domain.PhaseServiceSelection
	}

	return next, nil
}

// GoBack pops the last history entry and makes it the current slide. With an
// empty history it is a no-op: the returned state is an unchanged copy.
func (e *Engine) GoBack(ctx context.Context, state *domain.State) *domain.State {
	next := state.Snapshot()
	if len(next.History) == 0 {
		return next
	}
	next.CurrentSlide = next.History[len(next.History)-1]
	next.History = next.History[:len(next.History)-1]
	next.Phase = domain.PhaseSlide
	e.emitSlideEnter(ctx, next.SessionID, next.CurrentSlide)
	return next
}

// SubmitServiceName resolves the awaiting-service-name overlay. The name is
// trimmed; an absent name yields an update request with an empty
// ServiceName. The underlying slide is unchanged.
func (e *Engine) SubmitServiceName(ctx context.Context, state *domain.State, name string) (*domain.State, *domain.UpdateRequest, error) {
	if state.Phase != domain.PhaseServiceName {
		return nil, nil, fmt.Errorf("%w: submit name during %s", domain.ErrWrongPhase, state.Phase)
	}
	next := state.Snapshot()
	next.Phase = domain.PhaseSlide
	return next, &domain.UpdateRequest{ServiceName: strings.TrimSpace(name), Exists: false}, nil
}

// ChooseService resolves the awaiting-service-selection overlay with a
// directory pick.
func (e *Engine) ChooseService(ctx context.Context, state *domain.State, svc domain.Service) (*domain.State, *domain.UpdateRequest, error) {
	if state.Phase != domain.PhaseServiceSelection {
		return nil, nil, fmt.Errorf("%w: choose service during %s", domain.ErrWrongPhase, state.Phase)
	}
	next := state.Snapshot()
	next.Phase = domain.PhaseSlide
	return next, &domain.UpdateRequest{ServiceName: svc.Name, ServiceID: svc.ID, Exists: true}, nil
}

// Cancel dismisses the active overlay without emitting an update request.
// Cancelling the service selection additionally performs an implicit GoBack,
// distinguishing it from a simple dismissal of the name prompt.
func (e *Engine) Cancel(ctx context.Context, state *domain.State) (*domain.State, error) {
	switch state.Phase {
	case domain.PhaseServiceName:
		next := state.Snapshot()
		next.Phase = domain.PhaseSlide
		return next, nil
	case domain.PhaseServiceSelection:
		next := state.Snapshot()
		next.Phase = domain.PhaseSlide
		return e.GoBack(ctx, next), nil
	default:
		return nil, fmt.Errorf("%w: cancel during %s", domain.ErrWrongPhase, state.Phase)
	}
}

func (e *Engine) emitSlideEnter(ctx context.Context, sessionID, slideID string) {
	e.logger.Debug("slide enter", "session", sessionID, "slide", slideID)
	if e.hooks.OnSlideEnter != nil {
		e.hooks.OnSlideEnter(ctx, &domain.SlideEvent{SessionID: sessionID, SlideID: slideID})
	}
}

func (e *Engine) emitOptionSelect(ctx context.Context, sessionID, slideID string, opt domain.Option) {
	e.logger.Debug("option select", "session", sessionID, "slide", slideID, "value", opt.Value, "action", opt.Action)
	if e.hooks.OnOptionSelect != nil {
		e.hooks.OnOptionSelect(ctx, &domain.SlideEvent{
			SessionID:   sessionID,
			SlideID:     slideID,
			OptionValue: opt.Value,
			Action:      opt.Action,
		})
	}
}
