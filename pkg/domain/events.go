package domain

import "context"

// SlideEvent carries observability data about a slide transition.
type SlideEvent struct {
	SessionID string
	SlideID   string
	// OptionValue is set on selection events.
	OptionValue string
	// Action is the selected option's action tag.
	Action string
}

// LookupEvent carries observability data about a directory fetch.
type LookupEvent struct {
	Query   string
	Results int
	IsError bool
}

// AppendEvent carries observability data about a row-store append.
type AppendEvent struct {
	SubjectName string
	IsError     bool
}

// LifecycleHooks are optional host-provided callbacks fired around wizard
// activity. Hosts use them for logging and metrics; the engine never blocks
// on them and ignores nil entries.
type LifecycleHooks struct {
	OnSlideEnter   func(ctx context.Context, e *SlideEvent)
	OnOptionSelect func(ctx context.Context, e *SlideEvent)
	OnComplete     func(ctx context.Context, sessionID string, data map[string]string)
	OnLookup       func(ctx context.Context, e *LookupEvent)
	OnRowAppend    func(ctx context.Context, e *AppendEvent)
}

// Merge composes two hook sets; both callbacks fire, h's first.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	merged := LifecycleHooks{}
	merged.OnSlideEnter = mergeHook(h.OnSlideEnter, other.OnSlideEnter)
	merged.OnOptionSelect = mergeHook(h.OnOptionSelect, other.OnOptionSelect)
	merged.OnLookup = mergeHook(h.OnLookup, other.OnLookup)
	merged.OnRowAppend = mergeHook(h.OnRowAppend, other.OnRowAppend)
	if h.OnComplete != nil || other.OnComplete != nil {
		first, second := h.OnComplete, other.OnComplete
		merged.OnComplete = func(ctx context.Context, sessionID string, data map[string]string) {
			if first != nil {
				first(ctx, sessionID, data)
			}
			if second != nil {
				second(ctx, sessionID, data)
			}
		}
	}
	return merged
}

func mergeHook[E any](first, second func(context.Context, E)) func(context.Context, E) {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}
	return func(ctx context.Context, e E) {
		first(ctx, e)
		second(ctx, e)
	}
}
