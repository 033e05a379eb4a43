package wizard

import (
	"fmt"
	"strings"

	"github.com/opskit/slipway/pkg/domain"
)

// View is the presentation of a session at a point in time. Front ends
// (terminal runner, HTTP API) decide how to draw it.
type View struct {
	// Phase mirrors the session phase the view was computed for.
	Phase domain.Phase `json:"phase"`

	// Slide is the displayed slide. Set in every phase except completed:
	// the overlays keep the underlying slide visible behind them.
	Slide *domain.Slide `json:"slide,omitempty"`

	// Markdown is the pre-rendered content for text front ends.
	Markdown string `json:"markdown"`

	// CanGoBack reports whether back-navigation is currently possible.
	CanGoBack bool `json:"can_go_back"`

	// Terminal is true when the session has completed; no further
	// transitions are accepted.
	Terminal bool `json:"terminal"`
}

// Render computes the view for a state without advancing it.
//
// An unknown current slide returns domain.ErrSlideNotFound. Deck validation
// makes that unreachable through normal traversal; callers treat it as a
// terminal condition and stop driving the session.
func (e *Engine) Render(state *domain.State) (*View, error) {
	if state.Phase == domain.PhaseCompleted {
		return &View{Phase: state.Phase, Markdown: completedMarkdown(state), Terminal: true}, nil
	}

	slide, ok := e.deck.Slide(state.CurrentSlide)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSlideNotFound, state.CurrentSlide)
	}

	view := &View{
		Phase:     state.Phase,
		Slide:     &slide,
		CanGoBack: len(state.History) > 0,
	}

	switch state.Phase {
	case domain.PhaseServiceName:
		view.Markdown = serviceNameMarkdown()
	case domain.PhaseServiceSelection:
		view.Markdown = serviceSelectionMarkdown()
	default:
		view.Markdown = slideMarkdown(slide)
	}
	return view, nil
}

func slideMarkdown(slide domain.Slide) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", slide.Title, slide.Prompt)
	for i, opt := range slide.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt.Label)
	}
	return b.String()
}

func serviceNameMarkdown() string {
	return "# Service Information\n\n" +
		"The technical service does not exist in the directory. " +
		"Provide the technical service name to record it in the spreadsheet.\n\n" +
		"*The name is optional; submit an empty line to record a blank entry.*\n"
}

func serviceSelectionMarkdown() string {
	return "# Select a Service\n\nFetching services from the directory...\n"
}

func completedMarkdown(state *domain.State) string {
	var b strings.Builder
	b.WriteString("# Wizard Complete\n\nRecorded responses:\n\n")
	seen := make(map[string]bool, len(state.History))
	for _, slideID := range state.History {
		if seen[slideID] {
			continue
		}
		seen[slideID] = true
		key := domain.ResponseKey(slideID)
		if v, ok := state.Data[key]; ok {
			fmt.Fprintf(&b, "- **%s**: %s\n", key, v)
		}
	}
	return b.String()
}
