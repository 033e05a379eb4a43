package domain

// Phase defines the current mode of a wizard session.
type Phase string

const (
	// PhaseSlide is normal operation: the current slide is displayed.
	PhaseSlide Phase = "slide"
	// PhaseServiceName waits for a free-text service name (spreadsheet path).
	PhaseServiceName Phase = "awaiting_service_name"
	// PhaseServiceSelection waits for a directory service pick.
	PhaseServiceSelection Phase = "awaiting_service_selection"
	// PhaseCompleted is the success terminal; the data map has been handed over.
	PhaseCompleted Phase = "completed"
)

// ResponseKeySuffix is appended to a slide ID to form its data-map key.
const ResponseKeySuffix = "_response"

// State is the single mutable entity of a wizard session: position, a
// back-navigation history stack, and the accumulated responses.
//
// The engine never mutates a State in place. Transitions clone first, so a
// failure in a delegated call (directory fetch, row append) cannot leave a
// session with a half-applied move.
type State struct {
	// SessionID identifies the owning session in a StateStore.
	SessionID string `json:"session_id"`

	// CurrentSlide is the identifier of the displayed slide.
	CurrentSlide string `json:"current_slide"`

	// Phase indicates whether an overlay prompt is active. The overlays are
	// not graph nodes: CurrentSlide is unchanged while one is open.
	Phase Phase `json:"phase"`

	// History holds previously visited slide IDs, pushed on every
	// transition and popped by back-navigation.
	History []string `json:"history"`

	// Data maps "{slideID}_response" to the chosen option's value token.
	Data map[string]string `json:"data"`
}

// NewState creates a clean session positioned at the given entry slide.
func NewState(sessionID, entrySlide string) *State {
	return &State{
		SessionID:    sessionID,
		CurrentSlide: entrySlide,
		Phase:        PhaseSlide,
		History:      []string{},
		Data:         make(map[string]string),
	}
}

// ResponseKey returns the data-map key for a slide.
func ResponseKey(slideID string) string {
	return slideID + ResponseKeySuffix
}

// Completed reports whether the session reached its success terminal.
func (s *State) Completed() bool {
	return s.Phase == PhaseCompleted
}

// Snapshot returns a deep copy. Callers can mutate the copy without
// aliasing the original's history or data map.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.History = make([]string, len(s.History))
	copy(next.History, s.History)
	next.Data = make(map[string]string, len(s.Data))
	for k, v := range s.Data {
		next.Data[k] = v
	}
	return &next
}
