package domain

// Action constants define what selecting an option does.
const (
	// ActionProceed ends the wizard and hands the accumulated data to the caller.
	ActionProceed = "proceed"
	// ActionNavigate moves to the option's NextSlide.
	ActionNavigate = "navigate"
	// ActionUpdateSpreadsheet opens the service-name prompt (no slide change).
	ActionUpdateSpreadsheet = "update_spreadsheet"
	// ActionLookupServices opens the directory selection overlay (no slide change).
	ActionLookupServices = "lookup_services"
)

// Option is one selectable choice on a Slide.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
	// Action is one of the Action* constants.
	Action string `json:"action" yaml:"action"`
	// NextSlide is required iff Action == ActionNavigate. Targets are
	// validated when the deck is loaded, never during traversal.
	NextSlide string `json:"next_slide,omitempty" yaml:"next_slide,omitempty"`
}

// Slide is a node in the wizard graph. Slides are defined once at process
// start and never mutated at runtime.
type Slide struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []Option `json:"options" yaml:"options"`
}

// OptionByValue returns the option carrying the given value token.
func (s Slide) OptionByValue(value string) (Option, bool) {
	for _, opt := range s.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}
