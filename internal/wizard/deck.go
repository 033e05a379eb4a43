package wizard

import (
	"fmt"
	"sort"

	"github.com/opskit/slipway/pkg/domain"
)

// Deck is the immutable slide table the engine traverses. It is built once
// at process start; after NewDeck returns, traversal never re-validates
// transition targets.
type Deck struct {
	slides map[string]domain.Slide
	entry  string
}

// NewDeck validates the slide set and returns a deck.
//
// Validation rules: slide IDs are unique and non-empty, the entry slide
// exists, every option carries a known action tag, and every navigate
// option's target resolves to a slide in the set.
func NewDeck(entry string, slides []domain.Slide) (*Deck, error) {
	if entry == "" {
		return nil, fmt.Errorf("deck: entry slide is required")
	}

	table := make(map[string]domain.Slide, len(slides))
	for _, s := range slides {
		if s.ID == "" {
			return nil, fmt.Errorf("deck: slide %q has no id", s.Title)
		}
		if _, dup := table[s.ID]; dup {
			return nil, fmt.Errorf("deck: duplicate slide id %q", s.ID)
		}
		table[s.ID] = s
	}

	if _, ok := table[entry]; !ok {
		return nil, fmt.Errorf("deck: entry slide %q not found", entry)
	}

	for _, s := range table {
		for _, opt := range s.Options {
			switch opt.Action {
			case domain.ActionProceed, domain.ActionUpdateSpreadsheet, domain.ActionLookupServices:
			case domain.ActionNavigate:
				if opt.NextSlide == "" {
					return nil, fmt.Errorf("deck: slide %q option %q navigates nowhere", s.ID, opt.Value)
				}
				if _, ok := table[opt.NextSlide]; !ok {
					return nil, fmt.Errorf("deck: slide %q option %q targets unknown slide %q", s.ID, opt.Value, opt.NextSlide)
				}
			default:
				return nil, fmt.Errorf("deck: slide %q option %q has unknown action %q", s.ID, opt.Value, opt.Action)
			}
		}
	}

	return &Deck{slides: table, entry: entry}, nil
}

// Slide looks up a slide by ID.
func (d *Deck) Slide(id string) (domain.Slide, bool) {
	s, ok := d.slides[id]
	return s, ok
}

// Entry returns the designated entry slide ID.
func (d *Deck) Entry() string {
	return d.entry
}

// Slides returns all slides sorted by ID, for introspection and validation
// tooling.
func (d *Deck) Slides() []domain.Slide {
	out := make([]domain.Slide, 0, len(d.slides))
	for _, s := range d.slides {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
