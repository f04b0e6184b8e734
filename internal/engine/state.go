package engine

// State is a full evaluation of a session for rendering
type State struct {
	Balances   map[string]float64 `json:"balances"`
	Counts     map[string]int     `json:"counts"`
	Categories []CategoryState    `json:"categories"`
}

// CategoryState describes one category and its options
type CategoryState struct {
	Name         string        `json:"name"`
	Unlocked     bool          `json:"unlocked"`
	Requirements []Requirement `json:"requirements,omitempty"`
	Options      []OptionState `json:"options"`
}

// OptionState describes one option
type OptionState struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Count      int      `json:"count"`
	Cap        int      `json:"cap"`
	Selectable bool     `json:"selectable"`
	Reasons    []Reason `json:"reasons,omitempty"`
}

// Snapshot evaluates every category and option against the current state.
// Nothing is cached between calls.
func (s *Session) Snapshot() *State {
	state := &State{
		Balances: s.ledger.Balances(),
		Counts:   s.registry.Counts(),
	}

	for _, category := range s.catalog.Categories() {
		unlocked := s.gate.IsUnlocked(category)
		cs := CategoryState{
			Name:         category.Name,
			Unlocked:     unlocked,
			Requirements: s.gate.Requirements(category),
			Options:      make([]OptionState, 0, len(category.Options)),
		}

		for _, option := range category.Options {
			if option == nil {
				continue
			}
			reasons := s.Explain(option)
			cs.Options = append(cs.Options, OptionState{
				ID:         option.ID,
				Label:      option.Label,
				Count:      s.registry.Count(option.ID),
				Cap:        option.Cap(),
				Selectable: len(reasons) == 0,
				Reasons:    reasons,
			})
		}

		state.Categories = append(state.Categories, cs)
	}

	return state
}
