package dto

import (
	"fmt"
	"reflect"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Metadata is an undecoded document as read from YAML, JSON or front matter.
type Metadata = map[string]any

// DefinitionRecord is the declarative, on-disk shape of an automaton.
// It uses "mapstructure" tags so the same record decodes from YAML maps,
// JSON maps and Loam front matter.
type DefinitionRecord struct {
	ID            string             `json:"id" yaml:"id" mapstructure:"id"`
	Description   string             `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	InputAlphabet string             `json:"input_alphabet,omitempty" yaml:"input_alphabet,omitempty" mapstructure:"input_alphabet"`
	StackAlphabet string             `json:"stack_alphabet,omitempty" yaml:"stack_alphabet,omitempty" mapstructure:"stack_alphabet"`
	InitialState  int                `json:"initial_state" yaml:"initial_state" mapstructure:"initial_state"`
	InitialStack  string             `json:"initial_stack" yaml:"initial_stack" mapstructure:"initial_stack"`
	Accepting     []int              `json:"accepting" yaml:"accepting" mapstructure:"accepting"`
	Transitions   []TransitionRecord `json:"transitions" yaml:"transitions" mapstructure:"transitions"`

	// Optional capacity overrides; zero keeps the defaults.
	StateCap int `json:"state_cap,omitempty" yaml:"state_cap,omitempty" mapstructure:"state_cap"`
	StackCap int `json:"stack_cap,omitempty" yaml:"stack_cap,omitempty" mapstructure:"stack_cap"`
}

// TransitionRecord is one row of the declarative transition table.
// Empty FromInput or FromStack means epsilon.
type TransitionRecord struct {
	FromState int    `json:"from_state" yaml:"from_state" mapstructure:"from_state"`
	FromInput string `json:"from_input,omitempty" yaml:"from_input,omitempty" mapstructure:"from_input"`
	FromStack string `json:"from_stack,omitempty" yaml:"from_stack,omitempty" mapstructure:"from_stack"`
	ToState   int    `json:"to_state" yaml:"to_state" mapstructure:"to_state"`
	ToStack   string `json:"to_stack" yaml:"to_stack" mapstructure:"to_stack"`
}

// Decode converts a generic map (from YAML, JSON or front matter) into a record.
// Digit-only symbol strings must be quoted: YAML reads `to_stack: 00` as the number 0, so
// numbers are never turned back into strings. Unknown keys are rejected to surface typos.
func Decode(raw map[string]any) (*DefinitionRecord, error) {
	var rec DefinitionRecord
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &rec,
		TagName:     "mapstructure",
		DecodeHook:  quotedStringsHook,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDefinition, err)
	}
	return &rec, nil
}

// quotedStringsHook refuses non-string scalars for string fields.
func quotedStringsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() == reflect.String {
		return data, nil
	}
	return nil, fmt.Errorf("expected a quoted string, got %v (%T)", data, data)
}

// ToDomain validates the record and builds the immutable definition.
// Every field problem is collected into a single *AggregateError.
func (r *DefinitionRecord) ToDomain() (*domain.Definition, error) {
	var errs []error
	fail := func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value})
	}

	state := func(key string, v int) domain.StateID {
		if v < 0 {
			fail(key, "state must not be negative", v)
			return 0
		}
		return domain.StateID(v)
	}
	symbol := func(key, raw string) domain.Symbol {
		s, err := domain.ParseSymbol(raw)
		if err != nil {
			fail(key, "must be a single character or empty for epsilon", raw)
		}
		return s
	}

	def := &domain.Definition{
		ID:            r.ID,
		Description:   r.Description,
		InputAlphabet: domain.Symbols(r.InputAlphabet),
		StackAlphabet: domain.Symbols(r.StackAlphabet),
		Accepting:     make(map[domain.StateID]bool, len(r.Accepting)),
		InitialStack:  domain.Symbols(r.InitialStack),
		Initial:       state("initial_state", r.InitialState),
		Transitions:   make([]domain.Transition, 0, len(r.Transitions)),
		Limits:        domain.Limits{StateCap: r.StateCap, StackCap: r.StackCap}.WithDefaults(),
	}

	if r.ID == "" {
		fail("id", "is required", nil)
	}
	for i, a := range r.Accepting {
		def.Accepting[state(fmt.Sprintf("accepting[%d]", i), a)] = true
	}
	for i, tr := range r.Transitions {
		prefix := fmt.Sprintf("transitions[%d].", i)
		def.Transitions = append(def.Transitions, domain.Transition{
			From:  state(prefix+"from_state", tr.FromState),
			Input: symbol(prefix+"from_input", tr.FromInput),
			Top:   symbol(prefix+"from_stack", tr.FromStack),
			To:    state(prefix+"to_state", tr.ToState),
			Push:  domain.Symbols(tr.ToStack),
		})
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// FromDomain renders a definition back into its declarative record.
func FromDomain(def *domain.Definition) *DefinitionRecord {
	rec := &DefinitionRecord{
		ID:            def.ID,
		Description:   def.Description,
		InputAlphabet: domain.FormatSymbols(def.InputAlphabet),
		StackAlphabet: domain.FormatSymbols(def.StackAlphabet),
		InitialState:  int(def.Initial),
		InitialStack:  domain.FormatSymbols(def.InitialStack),
		Accepting:     []int{},
		Transitions:   make([]TransitionRecord, 0, len(def.Transitions)),
	}
	if def.Limits != domain.DefaultLimits() {
		rec.StateCap = def.Limits.StateCap
		rec.StackCap = def.Limits.StackCap
	}
	for _, id := range def.AcceptingStates() {
		rec.Accepting = append(rec.Accepting, int(id))
	}
	for _, t := range def.Transitions {
		rec.Transitions = append(rec.Transitions, TransitionRecord{
			FromState: int(t.From),
			FromInput: epsilonAsEmpty(t.Input),
			FromStack: epsilonAsEmpty(t.Top),
			ToState:   int(t.To),
			ToStack:   domain.FormatSymbols(t.Push),
		})
	}
	return rec
}

func epsilonAsEmpty(s domain.Symbol) string {
	if s.IsEpsilon() {
		return ""
	}
	return s.String()
}
