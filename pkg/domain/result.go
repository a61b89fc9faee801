package domain

import "time"

// Result is a finished run. It is what the facade returns and what run stores persist.
type Result struct {
	ID           string     `json:"id"`
	DefinitionID string     `json:"definition_id"`
	Input        string     `json:"input"`
	Final        Snapshot   `json:"final"`
	Trace        []Snapshot `json:"trace,omitempty"`
	Verdict      Verdict    `json:"verdict"`

	// Failure holds the failure kind (e.g. "stack_overflow") when the run aborted.
	// Verdict is meaningless in that case and left as a rejection.
	Failure   string    `json:"failure,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Sealed carries the encrypted run when a store seals results at rest.
	// Only ID, DefinitionID and CreatedAt are readable next to it.
	Sealed string `json:"sealed,omitempty"`
}

// Failed reports whether the run aborted before halting normally.
func (r *Result) Failed() bool {
	return r.Failure != ""
}
