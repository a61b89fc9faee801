package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// RunOverlay highlights a run on top of the state diagram.
type RunOverlay struct {
	VisitedStates []domain.StateID
	CurrentState  *domain.StateID
}

// OverlayFromTrace marks every state of the trace as visited and the last one as current.
func OverlayFromTrace(trace []domain.Snapshot) *RunOverlay {
	if len(trace) == 0 {
		return nil
	}
	overlay := &RunOverlay{}
	for _, snap := range trace {
		overlay.VisitedStates = append(overlay.VisitedStates, snap.State)
	}
	last := trace[len(trace)-1].State
	overlay.CurrentState = &last
	return overlay
}

// GenerateMermaid produces a Mermaid state diagram for the automaton.
// Each transition becomes an edge labelled "input, top / push" (ε for epsilon).
// The initial state is entered from [*] and accepting states are styled and exit to [*].
// Overlay styles (visited/current) are applied when overlay is not nil.
func GenerateMermaid(def *domain.Definition, overlay *RunOverlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	if def.Description != "" {
		sb.WriteString(fmt.Sprintf("    %%%% %s\n", strings.ReplaceAll(def.Description, "\n", " ")))
	}

	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", stateID(def.Initial)))

	for _, t := range def.Transitions {
		sb.WriteString(fmt.Sprintf("    %s --> %s : %s\n", stateID(t.From), stateID(t.To), label(t)))
	}

	accepting := def.AcceptingStates()
	for _, id := range accepting {
		sb.WriteString(fmt.Sprintf("    %s --> [*]\n", stateID(id)))
	}

	if len(accepting) > 0 {
		sb.WriteString("\n    classDef accepting stroke-width:4px;\n")
		for _, id := range accepting {
			sb.WriteString(fmt.Sprintf("    class %s accepting\n", stateID(id)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		seen := make(map[domain.StateID]bool)
		for _, id := range overlay.VisitedStates {
			if seen[id] {
				continue
			}
			seen[id] = true
			if overlay.CurrentState != nil && *overlay.CurrentState == id {
				continue
			}
			sb.WriteString(fmt.Sprintf("    class %s visited\n", stateID(id)))
		}

		if overlay.CurrentState != nil {
			sb.WriteString(fmt.Sprintf("    class %s current\n", stateID(*overlay.CurrentState)))
		}
	}

	return sb.String()
}

func stateID(id domain.StateID) string {
	return fmt.Sprintf("q%d", id)
}

func label(t domain.Transition) string {
	push := domain.FormatSymbols(t.Push)
	if push == "" {
		push = "ε"
	}
	return escapeLabel(fmt.Sprintf("%s, %s / %s", t.Input, t.Top, push))
}

// escapeLabel rewrites characters Mermaid treats as syntax into entity codes.
func escapeLabel(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '#':
			sb.WriteString("#35;")
		case ';':
			sb.WriteString("#59;")
		case ':':
			sb.WriteString("#58;")
		case '"':
			sb.WriteString("#quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
