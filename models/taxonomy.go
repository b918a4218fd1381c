package models

// Phase indicates whether a taxonomy class depicts an open violation or
// its remediated state.
type Phase string

const (
	// PhaseBefore marks a class photographed with the violation present.
	PhaseBefore Phase = "before"
	// PhaseAfter marks the same scene after the violation was resolved.
	PhaseAfter Phase = "after"
)

// Class is one entry of the detection taxonomy: a regulatory code paired
// with the phase it was photographed in.
type Class struct {
	Code  string
	Phase Phase
}

// Taxonomy is the fixed, ordered class list the model was trained on.
// Even indices are Before classes; index i+1 is the After pair of index i.
type Taxonomy []Class

// DefaultTaxonomy lists the 6 regulatory codes the model detects, each in
// both phases. The order must match the model's output vector exactly.
var DefaultTaxonomy = Taxonomy{
	{Code: "Guardrail", Phase: PhaseBefore},
	{Code: "Guardrail", Phase: PhaseAfter},
	{Code: "Scaffold", Phase: PhaseBefore},
	{Code: "Scaffold", Phase: PhaseAfter},
	{Code: "FloorOpening", Phase: PhaseBefore},
	{Code: "FloorOpening", Phase: PhaseAfter},
	{Code: "Ladder", Phase: PhaseBefore},
	{Code: "Ladder", Phase: PhaseAfter},
	{Code: "SafetyNet", Phase: PhaseBefore},
	{Code: "SafetyNet", Phase: PhaseAfter},
	{Code: "WorkPlatform", Phase: PhaseBefore},
	{Code: "WorkPlatform", Phase: PhaseAfter},
}

// CodeDescriptions maps a regulatory code to the reviewer-facing text
// shown for its violation finding.
var CodeDescriptions = map[string]string{
	"Guardrail":    "Guardrails must be installed along open edges and elevated walkways.",
	"Scaffold":     "Scaffolding must be fully planked, braced and erected on stable footing.",
	"FloorOpening": "Floor and wall openings must be covered or protected by barriers.",
	"Ladder":       "Ladders must be secured, undamaged and extend above the landing surface.",
	"SafetyNet":    "Safety nets must be installed below elevated work areas without fall protection.",
	"WorkPlatform": "Work platforms must have toe boards, rails and a rated load capacity posted.",
}

// FallbackDescription is the caption used when a code has no registered
// description.
const FallbackDescription = "No description available."
