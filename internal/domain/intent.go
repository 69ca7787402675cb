package domain

// Intent is the inferred purpose behind a search query.
type Intent string

// Intent constants.
const (
	IntentImplementation Intent = "implementation"
	IntentConceptual     Intent = "conceptual"
	IntentExamples       Intent = "examples"
	IntentPhilosophy     Intent = "philosophy"
	IntentGeneral        Intent = "general"
)

// IsValid checks the intent against the supported set.
func (i Intent) IsValid() bool {
	switch i {
	case IntentImplementation, IntentConceptual, IntentExamples,
		IntentPhilosophy, IntentGeneral:
		return true
	}
	return false
}

// IntentAnalysis is the per-query classification. Ephemeral: produced once
// per search, attached to response metadata, never persisted.
type IntentAnalysis struct {
	Primary    Intent
	Secondary  []Intent
	Concepts   []string
	Complexity int
	Confidence float64
}
