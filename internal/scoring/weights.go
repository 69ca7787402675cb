package scoring

// Weights holds the relevance blend constants. The defaults are heuristic
// starting points, not calibrated values, so deployments can override them
// in configuration.
type Weights struct {
	// Composite blend for the embedding-assisted path.
	Similarity float64 `yaml:"similarity"`
	RuleBased  float64 `yaml:"rule_based"`

	// Rule-based signal caps and bonuses.
	ExactTitle        float64 `yaml:"exact_title"`
	TermOverlapMax    float64 `yaml:"term_overlap_max"`
	ConceptOverlapMax float64 `yaml:"concept_overlap_max"`
	AlignPrimary      float64 `yaml:"align_primary"`
	AlignSecondary    float64 `yaml:"align_secondary"`
	QualityMax        float64 `yaml:"quality_max"`
	EngagementBonus   float64 `yaml:"engagement_bonus"`
	EngagementFloor   float64 `yaml:"engagement_floor"`
	ComplexityBonus   float64 `yaml:"complexity_bonus"`

	// LexicalFloor excludes near-zero matches in lexical-only mode. The
	// embedding path has no floor: the similarity threshold already filters.
	LexicalFloor float64 `yaml:"lexical_floor"`
}

// DefaultWeights returns the documented default blend.
func DefaultWeights() Weights {
	return Weights{
		Similarity:        0.7,
		RuleBased:         0.3,
		ExactTitle:        1.0,
		TermOverlapMax:    0.8,
		ConceptOverlapMax: 0.6,
		AlignPrimary:      0.7,
		AlignSecondary:    0.4,
		QualityMax:        0.2,
		EngagementBonus:   0.1,
		EngagementFloor:   0.7,
		ComplexityBonus:   0.1,
		LexicalFloor:      0.3,
	}
}

// ApplyDefaults fills zero fields with the documented defaults so partial
// config overrides stay safe.
func (w *Weights) ApplyDefaults() {
	def := DefaultWeights()
	if w.Similarity <= 0 {
		w.Similarity = def.Similarity
	}
	if w.RuleBased <= 0 {
		w.RuleBased = def.RuleBased
	}
	if w.ExactTitle <= 0 {
		w.ExactTitle = def.ExactTitle
	}
	if w.TermOverlapMax <= 0 {
		w.TermOverlapMax = def.TermOverlapMax
	}
	if w.ConceptOverlapMax <= 0 {
		w.ConceptOverlapMax = def.ConceptOverlapMax
	}
	if w.AlignPrimary <= 0 {
		w.AlignPrimary = def.AlignPrimary
	}
	if w.AlignSecondary <= 0 {
		w.AlignSecondary = def.AlignSecondary
	}
	if w.QualityMax <= 0 {
		w.QualityMax = def.QualityMax
	}
	if w.EngagementBonus <= 0 {
		w.EngagementBonus = def.EngagementBonus
	}
	if w.EngagementFloor <= 0 {
		w.EngagementFloor = def.EngagementFloor
	}
	if w.ComplexityBonus <= 0 {
		w.ComplexityBonus = def.ComplexityBonus
	}
	if w.LexicalFloor <= 0 {
		w.LexicalFloor = def.LexicalFloor
	}
}
