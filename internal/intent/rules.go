package intent

import "github.com/lorehub/relevance/internal/domain"

// patternGroup maps trigger phrases to an intent. Groups are checked in
// order; the first hit becomes the primary intent and later hits become
// secondary intents.
type patternGroup struct {
	intent   domain.Intent
	patterns []string
}

var patternGroups = []patternGroup{
	{domain.IntentImplementation, []string{
		"how to", "how do i", "how can i", "implement", "build", "create",
		"set up", "setup", "start a", "run a", "steps to", "guide to",
	}},
	{domain.IntentConceptual, []string{
		"what is", "what are", "what does", "explain", "meaning of",
		"define", "definition", "understand", "overview of",
	}},
	{domain.IntentExamples, []string{
		"example", "examples", "case study", "case studies", "sample",
		"show me", "stories of", "who has",
	}},
	{domain.IntentPhilosophy, []string{
		"why", "philosophy", "principle", "principles", "belief", "values",
		"purpose of", "ethics",
	}},
}

// comparisonPatterns mark a comparing query: primary conceptual with
// secondary examples.
var comparisonPatterns = []string{
	" vs ", " versus ", "compare", "comparison", "difference between",
	"better than",
}

// conceptTriggers is the fixed concept-keyword table. A query matches a
// concept if any trigger keyword is a substring of the lower-cased query.
var conceptTriggers = map[string][]string{
	"mentoring":            {"mentor", "mentee", "mentorship"},
	"imagination":          {"imagination", "imagine", "creative thinking"},
	"indigenous-knowledge": {"indigenous", "first nations", "custodian", "seven generations"},
	"education":            {"education", "school", "learning", "teaching", "curriculum"},
	"leadership":           {"leader", "leadership"},
	"relationships":        {"relationship", "connection", "network", "kinship"},
	"storytelling":         {"story", "stories", "narrative", "storytelling"},
	"systems-change":       {"systems change", "systemic", "inequity", "equity", "transformation"},
	"reward-economics":     {"hoodie", "reward", "recognition", "incentive"},
	"community":            {"community", "communities", "collective"},
}

// complexity cue words, checked against the lower-cased query.
var (
	advancedCues = []string{"advanced", "expert", "complex", "in depth", "in-depth", "deep dive"}
	basicCues    = []string{"basic", "simple", "intro", "introduction", "beginner", "101"}
)
