package admission

import "strings"

// Intent selects the retrieval strategy for a query
type Intent int

const (
	// IntentGeneral runs the tiered relevance search over all majors
	IntentGeneral Intent = iota
	// IntentProgramExistence answers "which university offers major X"
	IntentProgramExistence
	// IntentMajorCount answers "how many majors does university X have"
	IntentMajorCount
)

var (
	programExistenceTriggers = []string{"trường có ngành", "trường nào có"}
	majorCountTriggers       = []string{"có bao nhiều ngành", "có mấy ngành"}
)

func (i Intent) String() string {
	switch i {
	case IntentProgramExistence:
		return "program_existence"
	case IntentMajorCount:
		return "major_count"
	default:
		return "general"
	}
}

// ClassifyIntent picks the intent of a raw query. Program-existence triggers
// are checked before count triggers; the first match wins.
func ClassifyIntent(query string) Intent {
	lower := strings.ToLower(query)
	for _, t := range programExistenceTriggers {
		if strings.Contains(lower, t) {
			return IntentProgramExistence
		}
	}
	for _, t := range majorCountTriggers {
		if strings.Contains(lower, t) {
			return IntentMajorCount
		}
	}
	return IntentGeneral
}
