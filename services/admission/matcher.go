package admission

import (
	"sort"
	"strings"

	"github.com/tuyensinh/admission-advisor/model"
)

// Result caps per collection
const (
	MaxGeneralMajors      = 20
	MaxCountUniversities  = 5
	MaxUniversities       = 5
	MaxAdmissionMethods   = 10
	MaxAdmissionCriteria  = 15
	MaxAdmissionScores    = 10
	MaxAdmissionNews      = 5
	MaxScholarships       = 5
	fullNameMatchRatio    = 0.7
	looseMatchTokenCutoff = 3
)

// Tier is the output of one matching pass over the majors
type Tier struct {
	Name   string
	Majors []model.Major
}

// MatchMajors runs the strategy selected by intent and returns the relevant
// majors. universities is only consulted for the count intent.
func MatchMajors(query string, intent Intent, majors []model.Major, universities []model.University) []model.Major {
	switch intent {
	case IntentProgramExistence:
		return MatchProgramExistence(query, majors)
	case IntentMajorCount:
		return MatchMajorCount(query, majors, universities)
	default:
		return MergeTiers(GeneralTiers(query, majors), MaxGeneralMajors)
	}
}

// GeneralTiers runs every relevance pass in priority order. Earlier tiers are
// more precise; MergeTiers keeps a major at the position of its first tier.
func GeneralTiers(query string, majors []model.Major) []Tier {
	tokens := Tokenize(query)
	important := without(tokens, generalStopWords)
	specific := without(tokens, nameWordStopWords)
	curated := within(tokens, CuratedKeywords)

	return []Tier{
		{Name: "full_name_ratio", Majors: filterMajors(majors, func(m model.Major) bool {
			return matchesFullName(universityName(m), important)
		})},
		{Name: "short_name", Majors: filterMajors(majors, func(m model.Major) bool {
			return inFold(tokens, universityShortName(m))
		})},
		{Name: "curated_keyword", Majors: filterMajors(majors, func(m model.Major) bool {
			return containsAnyFold(universityName(m), curated) || containsAnyFold(universityShortName(m), curated)
		})},
		{Name: "name_word", Majors: filterMajors(majors, func(m model.Major) bool {
			return nameWordMatch(universityName(m), specific)
		})},
		{Name: "university_contains_query", Majors: filterMajors(majors, func(m model.Major) bool {
			return m.University != nil && (containsFold(m.University.Name, query) || containsFold(m.University.ShortName, query))
		})},
		{Name: "major_contains_query", Majors: filterMajors(majors, func(m model.Major) bool {
			return containsFold(m.Name, query) || containsFold(m.Description, query)
		})},
		{Name: "keyword_overlap", Majors: filterMajors(majors, func(m model.Major) bool {
			return looseOverlap(m, tokens)
		})},
	}
}

// MergeTiers concatenates tiers in order, skipping majors already taken, and
// stops at limit.
func MergeTiers(tiers []Tier, limit int) []model.Major {
	seen := make(map[uint]struct{})
	out := make([]model.Major, 0, limit)
	for _, tier := range tiers {
		for _, m := range tier.Majors {
			if len(out) >= limit {
				return out
			}
			if _, ok := seen[m.ID]; ok {
				continue
			}
			seen[m.ID] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

// MatchProgramExistence returns every major whose name contains one of the
// query's subject keywords. The result is not truncated.
func MatchProgramExistence(query string, majors []model.Major) []model.Major {
	keywords := without(Tokenize(query), programStopWords)
	if len(keywords) == 0 {
		return nil
	}
	return filterMajors(majors, func(m model.Major) bool {
		return containsAnyFold(m.Name, keywords)
	})
}

// MatchMajorCount resolves the universities named by a count question and
// returns all of their majors. When no university resolves, majors are
// matched on their university's names directly.
func MatchMajorCount(query string, majors []model.Major, universities []model.University) []model.Major {
	keywords := without(Tokenize(query), countStopWords)
	found := MatchCountUniversities(keywords, universities)
	if len(found) > 0 {
		ids := make(map[uint]struct{}, len(found))
		for _, u := range found {
			ids[u.ID] = struct{}{}
		}
		return filterMajors(majors, func(m model.Major) bool {
			_, ok := ids[m.UniversityID]
			return ok
		})
	}
	return filterMajors(majors, func(m model.Major) bool {
		return containsAnyFold(universityName(m), keywords) || containsAnyFold(universityShortName(m), keywords)
	})
}

// MatchCountUniversities finds at most MaxCountUniversities universities for
// the keywords: short-name equality first, then the count keyword list, then
// keyword overlap.
func MatchCountUniversities(keywords []string, universities []model.University) []model.University {
	special := within(keywords, CountIntentKeywords)
	required := requiredOverlap(len(keywords))

	byShortName := filterUniversities(universities, func(u model.University) bool {
		return inFold(keywords, u.ShortName)
	})
	bySpecial := filterUniversities(universities, func(u model.University) bool {
		return containsAnyFold(u.Name, special) || containsAnyFold(u.ShortName, special)
	})
	byOverlap := filterUniversities(universities, func(u model.University) bool {
		n := 0
		for _, k := range keywords {
			if containsFold(u.Name, k) || containsFold(u.ShortName, k) {
				n++
			}
		}
		return n >= required
	})

	seen := make(map[uint]struct{})
	var out []model.University
	for _, group := range [][]model.University{byShortName, bySpecial, byOverlap} {
		for _, u := range group {
			if len(out) >= MaxCountUniversities {
				return out
			}
			if _, ok := seen[u.ID]; ok {
				continue
			}
			seen[u.ID] = struct{}{}
			out = append(out, u)
		}
	}
	return out
}

// MatchUniversities returns universities whose name, introduction or short
// name contains the raw query.
func MatchUniversities(query string, list []model.University) []model.University {
	return takeMatching(list, MaxUniversities, func(u model.University) bool {
		return containsFold(u.Name, query) || containsFold(u.Introduction, query) || containsFold(u.ShortName, query)
	})
}

func MatchAdmissionMethods(query string, list []model.AdmissionMethod) []model.AdmissionMethod {
	return takeMatching(list, MaxAdmissionMethods, func(m model.AdmissionMethod) bool {
		return containsFold(m.Name, query) || containsFold(m.Description, query)
	})
}

func MatchAdmissionCriteria(query string, list []model.AdmissionCriteria) []model.AdmissionCriteria {
	return takeMatching(list, MaxAdmissionCriteria, func(c model.AdmissionCriteria) bool {
		return containsFold(c.Name, query) || containsFold(c.Description, query)
	})
}

// MatchAdmissionScores matches on the score's major name and its university name
func MatchAdmissionScores(query string, list []model.AdmissionScore) []model.AdmissionScore {
	return takeMatching(list, MaxAdmissionScores, func(s model.AdmissionScore) bool {
		if s.Major == nil {
			return false
		}
		return containsFold(s.Major.Name, query) || containsFold(universityName(*s.Major), query)
	})
}

// MatchAdmissionNews returns the most recently published matching news first
func MatchAdmissionNews(query string, list []model.AdmissionNew) []model.AdmissionNew {
	matched := takeMatching(list, len(list), func(n model.AdmissionNew) bool {
		return containsFold(n.Title, query) || containsFold(n.Content, query)
	})
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PublishDate.After(matched[j].PublishDate)
	})
	if len(matched) > MaxAdmissionNews {
		matched = matched[:MaxAdmissionNews]
	}
	return matched
}

func MatchScholarships(query string, list []model.Scholarship) []model.Scholarship {
	return takeMatching(list, MaxScholarships, func(s model.Scholarship) bool {
		return containsFold(s.Name, query) || containsFold(s.Description, query) || containsFold(s.Criteria, query)
	})
}

// ProgramsForMajors returns the programs offered by the universities of the
// given majors, in catalog order.
func ProgramsForMajors(majors []model.Major, programs []model.AcademicProgram) []model.AcademicProgram {
	ids := make(map[uint]struct{}, len(majors))
	for _, m := range majors {
		ids[m.UniversityID] = struct{}{}
	}
	return takeMatching(programs, len(programs), func(p model.AcademicProgram) bool {
		_, ok := ids[p.UniversityID]
		return ok
	})
}

func matchesFullName(name string, important []string) bool {
	if len(important) == 0 || name == "" {
		return false
	}
	words := strings.Fields(name)
	matched := 0
	for _, w := range important {
		for _, nw := range words {
			if containsFold(nw, w) {
				matched++
				break
			}
		}
	}
	return float64(matched)/float64(len(important)) >= fullNameMatchRatio
}

func nameWordMatch(name string, keywords []string) bool {
	if len(keywords) == 0 || name == "" {
		return false
	}
	for _, nw := range strings.Fields(name) {
		if containsAnyFold(nw, keywords) {
			return true
		}
	}
	return false
}

func looseOverlap(m model.Major, tokens []string) bool {
	uniMatches, majorMatches := 0, 0
	for _, t := range tokens {
		if containsFold(universityName(m), t) || containsFold(universityShortName(m), t) {
			uniMatches++
		}
		if containsFold(m.Name, t) {
			majorMatches++
		}
	}
	return uniMatches >= requiredOverlap(len(tokens)) || majorMatches >= 1
}

func requiredOverlap(n int) int {
	if n <= looseMatchTokenCutoff {
		return 1
	}
	return 2
}

func universityName(m model.Major) string {
	if m.University == nil {
		return ""
	}
	return m.University.Name
}

func universityShortName(m model.Major) string {
	if m.University == nil {
		return ""
	}
	return m.University.ShortName
}

func filterMajors(majors []model.Major, keep func(model.Major) bool) []model.Major {
	return takeMatching(majors, len(majors), keep)
}

func filterUniversities(list []model.University, keep func(model.University) bool) []model.University {
	return takeMatching(list, len(list), keep)
}

func takeMatching[T any](items []T, limit int, keep func(T) bool) []T {
	var out []T
	for _, it := range items {
		if len(out) >= limit {
			break
		}
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
