package admission

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tuyensinh/admission-advisor/model"
)

// Retriever builds the context block for a chat query from the catalog.
// Every call re-reads the collections it needs; nothing is kept between calls.
type Retriever struct {
	catalog Catalog
	logger  zerolog.Logger
}

// NewRetriever creates a retriever over catalog
func NewRetriever(catalog Catalog, logger zerolog.Logger) *Retriever {
	return &Retriever{
		catalog: catalog,
		logger:  logger.With().Str("component", "admission_retriever").Logger(),
	}
}

// GetAdmissionContext classifies query, matches it against every collection
// and renders the result. A collection that fails to load is replaced by an
// error line; the remaining sections are still rendered.
func (r *Retriever) GetAdmissionContext(ctx context.Context, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	intent := ClassifyIntent(query)
	b := NewContextBuilder()

	universities, err := r.catalog.Universities(ctx)
	if err != nil {
		r.fail(b, "universities", err)
	} else {
		b.Universities(MatchUniversities(query, universities))
	}

	majors, err := r.catalog.Majors(ctx)
	if err != nil {
		r.fail(b, "majors", err)
	} else {
		matched := r.matchMajors(query, intent, majors, universities)
		if intent == IntentMajorCount {
			b.MajorCounts(matched)
		} else {
			b.Majors(matched)
		}

		if len(matched) > 0 {
			programs, err := r.catalog.AcademicPrograms(ctx)
			if err != nil {
				r.fail(b, "academic_programs", err)
			} else {
				b.Tuition(ProgramsForMajors(matched, programs))
			}
		}
	}

	if methods, err := r.catalog.AdmissionMethods(ctx); err != nil {
		r.fail(b, "admission_methods", err)
	} else {
		b.AdmissionMethods(MatchAdmissionMethods(query, methods))
	}

	if criteria, err := r.catalog.AdmissionCriteria(ctx); err != nil {
		r.fail(b, "admission_criteria", err)
	} else {
		b.AdmissionCriteria(MatchAdmissionCriteria(query, criteria))
	}

	if scores, err := r.catalog.AdmissionScores(ctx); err != nil {
		r.fail(b, "admission_scores", err)
	} else {
		b.AdmissionScores(MatchAdmissionScores(query, scores))
	}

	if news, err := r.catalog.AdmissionNews(ctx); err != nil {
		r.fail(b, "admission_news", err)
	} else {
		b.AdmissionNews(MatchAdmissionNews(query, news))
	}

	if scholarships, err := r.catalog.Scholarships(ctx); err != nil {
		r.fail(b, "scholarships", err)
	} else {
		b.Scholarships(MatchScholarships(query, scholarships))
	}

	out := b.String()
	r.logger.Debug().
		Str("intent", intent.String()).
		Int("context_length", len(out)).
		Msg("Admission context assembled")
	return out
}

func (r *Retriever) matchMajors(query string, intent Intent, majors []model.Major, universities []model.University) []model.Major {
	if intent != IntentGeneral {
		matched := MatchMajors(query, intent, majors, universities)
		r.logger.Debug().
			Str("intent", intent.String()).
			Int("majors", len(matched)).
			Msg("Majors matched")
		return matched
	}

	tiers := GeneralTiers(query, majors)
	if e := r.logger.Debug(); e.Enabled() {
		counts := zerolog.Dict()
		for _, t := range tiers {
			counts.Int(t.Name, len(t.Majors))
		}
		e.Dict("tiers", counts).Msg("Relevance tiers evaluated")
	}
	return MergeTiers(tiers, MaxGeneralMajors)
}

func (r *Retriever) fail(b *ContextBuilder, collection string, err error) {
	r.logger.Error().Err(err).Str("collection", collection).Msg("Failed to load admission data")
	b.Failure(err)
}
