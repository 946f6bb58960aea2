package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/DigiCred-Holdings/credential-analysis/internal/analysis"
	"github.com/DigiCred-Holdings/credential-analysis/internal/config"
	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
	"github.com/DigiCred-Holdings/credential-analysis/internal/narrative"
	"github.com/DigiCred-Holdings/credential-analysis/internal/registry"
)

// AnalysisService runs the transcript resolution pipeline: resolve the source
// institution, match the student's courses against its catalog, aggregate
// skills and grades, and infer the primary domain. Each call builds a fresh
// profile; the service holds no per-request state.
type AnalysisService struct {
	provider  registry.Provider
	generator narrative.Generator
	cfg       *config.Config
	log       zerolog.Logger
}

func NewAnalysisService(provider registry.Provider, generator narrative.Generator, cfg *config.Config, log zerolog.Logger) *AnalysisService {
	return &AnalysisService{
		provider:  provider,
		generator: generator,
		cfg:       cfg,
		log:       log.With().Str("component", "analysis_service").Logger(),
	}
}

// AnalyzeTranscript resolves and aggregates one transcript. Fatal errors
// (registry.ErrUnknownSource, analysis.ErrNoCandidates,
// analysis.ErrMalformedEntry) propagate unmodified for the handler to map;
// matching itself never fails.
func (s *AnalysisService) AnalyzeTranscript(ctx context.Context, req *model.AnalyzeRequest) (*model.StudentProfile, error) {
	sourceCode, err := s.provider.ResolveSource(ctx, req.Source)
	if err != nil {
		return nil, err
	}

	catalog, err := s.provider.FetchCatalog(ctx, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog for %s: %w", sourceCode, err)
	}

	matchedIDs, grades, err := analysis.MatchAll(req.CoursesList, catalog)
	if err != nil {
		return nil, err
	}

	recordsByID := make(map[string]model.CourseRecord, len(catalog))
	for _, record := range catalog {
		recordsByID[record.ID] = record
	}

	matched := make([]model.MatchedCourse, 0, len(matchedIDs))
	for _, id := range matchedIDs {
		course := model.MatchedCourse{CourseRecord: recordsByID[id]}
		if grade, ok := grades[id]; ok {
			course.ClassifiedGrade = analysis.ClassifyGrade(grade)
			course.Underperforming = analysis.IsUnderperforming(grade,
				s.cfg.GradeGPAThreshold, s.cfg.GradePercentThreshold)
		}
		matched = append(matched, course)
	}

	profile := &model.StudentProfile{
		Source:           sourceCode,
		CourseIDs:        matchedIDs,
		MatchedCourses:   matched,
		Skills:           analysis.AggregateSkills(matched, true),
		AllSkills:        analysis.AggregateSkills(matched, false),
		SkillGroupTotals: analysis.SumSkillGroups(matched),
		PrimaryDomain:    analysis.InferPrimaryDomain(matched),
	}

	s.log.Debug().
		Str("source", sourceCode).
		Int("entries", len(req.CoursesList)).
		Int("catalog", len(catalog)).
		Strs("primary_subjects", profile.PrimaryDomain.Subjects).
		Msg("Transcript analyzed")

	return profile, nil
}

// Summarize produces the narrative summary for a built profile. A failing or
// disabled generator degrades to an empty summary; the error is returned for
// logging but callers treat it as non-fatal.
func (s *AnalysisService) Summarize(ctx context.Context, profile *model.StudentProfile) (string, error) {
	courses := make([]narrative.CourseContext, 0, len(profile.MatchedCourses))
	for _, course := range profile.MatchedCourses {
		courses = append(courses, narrative.CourseContext{
			Title:       course.Title,
			Description: course.Description,
		})
	}

	return s.generator.Summarize(ctx, narrative.Payload{
		Skills:      profile.AllSkills,
		SkillGroups: profile.SkillGroupTotals,
		Courses:     courses,
	})
}
