package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DigiCred-Holdings/credential-analysis/internal/analysis"
	"github.com/DigiCred-Holdings/credential-analysis/internal/config"
	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
	"github.com/DigiCred-Holdings/credential-analysis/internal/narrative"
	"github.com/DigiCred-Holdings/credential-analysis/internal/registry"
)

type stubProvider struct {
	sourceCode string
	catalog    []model.CourseRecord
}

func (p *stubProvider) ResolveSource(_ context.Context, source string) (string, error) {
	if source != p.sourceCode && source != "Cape Fear Community College" {
		return "", registry.ErrUnknownSource
	}
	return p.sourceCode, nil
}

func (p *stubProvider) FetchCatalog(_ context.Context, sourceCode string) ([]model.CourseRecord, error) {
	if sourceCode != p.sourceCode {
		return nil, nil
	}
	return p.catalog, nil
}

func (p *stubProvider) Sources(_ context.Context) ([]model.Institution, error) {
	return []model.Institution{{Code: p.sourceCode}}, nil
}

type recordingGenerator struct {
	payload narrative.Payload
}

func (g *recordingGenerator) Summarize(_ context.Context, payload narrative.Payload) (string, error) {
	g.payload = payload
	return "You excel greatly in accounting.", nil
}

func testConfig() *config.Config {
	return &config.Config{
		GradeGPAThreshold:     analysis.DefaultGPAThreshold,
		GradePercentThreshold: analysis.DefaultPercentThreshold,
	}
}

func cfccCatalog() []model.CourseRecord {
	return []model.CourseRecord{
		{
			ID: "cfcc-acc-120", SourceInstitution: "CFCC",
			Title: "Principles of Financial Accounting", Code: "ACC 120",
			Description: "Ledgers and statements.",
			Skills:      []string{"ledgers", "financial statements"},
			SkillGroupWeights: map[string]float64{
				"business": 2, "finance": 1,
			},
		},
		{
			ID: "cfcc-acc-150", SourceInstitution: "CFCC",
			Title: "Accounting Software Applications", Code: "ACC 150",
			Description:       "Payroll packages.",
			Skills:            []string{"payroll software", "ledgers"},
			SkillGroupWeights: map[string]float64{"business": 1},
		},
		{
			ID: "cfcc-eng-111", SourceInstitution: "CFCC",
			Title: "Writing and Inquiry", Code: "ENG 111",
			Skills:            []string{"composition"},
			SkillGroupWeights: map[string]float64{"communication": 1},
		},
	}
}

func TestAnalyzeTranscript(t *testing.T) {
	provider := &stubProvider{sourceCode: "CFCC", catalog: cfccCatalog()}
	svc := NewAnalysisService(provider, narrative.Disabled{}, testConfig(), zerolog.Nop())

	req := &model.AnalyzeRequest{
		Source: "Cape Fear Community College",
		CoursesList: []model.StudentCourseEntry{
			{Title: "Prin of Financial Accounting", Code: "ACC-120", Grade: "B"},
			{Title: "Accounting Software Appl", Code: "ACC 150", Grade: "55%"},
			{Title: "Writing & Inquiry", Code: "ENG 111"},
		},
	}

	profile, err := svc.AnalyzeTranscript(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "CFCC", profile.Source)
	assert.Equal(t, []string{"cfcc-acc-120", "cfcc-acc-150", "cfcc-eng-111"}, profile.CourseIDs)

	require.Len(t, profile.MatchedCourses, 3)
	require.NotNil(t, profile.MatchedCourses[0].ClassifiedGrade)
	assert.InDelta(t, 3.0, *profile.MatchedCourses[0].ClassifiedGrade, 1e-9)
	assert.False(t, profile.MatchedCourses[0].Underperforming)
	assert.True(t, profile.MatchedCourses[1].Underperforming)
	assert.Nil(t, profile.MatchedCourses[2].ClassifiedGrade)

	assert.Equal(t, []string{"ledgers", "financial statements", "payroll software", "composition"}, profile.Skills)
	assert.Len(t, profile.AllSkills, 5) // "ledgers" kept twice in the raw list
	assert.InDelta(t, 3.0, profile.SkillGroupTotals["business"], 1e-9)
	assert.InDelta(t, 1.0, profile.SkillGroupTotals["communication"], 1e-9)

	// ACC covers 2/3 of the transcript and dominates.
	assert.Equal(t, []string{"ACC"}, profile.PrimaryDomain.Subjects)
	assert.Equal(t, []string{"cfcc-acc-120", "cfcc-acc-150"}, profile.PrimaryDomain.CourseIDs)
}

func TestAnalyzeTranscriptUnknownSource(t *testing.T) {
	provider := &stubProvider{sourceCode: "CFCC", catalog: cfccCatalog()}
	svc := NewAnalysisService(provider, narrative.Disabled{}, testConfig(), zerolog.Nop())

	_, err := svc.AnalyzeTranscript(context.Background(), &model.AnalyzeRequest{
		Source:      "Nowhere College",
		CoursesList: []model.StudentCourseEntry{{Title: "Biology", Code: "BIO 101"}},
	})
	assert.ErrorIs(t, err, registry.ErrUnknownSource)
}

func TestAnalyzeTranscriptEmptyCatalog(t *testing.T) {
	provider := &stubProvider{sourceCode: "CFCC"}
	svc := NewAnalysisService(provider, narrative.Disabled{}, testConfig(), zerolog.Nop())

	_, err := svc.AnalyzeTranscript(context.Background(), &model.AnalyzeRequest{
		Source:      "CFCC",
		CoursesList: []model.StudentCourseEntry{{Title: "Biology", Code: "BIO 101"}},
	})
	assert.ErrorIs(t, err, analysis.ErrNoCandidates)
}

func TestSummarizePayload(t *testing.T) {
	provider := &stubProvider{sourceCode: "CFCC", catalog: cfccCatalog()}
	gen := &recordingGenerator{}
	svc := NewAnalysisService(provider, gen, testConfig(), zerolog.Nop())

	profile, err := svc.AnalyzeTranscript(context.Background(), &model.AnalyzeRequest{
		Source: "CFCC",
		CoursesList: []model.StudentCourseEntry{
			{Title: "Prin of Financial Accounting", Code: "ACC 120"},
		},
	})
	require.NoError(t, err)

	summary, err := svc.Summarize(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, "You excel greatly in accounting.", summary)

	// The generator receives the raw skill list and course descriptions.
	assert.Equal(t, profile.AllSkills, gen.payload.Skills)
	require.Len(t, gen.payload.Courses, 1)
	assert.Equal(t, "Principles of Financial Accounting", gen.payload.Courses[0].Title)
	assert.Equal(t, "Ledgers and statements.", gen.payload.Courses[0].Description)
}
