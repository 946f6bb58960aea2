package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DigiCred-Holdings/credential-analysis/internal/config"
	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
	"github.com/DigiCred-Holdings/credential-analysis/internal/narrative"
	"github.com/DigiCred-Holdings/credential-analysis/internal/registry"
	"github.com/DigiCred-Holdings/credential-analysis/internal/service"
	"github.com/DigiCred-Holdings/credential-analysis/internal/validator"
)

type fixedProvider struct {
	catalog []model.CourseRecord
}

func (p *fixedProvider) ResolveSource(_ context.Context, source string) (string, error) {
	if strings.EqualFold(source, "Cape Fear Community College") || strings.EqualFold(source, "CFCC") {
		return "CFCC", nil
	}
	return "", registry.ErrUnknownSource
}

func (p *fixedProvider) FetchCatalog(_ context.Context, sourceCode string) ([]model.CourseRecord, error) {
	if sourceCode == "CFCC" {
		return p.catalog, nil
	}
	return nil, nil
}

func (p *fixedProvider) Sources(_ context.Context) ([]model.Institution, error) {
	return []model.Institution{{Code: "CFCC", Name: "Cape Fear Community College"}}, nil
}

func setupAnalysisRouter(catalog []model.CourseRecord) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.Setup()

	cfg := &config.Config{GradeGPAThreshold: 2.0, GradePercentThreshold: 70.0}
	svc := service.NewAnalysisService(&fixedProvider{catalog: catalog}, narrative.Disabled{}, cfg, zerolog.Nop())
	h := NewAnalysisHandler(svc, zerolog.Nop())

	r := gin.New()
	r.POST("/api/v1/analysis/transcript", h.AnalyzeTranscript)
	return r
}

func postTranscript(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/transcript", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleCatalog() []model.CourseRecord {
	return []model.CourseRecord{
		{
			ID: "cfcc-acc-120", SourceInstitution: "CFCC",
			Title: "Principles of Financial Accounting", Code: "ACC 120",
			Skills:            []string{"ledgers"},
			SkillGroupWeights: map[string]float64{"business": 2},
		},
		{
			ID: "cfcc-acc-150", SourceInstitution: "CFCC",
			Title: "Accounting Software Applications", Code: "ACC 150",
			Skills:            []string{"payroll software"},
			SkillGroupWeights: map[string]float64{"business": 1},
		},
	}
}

func TestAnalyzeTranscriptEndpoint(t *testing.T) {
	r := setupAnalysisRouter(sampleCatalog())

	w := postTranscript(t, r, `{
		"source": "Cape Fear Community College",
		"coursesList": [
			["Prin of Financial Accounting", "ACC 120", "B"],
			["Accounting Software Appl", "ACC-150"]
		]
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data model.AnalyzeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	profile := envelope.Data.Profile
	require.NotNil(t, profile)
	assert.Equal(t, "CFCC", profile.Source)
	assert.Equal(t, []string{"cfcc-acc-120", "cfcc-acc-150"}, profile.CourseIDs)
	assert.Equal(t, []string{"ACC"}, profile.PrimaryDomain.Subjects)
	assert.Empty(t, envelope.Data.Summary)
}

func TestAnalyzeTranscriptUnknownSource(t *testing.T) {
	r := setupAnalysisRouter(sampleCatalog())

	w := postTranscript(t, r, `{
		"source": "Nowhere College",
		"coursesList": [["Biology", "BIO 101"]]
	}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "UNKNOWN_SOURCE")
}

func TestAnalyzeTranscriptEmptyCatalog(t *testing.T) {
	r := setupAnalysisRouter(nil)

	w := postTranscript(t, r, `{
		"source": "CFCC",
		"coursesList": [["Biology", "BIO 101"]]
	}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NO_MATCHING_COURSES")
}

func TestAnalyzeTranscriptValidation(t *testing.T) {
	r := setupAnalysisRouter(sampleCatalog())

	// Missing coursesList entirely.
	w := postTranscript(t, r, `{"source": "CFCC"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A one-field entry is malformed and rejected at bind time.
	w = postTranscript(t, r, `{
		"source": "CFCC",
		"coursesList": [["Some Class"]]
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
