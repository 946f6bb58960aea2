package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/DigiCred-Holdings/credential-analysis/internal/analysis"
	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
	"github.com/DigiCred-Holdings/credential-analysis/internal/registry"
	"github.com/DigiCred-Holdings/credential-analysis/internal/response"
	"github.com/DigiCred-Holdings/credential-analysis/internal/service"
	"github.com/DigiCred-Holdings/credential-analysis/internal/validator"
)

type AnalysisHandler struct {
	analysisService *service.AnalysisService
	log             zerolog.Logger
}

func NewAnalysisHandler(analysisService *service.AnalysisService, log zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		log:             log.With().Str("component", "analysis_handler").Logger(),
	}
}

// AnalyzeTranscript godoc
// POST /api/v1/analysis/transcript
// Matches a transcript against the registry, aggregates skills, and attaches
// a narrative summary when generation is enabled.
func (h *AnalysisHandler) AnalyzeTranscript(c *gin.Context) {
	var req model.AnalyzeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile, err := h.analysisService.AnalyzeTranscript(c.Request.Context(), &req)
	if err != nil {
		h.failAnalysis(c, err)
		return
	}

	summary, err := h.analysisService.Summarize(c.Request.Context(), profile)
	if err != nil {
		// Narrative failure is non-fatal; the structured profile still ships.
		h.log.Warn().Err(err).Str("source", profile.Source).Msg("Narrative summary failed")
	}

	response.Success(c, http.StatusOK, model.AnalyzeResponse{
		Summary: summary,
		Profile: profile,
	})
}

// failAnalysis maps pipeline errors onto the response taxonomy.
func (h *AnalysisHandler) failAnalysis(c *gin.Context, err error) {
	switch {
	case errors.Is(err, registry.ErrUnknownSource):
		response.Fail(c, http.StatusNotFound, response.ErrUnknownSource)
	case errors.Is(err, analysis.ErrNoCandidates):
		response.Fail(c, http.StatusNotFound, response.ErrNoCourseMatch)
	case errors.Is(err, analysis.ErrMalformedEntry):
		response.Fail(c, http.StatusBadRequest, response.ErrMalformedEntry)
	default:
		h.log.Error().Err(err).Msg("Transcript analysis failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
