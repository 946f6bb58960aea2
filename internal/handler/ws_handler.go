package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
	"github.com/DigiCred-Holdings/credential-analysis/internal/service"
	ws "github.com/DigiCred-Holdings/credential-analysis/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams analysis results over WebSocket.
type WSHandler struct {
	analysisService *service.AnalysisService
	log             zerolog.Logger
	upgrader        websocket.Upgrader
}

func NewWSHandler(analysisService *service.AnalysisService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		analysisService: analysisService,
		log:             log.With().Str("component", "ws_handler").Logger(),
		upgrader:        buildUpgrader(allowedOrigins),
	}
}

// AnalysisStream godoc
// WS /ws/v1/analysis/stream
// The client sends one AnalyzeRequest frame. The server replies with a
// "profile" event as soon as matching and aggregation complete, then a
// "summary" event when narrative generation finishes. This lets clients
// render the structured stats without waiting on the LLM round-trip.
func (h *WSHandler) AnalysisStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	var req model.AnalyzeRequest
	if err := ws.ReadJSON(conn, &req); err != nil {
		ws.WriteError(conn, "invalid analysis request")
		return
	}
	if req.Source == "" || len(req.CoursesList) == 0 {
		ws.WriteError(conn, "coursesList and source are required")
		return
	}

	ctx := c.Request.Context()

	profile, err := h.analysisService.AnalyzeTranscript(ctx, &req)
	if err != nil {
		ws.WriteError(conn, err.Error())
		return
	}

	if err := ws.WriteTyped(conn, ws.ProfileResponse{Event: ws.EventProfile, Profile: profile}); err != nil {
		return
	}

	summary, err := h.analysisService.Summarize(ctx, profile)
	if err != nil {
		h.log.Warn().Err(err).Str("source", profile.Source).Msg("Narrative summary failed")
	}
	ws.WriteTyped(conn, ws.SummaryResponse{Event: ws.EventSummary, Summary: summary})
}
