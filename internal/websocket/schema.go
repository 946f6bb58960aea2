package websocket

import "github.com/DigiCred-Holdings/credential-analysis/internal/model"

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError   Event = "error"
	EventProfile Event = "profile"
	EventSummary Event = "summary"
)

// ProfileResponse carries the structured profile as soon as matching and
// aggregation complete, before the slower narrative call finishes.
type ProfileResponse struct {
	Event   Event                 `json:"event"`
	Profile *model.StudentProfile `json:"profile"`
}

// SummaryResponse carries the narrative summary once generated. An empty
// summary means narrative generation is disabled or failed; the profile
// already delivered stays valid.
type SummaryResponse struct {
	Event   Event  `json:"event"`
	Summary string `json:"summary"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}
