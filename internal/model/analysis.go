package model

// AnalyzeRequest is the payload for a transcript analysis.
type AnalyzeRequest struct {
	Source      string               `json:"source" binding:"required"`
	CoursesList []StudentCourseEntry `json:"coursesList" binding:"required,min=1"`
}

// AnalyzeResponse wraps the profile with the optional narrative summary.
type AnalyzeResponse struct {
	Summary string          `json:"summary,omitempty"`
	Profile *StudentProfile `json:"profile"`
}
