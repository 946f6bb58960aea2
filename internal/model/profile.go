package model

// MatchedCourse is one registry course a student entry resolved to, annotated
// with the student's classified grade for that course when one was supplied.
type MatchedCourse struct {
	CourseRecord
	ClassifiedGrade *float64 `json:"classified_grade,omitempty"`
	Underperforming bool     `json:"underperforming"`
}

// PrimaryDomain summarizes the subject area(s) that dominate a student's
// matched coursework, with skill aggregates restricted to those subjects.
type PrimaryDomain struct {
	Subjects         []string           `json:"subjects"`
	Coverage         map[string]float64 `json:"coverage"`
	CourseIDs        []string           `json:"course_ids"`
	Skills           []string           `json:"skills"`
	SkillGroupTotals map[string]float64 `json:"skill_group_totals"`
}

// StudentProfile is the full result of one transcript analysis. It is built
// fresh per request and holds no cross-request state.
type StudentProfile struct {
	Source           string             `json:"source"`
	CourseIDs        []string           `json:"course_id_list"`
	MatchedCourses   []MatchedCourse    `json:"matched_courses"`
	Skills           []string           `json:"student_skill_list"`
	AllSkills        []string           `json:"student_skill_list_raw"`
	SkillGroupTotals map[string]float64 `json:"student_skill_groups"`
	PrimaryDomain    PrimaryDomain      `json:"primary_domain"`
}
