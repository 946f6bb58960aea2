package model

import (
	"encoding/json"
	"fmt"
)

// CourseRecord is one canonical course from the registry, carrying its skill
// taxonomy payload. Records are loaded once per snapshot and never mutated.
type CourseRecord struct {
	ID                string             `json:"id"`
	SourceInstitution string             `json:"source_institution"`
	Title             string             `json:"title"`
	Code              string             `json:"code"`
	Description       string             `json:"description"`
	Skills            []string           `json:"skills"`
	SkillGroupWeights map[string]float64 `json:"skill_group_weights"`
}

// Institution is one school the registry holds a catalog for.
type Institution struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// StudentCourseEntry is one row of a student's transcript as supplied by the
// caller. The wire format is positional: ["title", "code"] or
// ["title", "code", "grade"]. Title and code are mandatory; grade is free-form
// and stays unvalidated until classified.
type StudentCourseEntry struct {
	Title string
	Code  string
	Grade string
}

// UnmarshalJSON decodes the positional array form. Fewer than two elements is
// a malformed entry and fails the whole request.
func (e *StudentCourseEntry) UnmarshalJSON(data []byte) error {
	var fields []string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) < 2 {
		return fmt.Errorf("course entry needs [title, code], got %d field(s)", len(fields))
	}
	e.Title = fields[0]
	e.Code = fields[1]
	if len(fields) > 2 {
		e.Grade = fields[2]
	}
	return nil
}

// MarshalJSON re-encodes the positional array form.
func (e StudentCourseEntry) MarshalJSON() ([]byte, error) {
	fields := []string{e.Title, e.Code}
	if e.Grade != "" {
		fields = append(fields, e.Grade)
	}
	return json.Marshal(fields)
}
