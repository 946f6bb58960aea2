package model

import (
	"encoding/json"
	"testing"
)

func TestStudentCourseEntryUnmarshal(t *testing.T) {
	var req AnalyzeRequest
	payload := `{
		"source": "Cape Fear Community College",
		"coursesList": [
			["Prin of Financial Accounting", "ACC 120"],
			["Prin of Financial Acct II", "ACC 122", "B+"]
		]
	}`

	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(req.CoursesList) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(req.CoursesList))
	}
	first := req.CoursesList[0]
	if first.Title != "Prin of Financial Accounting" || first.Code != "ACC 120" || first.Grade != "" {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if req.CoursesList[1].Grade != "B+" {
		t.Errorf("expected grade B+, got %q", req.CoursesList[1].Grade)
	}
}

// An entry with fewer than two fields is malformed and fails the decode.
func TestStudentCourseEntryUnmarshalShortEntry(t *testing.T) {
	var entry StudentCourseEntry
	if err := json.Unmarshal([]byte(`["Some Class"]`), &entry); err == nil {
		t.Error("expected error for single-field entry")
	}
	if err := json.Unmarshal([]byte(`[]`), &entry); err == nil {
		t.Error("expected error for empty entry")
	}
}

func TestStudentCourseEntryMarshal(t *testing.T) {
	tests := []struct {
		entry StudentCourseEntry
		want  string
	}{
		{StudentCourseEntry{Title: "Biology", Code: "BIO 101"}, `["Biology","BIO 101"]`},
		{StudentCourseEntry{Title: "Biology", Code: "BIO 101", Grade: "A-"}, `["Biology","BIO 101","A-"]`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.entry)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(got) != tt.want {
			t.Errorf("marshal = %s, want %s", got, tt.want)
		}
	}
}
