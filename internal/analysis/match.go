package analysis

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
)

// MatchAll resolves every student entry to its best-scoring candidate course.
//
// It returns one course id per entry, in entry order. Matching is best-effort:
// there is no minimum-score cutoff, so every entry resolves to some candidate
// even for garbage input. Scores come from weighted-ratio fuzzy comparison of
// normalized labels, which tolerates token reordering and partial overlap.
// The strictly highest score wins; ties keep the earliest candidate in
// iteration order, so callers must pass candidates in a fixed, reproducible
// order (the registry snapshot order).
//
// Grades carried on entries are returned keyed by resolved course id. When two
// entries resolve to the same course, the later grade overwrites the earlier
// one.
//
// Errors: ErrNoCandidates when candidates is empty, ErrMalformedEntry when an
// entry lacks a title or code. Both reject the whole batch.
func MatchAll(entries []model.StudentCourseEntry, candidates []model.CourseRecord) ([]string, map[string]string, error) {
	if len(candidates) == 0 {
		return nil, nil, ErrNoCandidates
	}

	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = NormalizeLabel(c.Title, c.Code)
	}

	matched := make([]string, 0, len(entries))
	grades := make(map[string]string)

	for _, entry := range entries {
		if entry.Title == "" || entry.Code == "" {
			return nil, nil, ErrMalformedEntry
		}

		label := NormalizeLabel(entry.Title, entry.Code)

		bestIdx := 0
		bestScore := -1
		for i, candidateLabel := range labels {
			score := fuzzy.WRatio(label, candidateLabel)
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		id := candidates[bestIdx].ID
		matched = append(matched, id)
		if entry.Grade != "" {
			grades[id] = entry.Grade
		}
	}

	return matched, grades, nil
}
