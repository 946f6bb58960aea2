package analysis

import "github.com/DigiCred-Holdings/credential-analysis/internal/model"

// AggregateSkills concatenates each matched course's skill list in course
// order. With deduplicate set, only the first occurrence of each skill is
// kept; otherwise repeats stay, reflecting repeated exposure across courses.
// Both behaviors are needed: response payloads deduplicate, raw aggregates
// keep duplicates.
func AggregateSkills(courses []model.MatchedCourse, deduplicate bool) []string {
	skills := make([]string, 0)
	var seen map[string]struct{}
	if deduplicate {
		seen = make(map[string]struct{})
	}

	for _, course := range courses {
		for _, skill := range course.Skills {
			if deduplicate {
				if _, ok := seen[skill]; ok {
					continue
				}
				seen[skill] = struct{}{}
			}
			skills = append(skills, skill)
		}
	}
	return skills
}

// SumSkillGroups adds up each course's skill-group weights per group key.
// A course missing a group simply contributes nothing to it, and reading an
// absent group from the result yields the zero value. Empty weight maps are
// fine.
func SumSkillGroups(courses []model.MatchedCourse) map[string]float64 {
	totals := make(map[string]float64)
	for _, course := range courses {
		for group, weight := range course.SkillGroupWeights {
			totals[group] += weight
		}
	}
	return totals
}
