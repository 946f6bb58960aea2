package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
)

// subjectPrefixPattern extracts the leading alphabetic run of a course code,
// e.g. "CRMJ-3250" -> "CRMJ". Initialized once, never mutated.
var subjectPrefixPattern = regexp.MustCompile(`^[A-Za-z]+`)

// Thresholds for the majority-with-runner-up rule.
const (
	dominantCoverage = 0.6
	weakTopCoverage  = 0.45
)

// SubjectPrefix returns the upper-cased leading alphabetic run of a course
// code, or "" when the code has no leading letters.
func SubjectPrefix(code string) string {
	return strings.ToUpper(subjectPrefixPattern.FindString(strings.TrimSpace(code)))
}

// InferPrimaryDomain derives the student's dominant subject area(s) from
// matched-course code prefixes and recomputes skill aggregates restricted to
// those subjects.
//
// Courses whose code has no leading letters are excluded from counting. The
// selection rule: take the top subject by count; if its coverage is below 0.6
// and a runner-up exists, add the runner-up when their combined coverage
// reaches 0.6 or the top alone is below 0.45. The result is one clearly
// dominant subject, or two when neither dominates.
//
// With no extractable subject anywhere the result is empty, not an error.
func InferPrimaryDomain(courses []model.MatchedCourse) model.PrimaryDomain {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	total := 0

	for i, course := range courses {
		subject := SubjectPrefix(course.Code)
		if subject == "" {
			continue
		}
		if _, ok := counts[subject]; !ok {
			firstSeen[subject] = i
		}
		counts[subject]++
		total++
	}

	if total == 0 {
		return model.PrimaryDomain{
			Subjects:         []string{},
			Coverage:         map[string]float64{},
			CourseIDs:        []string{},
			Skills:           []string{},
			SkillGroupTotals: map[string]float64{},
		}
	}

	subjects := make([]string, 0, len(counts))
	for s := range counts {
		subjects = append(subjects, s)
	}
	// Count descending; ties keep matched-course order so the result is
	// deterministic for identical inputs.
	sort.SliceStable(subjects, func(i, j int) bool {
		if counts[subjects[i]] != counts[subjects[j]] {
			return counts[subjects[i]] > counts[subjects[j]]
		}
		return firstSeen[subjects[i]] < firstSeen[subjects[j]]
	})

	primary := []string{subjects[0]}
	topCoverage := float64(counts[subjects[0]]) / float64(total)
	if topCoverage < dominantCoverage && len(subjects) > 1 {
		combined := float64(counts[subjects[0]]+counts[subjects[1]]) / float64(total)
		if combined >= dominantCoverage || topCoverage < weakTopCoverage {
			primary = append(primary, subjects[1])
		}
	}

	primarySet := make(map[string]struct{}, len(primary))
	for _, s := range primary {
		primarySet[s] = struct{}{}
	}

	primaryCourses := make([]model.MatchedCourse, 0, total)
	courseIDs := make([]string, 0, total)
	for _, course := range courses {
		if _, ok := primarySet[SubjectPrefix(course.Code)]; ok {
			primaryCourses = append(primaryCourses, course)
			courseIDs = append(courseIDs, course.ID)
		}
	}

	coverage := make(map[string]float64, len(counts))
	for s, n := range counts {
		coverage[s] = float64(n) / float64(total)
	}

	return model.PrimaryDomain{
		Subjects:         primary,
		Coverage:         coverage,
		CourseIDs:        courseIDs,
		Skills:           AggregateSkills(primaryCourses, true),
		SkillGroupTotals: SumSkillGroups(primaryCourses),
	}
}
