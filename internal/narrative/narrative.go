package narrative

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// CourseContext is one completed course handed to the generator for prose
// grounding.
type CourseContext struct {
	Title       string
	Description string
}

// Payload is everything the generator needs: the aggregated skills, the
// summed skill groups, and the matched courses with descriptions.
type Payload struct {
	Skills      []string
	SkillGroups map[string]float64
	Courses     []CourseContext
}

// Generator produces a short free-text summary of a student's strengths from
// an aggregated skills payload.
type Generator interface {
	Summarize(ctx context.Context, payload Payload) (string, error)
}

// Disabled is a Generator that produces no summary. Used when no API key is
// configured so analysis keeps working without narrative output.
type Disabled struct{}

func (Disabled) Summarize(context.Context, Payload) (string, error) {
	return "", nil
}

// renderUserPrompt lays the payload out as the three numbered sections the
// system prompt refers to.
func renderUserPrompt(p Payload) string {
	var b strings.Builder

	b.WriteString("1) Skills: ")
	b.WriteString(strings.Join(p.Skills, ", "))
	b.WriteString("\n2) Skill groups with counts:\n")
	groups := make([]string, 0, len(p.SkillGroups))
	for group := range p.SkillGroups {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	for _, group := range groups {
		fmt.Fprintf(&b, "  - %s: %g\n", group, p.SkillGroups[group])
	}
	b.WriteString("3) Completed courses:\n")
	for _, course := range p.Courses {
		fmt.Fprintf(&b, "  - %s: %s\n", course.Title, course.Description)
	}
	return b.String()
}
