package carereport

import (
	"fmt"
	"strings"
)

const notProvided = "not provided"

// BuildAnalysisPrompt arma el prompt del stage 1: preámbulo + foco numerado.
func BuildAnalysisPrompt(t AnalysisTemplate) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(t.Preamble))
	b.WriteString("\n")
	writeNumbered(&b, t.Focus)
	return strings.TrimRight(b.String(), "\n")
}

// BuildReportPrompt arma el prompt del stage 2.
// El análisis del stage 1 va textual, sin recortes.
func BuildReportPrompt(analysis AnalysisResult, profile OwnerProfile, t ReportTemplate) string {
	var b strings.Builder

	b.WriteString("**Pet Profile**\n")
	fmt.Fprintf(&b, "- Name: %s\n", orNotProvided(profile.Name))
	fmt.Fprintf(&b, "- Species/Breed: %s\n", orNotProvided(profile.Species))
	fmt.Fprintf(&b, "- Age: %s\n", ageLabel(profile.AgeMonths))
	fmt.Fprintf(&b, "- Dietary Needs: %s\n", orNotProvided(joinNonEmpty(profile.DietaryNeeds)))
	fmt.Fprintf(&b, "- Primary Concern: %s\n", orNotProvided(profile.Concern))
	fmt.Fprintf(&b, "- Observations: %s\n", orNotProvided(profile.Observations))

	b.WriteString("\n**Visual Analysis**\n")
	b.WriteString(string(analysis))
	b.WriteString("\n\n**Owner Request**\n")
	if p := strings.TrimSpace(t.Preamble); p != "" {
		b.WriteString(p)
		b.WriteString("\n")
	}
	writeNumbered(&b, t.Sections)

	if c := strings.TrimSpace(t.Closing); c != "" {
		b.WriteString("\n")
		b.WriteString(c)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeNumbered(b *strings.Builder, items []string) {
	n := 0
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		n++
		fmt.Fprintf(b, "%d. %s\n", n, it)
	}
}

func joinNonEmpty(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return strings.Join(out, ", ")
}

func ageLabel(months *int) string {
	if months == nil {
		return notProvided
	}
	return fmt.Sprintf("%d months", *months)
}

func orNotProvided(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notProvided
	}
	return s
}

func countNonEmpty(items []string) int {
	n := 0
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			n++
		}
	}
	return n
}
