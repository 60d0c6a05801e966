// Package prompts builds the instruction text sent to the model for each
// pipeline stage. Builders are pure: the same stage inputs always yield
// the same prompt, and the embedded schema text is fixed per stage.
package prompts

import (
	"fmt"
	"strings"

	"github.com/jonathan/course-generator/internal/types"
)

// unsetPlaceholder is substituted for every personalization field the
// client left empty. Rendered prompts never contain a blank field.
const unsetPlaceholder = "Not specified"

func orPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return unsetPlaceholder
	}
	return v
}

// renderPersonalization renders the learner profile section shared by
// every stage prompt. A nil personalization renders all placeholders.
func renderPersonalization(p *types.Personalization) string {
	if p == nil {
		p = &types.Personalization{}
	}

	var sb strings.Builder
	sb.WriteString("Learner profile:\n")
	fmt.Fprintf(&sb, "- Level: %s\n", orPlaceholder(p.Level))
	fmt.Fprintf(&sb, "- Preferred topics: %s\n", orPlaceholder(p.PreferredTopics))
	fmt.Fprintf(&sb, "- Disliked topics: %s\n", orPlaceholder(p.DislikedTopics))
	fmt.Fprintf(&sb, "- Goal: %s\n", orPlaceholder(p.Goal))
	fmt.Fprintf(&sb, "- Time commitment (hours): %s\n", orPlaceholder(p.TimeCommitment))
	fmt.Fprintf(&sb, "- Learning style: %s\n", orPlaceholder(p.LearningStyle))
	return sb.String()
}

// schemaBlock renders the fixed output-contract section of a stage
// prompt around the stage's schema text.
func schemaBlock(schema string) string {
	var sb strings.Builder
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(schema)
	sb.WriteString("\n\nIMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	return sb.String()
}
