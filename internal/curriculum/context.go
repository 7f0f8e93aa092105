package curriculum

import (
	"fmt"
	"strings"
)

const maxStandardsPerTopic = 3

// Assemble builds the grounding text for a generation request. An empty string
// means no curriculum exists for the subject; an unknown grade yields a generic
// one-line instruction instead of an error.
func (s *Snapshot) Assemble(prompt, subject, grade string) string {
	return s.AssembleWithKeywords(subject, grade, ExtractKeywords(prompt))
}

// AssembleWithKeywords is Assemble with caller-supplied topic keywords. A nil or
// empty keyword list disables topic filtering.
func (s *Snapshot) AssembleWithKeywords(subject, grade string, keywords []string) string {
	rec, ok := s.subject(subject)
	if !ok {
		return ""
	}
	normalized := NormalizeGrade(grade)
	entry, ok := rec.Grades[normalized]
	if !ok {
		return fmt.Sprintf("Use age-appropriate %s content for grade %s.", subject, grade)
	}

	parts := make([]string, 0, 4)
	if entry.Overview != "" {
		parts = append(parts, fmt.Sprintf("GRADE %s OVERVIEW:\n%s", normalized, entry.Overview))
	}
	if block := topicsBlock(entry.Topics, keywords); block != "" {
		parts = append(parts, block)
	}
	if entry.VocabularyLevel != "" {
		parts = append(parts, "VOCABULARY LEVEL: "+entry.VocabularyLevel)
	}
	if entry.DifficultyGuidelines != "" {
		parts = append(parts, "DIFFICULTY GUIDELINES:\n"+entry.DifficultyGuidelines)
	}
	return strings.Join(parts, "\n\n")
}

// topicsBlock lists the topics matching keywords. When none match, the whole
// block is omitted, header included, so the prompt never carries an empty
// KEY TOPICS section.
func topicsBlock(topics []Topic, keywords []string) string {
	var b strings.Builder
	for _, t := range topics {
		if !matchesAny(t.Name, keywords) {
			continue
		}
		b.WriteString("\n- ")
		b.WriteString(t.Name)
		standards := t.Standards
		if len(standards) > maxStandardsPerTopic {
			standards = standards[:maxStandardsPerTopic]
		}
		for _, std := range standards {
			b.WriteString("\n  • ")
			b.WriteString(std)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "KEY TOPICS:" + b.String()
}

func matchesAny(name string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	name = strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(name, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
