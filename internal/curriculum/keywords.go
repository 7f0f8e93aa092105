package curriculum

import (
	"strings"
	"unicode/utf8"
)

var stopwords = map[string]struct{}{
	"for": {}, "the": {}, "and": {}, "with": {}, "to": {}, "a": {}, "an": {}, "in": {}, "on": {}, "of": {},
	"grade": {}, "practice": {}, "worksheet": {}, "problems": {}, "questions": {}, "help": {},
	"learn": {}, "study": {}, "basic": {}, "advanced": {}, "simple": {}, "hard": {}, "easy": {},
}

// ExtractKeywords returns the topic-bearing words of a prompt in first-seen order.
func ExtractKeywords(prompt string) []string {
	prompt = strings.ToLower(prompt)
	prompt = strings.NewReplacer(",", " ", ".", " ").Replace(prompt)

	seen := map[string]struct{}{}
	out := make([]string, 0, 8)
	for _, w := range strings.Fields(prompt) {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if _, ok := stopwords[w]; ok {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
