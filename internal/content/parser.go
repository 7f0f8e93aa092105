package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parse decodes a model response into Content. Missing fields stay empty; only a
// response that is not a JSON object at all is rejected.
func Parse(raw string) (Content, error) {
	raw = stripCodeFence(strings.TrimSpace(raw))
	if raw == "" {
		return Content{}, fmt.Errorf("empty model response")
	}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	var c Content
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Content{}, fmt.Errorf("decode content json: %w", err)
	}
	for i := range c.PracticeQuestions {
		if strings.TrimSpace(c.PracticeQuestions[i].Difficulty) == "" {
			c.PracticeQuestions[i].Difficulty = "medium"
		}
	}
	return c, nil
}

func stripCodeFence(s string) string {
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
