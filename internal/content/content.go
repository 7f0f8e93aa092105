package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type WorkedExample struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

type PracticeQuestion struct {
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
}

// Content is the structured worksheet payload produced by the language model.
type Content struct {
	Title             string             `json:"title"`
	Explanation       string             `json:"explanation"`
	WorkedExamples    []WorkedExample    `json:"worked_examples"`
	PracticeQuestions []PracticeQuestion `json:"practice_questions"`
	AnswerKey         Answers            `json:"answer_key"`
}

// Answers decodes an answer key whose entries may be strings, numbers or booleans.
type Answers []string

func (a *Answers) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("answer_key: %w", err)
	}
	out := make(Answers, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(r, &n); err == nil {
			out = append(out, n.String())
			continue
		}
		var v bool
		if err := json.Unmarshal(r, &v); err == nil {
			out = append(out, strconv.FormatBool(v))
			continue
		}
		out = append(out, strings.TrimSpace(string(r)))
	}
	*a = out
	return nil
}

// TitleOr returns the title, or fallback when the model left it blank.
func (c Content) TitleOr(fallback string) string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	return fallback
}
