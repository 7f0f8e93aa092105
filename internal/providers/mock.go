package providers

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
)

// MockProvider returns deterministic worksheet JSON derived from the prompt.
// It never fails and needs no network, so it is the default provider.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}
	if !req.JSON {
		return GenerateResponse{Text: "Mock response."}, info, nil
	}
	topic := strings.TrimSpace(req.Prompt)
	topic = strings.TrimPrefix(topic, "Create educational content for: ")
	if topic == "" {
		topic = "the lesson"
	}
	a, b := seededPair(topic)
	doc := map[string]any{
		"title":       "Practice: " + topic,
		"explanation": fmt.Sprintf("This worksheet reviews %s.\n\nRead each example carefully before trying the practice questions.", topic),
		"worked_examples": []map[string]string{
			{"problem": fmt.Sprintf("What is %d + %d?", a, b), "solution": fmt.Sprintf("Add the ones, then the tens.\n%d + %d = %d", a, b, a+b)},
		},
		"practice_questions": []map[string]string{
			{"question": fmt.Sprintf("What is %d + %d?", b, a), "difficulty": "easy"},
			{"question": fmt.Sprintf("What is %d x %d?", a, b), "difficulty": "medium"},
			{"question": fmt.Sprintf("Explain how you would check that %d - %d = %d.", a+b, b, a), "difficulty": "hard"},
		},
		"answer_key": []string{
			fmt.Sprint(a + b),
			fmt.Sprint(a * b),
			fmt.Sprintf("Add %d back to %d to get %d.", b, a, a+b),
		},
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return GenerateResponse{}, info, fmt.Errorf("encode mock worksheet: %w", err)
	}
	return GenerateResponse{Text: string(out)}, info, nil
}

func seededPair(s string) (int, int) {
	h := sha256.Sum256([]byte(strings.ToLower(s)))
	return int(binary.BigEndian.Uint16(h[:2])%40) + 10, int(binary.BigEndian.Uint16(h[2:4])%40) + 10
}
