package worksheet

import (
	"fmt"
	"strings"

	"meshmind/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var Subjects = []string{"math", "science"}

// Normalize lowercases the subject, trims free text and fills in the language.
func Normalize(req models.GenerationRequest, defaultLanguage string) models.GenerationRequest {
	req.Subject = strings.ToLower(strings.TrimSpace(req.Subject))
	req.Grade = strings.TrimSpace(req.Grade)
	req.Prompt = strings.TrimSpace(req.Prompt)
	req.Language = strings.TrimSpace(req.Language)
	if req.Language == "" {
		req.Language = defaultLanguage
	}
	if req.Language == "" {
		req.Language = "English"
	}
	return req
}

// Validate checks a normalized request.
func Validate(req models.GenerationRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Prompt, validation.Required, validation.Length(1, 2000)),
		validation.Field(&req.Subject, validation.Required, validation.In(anySlice(Subjects)...).Error("must be 'math' or 'science'")),
		validation.Field(&req.Grade, validation.Required, validation.Length(1, 32)),
		validation.Field(&req.Language, validation.Length(0, 32)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func anySlice(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
