package content

import "errors"

// Result is what the generation adapter hands back: either renderable Content or
// the reason generation failed. The zero Result is a failure.
type Result struct {
	content Content
	reason  string
	ok      bool
}

func Ok(c Content) Result {
	return Result{content: c, ok: true}
}

func Failed(reason string) Result {
	if reason == "" {
		reason = "content generation failed"
	}
	return Result{reason: reason}
}

func (r Result) IsOk() bool {
	return r.ok
}

// Reason is empty for successful results.
func (r Result) Reason() string {
	return r.reason
}

// Unwrap returns the content, or an error carrying the failure reason.
func (r Result) Unwrap() (Content, error) {
	if !r.ok {
		return Content{}, errors.New(r.reason)
	}
	return r.content, nil
}
