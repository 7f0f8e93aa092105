package worksheet

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid worksheet request")
	ErrGenerationFailed = errors.New("content generation failed")
	ErrCompose          = errors.New("compose worksheet")
)
