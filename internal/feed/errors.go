package feed

import (
	"fmt"

	"github.com/franz/carolcast/internal/util"
)

// ParseError reports a feed document that could not be parsed
type ParseError struct {
	Feed string // "audio" or "choreography"
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s feed: %v", e.Feed, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, util.ErrFeedParse) hold for every ParseError
func (e *ParseError) Is(target error) bool {
	return target == util.ErrFeedParse
}
