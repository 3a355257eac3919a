package extraction

import "fmt"

// InvalidInputError reports empty or malformed user input. It is
// user-correctable and fatal for the run, surfaced verbatim.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// ExtractionError reports that the capability provider was unreachable or
// returned unusable output during entity extraction. Fatal for the run;
// callers surface a generic message rather than provider detail.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
