package analyzer

import "fmt"

// AnalysisError reports that the text-generation service call failed or
// its response was unusable. Raw carries the unparsed model response
// when one was received.
type AnalysisError struct {
	Op  string
	Raw string
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
