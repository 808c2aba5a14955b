package services

import (
	"fmt"
	"strings"
)

// ValidationError lists the required fields missing from a submission.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
