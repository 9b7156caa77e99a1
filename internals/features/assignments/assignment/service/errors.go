package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrTeamAssignmentNotFound = errors.New("team assignment not found")
	ErrJobNotFound            = errors.New("job not found")
	ErrDeveloperNotFound      = errors.New("developer not found")
	ErrTeamNotFound           = errors.New("team not found")
	ErrDuplicateAssignment    = errors.New("an active assignment already exists for this job and developer")
	ErrForbidden              = errors.New("not allowed to modify this assignment")
	ErrUnknownStatus          = errors.New("unknown assignment status")
)

// InvalidTransitionError carries the allowed successor set so the client can
// see what would have been accepted.
type InvalidTransitionError struct {
	From    string
	To      string
	Allowed []string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s (allowed: [%s])",
		e.From, e.To, strings.Join(e.Allowed, ", "))
}
