package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/staffclock/internal/domain"
)

const (
	ExitSuccess         = 0
	ExitGeneral         = 1
	ExitConfig          = 2 // invalid or unreadable config
	ExitDatabase        = 3 // storage could not be opened or is unavailable
	ExitInvalidSequence = 4 // repeated start/stop
)

// ExitCoder is implemented by errors that carry a process exit code.
type ExitCoder interface {
	ExitCode() int
}

type cliError struct {
	code    int
	message string
	err     error
}

func NewCLIError(code int, message string) error {
	return &cliError{code: code, message: message}
}

func WrapError(code int, message string, err error) error {
	return &cliError{code: code, message: message, err: err}
}

func (e *cliError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.message
}

func (e *cliError) ExitCode() int {
	return e.code
}

func (e *cliError) Unwrap() error {
	return e.err
}

func ErrConfig(message string, err error) error {
	return WrapError(ExitConfig, message, err)
}

func ErrDatabase(message string, err error) error {
	return WrapError(ExitDatabase, message, err)
}

// ExitCodeFor picks the exit code for an error returned by a command.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	switch {
	case errors.Is(err, domain.ErrInvalidSequence):
		return ExitInvalidSequence
	case errors.Is(err, domain.ErrStoreUnavailable):
		return ExitDatabase
	default:
		return ExitGeneral
	}
}
