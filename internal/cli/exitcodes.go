package cli

// Exit codes for the jsonassert CLI
const (
	// ExitSuccess indicates every expectation held
	ExitSuccess = 0

	// ExitAssertionFailure indicates one or more expectations failed
	ExitAssertionFailure = 1

	// ExitParseError indicates the document is not valid input
	ExitParseError = 2

	// ExitUsageError indicates invalid CLI usage or an invalid expectation file
	ExitUsageError = 64
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func exitf(code int, err error) error { return &ExitError{Code: code, Err: err} }
