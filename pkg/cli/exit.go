package cli

import (
	"errors"
	"fmt"
)

// ExitStatus carries the exit code chosen by the issue policy. It is not
// an urfave ExitCoder, so the CLI library never exits the process itself.
type ExitStatus struct {
	Code int
}

func (e *ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitStatus returns nil for code 0
func exitStatus(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitStatus{Code: code}
}

// ExitCode maps the error returned by Run onto the process exit code.
// Errors other than ExitStatus abort the run and exit with 2. Run has
// already logged them.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var status *ExitStatus
	if errors.As(err, &status) {
		return status.Code
	}
	return 2
}
