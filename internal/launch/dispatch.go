package launch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Dispatch prints the assembled command line, then runs the engine in
// the foreground with inherited stdio and waits for it. The child's
// exit code comes back for the launcher to forward; only a failure to
// start at all is an error.
func Dispatch(resolved *ResolvedLaunch, stdout io.Writer) (int, error) {
	vector := resolved.Command()
	fmt.Fprintln(stdout, strings.Join(vector, " "))

	cmd := exec.Command(vector[0], vector[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, &SpawnError{Path: vector[0], Err: err}
	}
	return 0, nil
}
