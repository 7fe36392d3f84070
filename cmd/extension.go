package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Environment variables read by dropdeck, and passed to extensions.
const (
	EnvConfig     = "DROPDECK_CONFIG"
	EnvVerbose    = "DROPDECK_VERBOSE"
	EnvTestingNow = "DROPDECK_TESTING_NOW" // fixed "2006-01-02 15:04:05" local time, for tests
)

// RunExtension runs dropdeck-<subcommand> from the PATH with args, and
// returns its exit code. found is false when there is no such program.
//
// The extension inherits the environment, with the global flags set as
// EnvConfig and EnvVerbose. EnvTestingNow is passed along unchanged.
func RunExtension(subcommand string, args []string) (found bool, code int) {
	name := "dropdeck-" + subcommand
	path, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	ext := exec.Command(path, args...)
	ext.Stdin, ext.Stdout, ext.Stderr = os.Stdin, os.Stdout, os.Stderr
	ext.Env = append(os.Environ(),
		EnvConfig+"="+*configFile,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	err = ext.Run()
	var exit *exec.ExitError
	switch {
	case err == nil:
		return true, 0
	case errors.As(err, &exit):
		return true, exit.ExitCode()
	default:
		fmt.Fprintf(os.Stderr, "Error running %q: %v\n", name, err)
		return true, 1
	}
}
