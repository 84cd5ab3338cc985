// Command cmpnet searches for minimal comparator networks.
//
//	cmpnet search --rule sorted --wires 5 --max 10
//	cmpnet search --rule conway --max 19 --start "0-4,1-5,2-6,3-7" --workers 8
//	cmpnet verify --rule conway --path "0-4,1-5,..."
//	cmpnet rules
//
// Exit status is 0 when a network is found (or verified), 1 when none exists
// within the budget (or verification fails), and 2 on errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes.
const (
	exitOK       = 0
	exitNotFound = 1
	exitError    = 2
)

// exitStatus carries a non-zero exit code for outcomes that are not errors.
type exitStatus struct {
	code int
}

func (e *exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	var st *exitStatus
	if errors.As(err, &st) {
		return st.code
	}
	fmt.Fprintf(stderr, "cmpnet: %v\n", err)
	return exitError
}
