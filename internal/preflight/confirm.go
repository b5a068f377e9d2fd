package preflight

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Decision is the answer to the uncommitted-changes question.
type Decision int

const (
	Invalid Decision = iota
	// CommitChanges commits everything, then starts the session.
	CommitChanges
	// Proceed starts the session without committing.
	Proceed
	// Abort ends the program.
	Abort
)

// ParseDecision maps y/n/x (any case, surrounding space ignored).
func ParseDecision(s string) Decision {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y":
		return CommitChanges
	case "n":
		return Proceed
	case "x":
		return Abort
	}
	return Invalid
}

// Confirm lists uncommitted files and asks the human what to do, reading
// answers from lines. It returns whether the session may start. Outside a
// repository or on a clean tree it returns true without asking.
func Confirm(ctx context.Context, g *Git, lines <-chan string, out io.Writer) (bool, error) {
	st, err := g.Check(ctx)
	if err != nil {
		return false, err
	}
	if !st.Dirty() {
		return true, nil
	}

	fmt.Fprintln(out, "The following files have uncommitted changes:")
	for _, f := range st.Files {
		fmt.Fprintf(out, "  - %s\n", f)
	}
	fmt.Fprint(out, "\nWould you like to commit these changes? (y: commit, n: proceed without committing, x: exit) ")

	answer, ok := readLine(ctx, lines)
	if !ok {
		return false, nil
	}
	switch ParseDecision(answer) {
	case CommitChanges:
		fmt.Fprint(out, "Enter commit message: ")
		msg, ok := readLine(ctx, lines)
		if !ok {
			return false, nil
		}
		if err := g.Commit(ctx, strings.TrimSpace(msg)); err != nil {
			fmt.Fprintf(out, "Failed to commit changes: %v\n", err)
		} else {
			fmt.Fprintln(out, "Changes committed successfully!")
		}
		return true, nil
	case Proceed:
		fmt.Fprintln(out, "Proceeding without committing changes.")
		return true, nil
	case Abort:
		fmt.Fprintln(out, "Exiting due to uncommitted changes.")
		return false, nil
	}
	fmt.Fprintln(out, "Invalid option. Exiting.")
	return false, nil
}

func readLine(ctx context.Context, lines <-chan string) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case l, ok := <-lines:
		return l, ok
	}
}
