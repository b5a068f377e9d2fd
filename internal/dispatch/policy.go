package dispatch

import (
	"fmt"
	"strings"
)

// ErrorPolicy decides what happens to execution errors after a pass.
type ErrorPolicy string

const (
	// PolicyDrop logs execution errors and keeps them out of the conversation.
	PolicyDrop ErrorPolicy = "drop"
	// PolicySurface feeds a report of execution errors back as tool input.
	PolicySurface ErrorPolicy = "surface"
)

// ParseErrorPolicy accepts "drop" or "surface"; empty means PolicyDrop.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch ErrorPolicy(s) {
	case "", PolicyDrop:
		return PolicyDrop, nil
	case PolicySurface:
		return PolicySurface, nil
	}
	return "", fmt.Errorf("unknown error policy %q (want %q or %q)", s, PolicyDrop, PolicySurface)
}

// Feedback returns the text to feed back into the conversation under policy.
// With PolicySurface and failed tools the error report becomes the feedback,
// or is appended after surfaced output.
func (o Outcome) Feedback(policy ErrorPolicy) (string, bool) {
	if policy != PolicySurface || len(o.Errors) == 0 {
		return o.Output, o.HasOutput
	}
	report := ErrorReport(o.Errors)
	if !o.HasOutput {
		return report, true
	}
	return o.Output + "\n\n" + report, true
}

// ErrorReport renders execution errors as tool input for the model.
func ErrorReport(errs []*ExecutionError) string {
	var b strings.Builder
	b.WriteString("The following tool blocks failed:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
