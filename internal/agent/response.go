// Package agent is a one-shot task runner that classifies a whole reply as
// complete, rejected or partial. It does not run tools.
package agent

import (
	"strings"

	"golang.org/x/text/cases"
)

// Response is one of Complete, Reject or Partial; each carries the reply text.
type Response interface {
	Text() string
	Kind() string
	response()
}

// Complete means the task was finished.
type Complete struct{ Reply string }

// Reject means the task was refused.
type Reject struct{ Reply string }

// Partial means work remains.
type Partial struct{ Reply string }

func (r Complete) Text() string { return r.Reply }
func (r Reject) Text() string   { return r.Reply }
func (r Partial) Text() string  { return r.Reply }

func (Complete) Kind() string { return "complete" }
func (Reject) Kind() string   { return "reject" }
func (Partial) Kind() string  { return "partial" }

func (Complete) response() {}
func (Reject) response()   {}
func (Partial) response()  {}

// Classify checks the case-folded reply for "complete", then "reject";
// anything else is Partial.
func Classify(reply string) Response {
	folded := cases.Fold().String(reply)
	switch {
	case strings.Contains(folded, "complete"):
		return Complete{Reply: reply}
	case strings.Contains(folded, "reject"):
		return Reject{Reply: reply}
	}
	return Partial{Reply: reply}
}
