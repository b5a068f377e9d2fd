package runner

import (
	"fmt"
	"strings"
)

// State is the session state.
type State int

const (
	// UserInput waits for a line from the human.
	UserInput State = iota
	// ToolInput feeds queued tool output back without prompting the human.
	ToolInput
	// Exit is terminal: the human ended the session.
	Exit
	// Error is terminal: the provider failed.
	Error
)

func (s State) String() string {
	switch s {
	case UserInput:
		return "UserInput"
	case ToolInput:
		return "ToolInput"
	case Exit:
		return "Exit"
	case Error:
		return "Error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transitions happen from s.
func (s State) Terminal() bool { return s == Exit || s == Error }

// ExitKeywords end the session when typed as the whole (trimmed) input line.
var ExitKeywords = []string{"/bye", "/exit", "/quit"}

// IsExit reports whether line is an exit keyword. Matching is case-sensitive.
func IsExit(line string) bool {
	line = strings.TrimSpace(line)
	for _, k := range ExitKeywords {
		if line == k {
			return true
		}
	}
	return false
}

const (
	framePrefix = "Help me with my task. "
	frameSuffix = "\nKeep in mind to use the tools described in the system prompt"
)

// Frame wraps a human task, trimmed, in the fixed task-framing template.
func Frame(input string) string {
	return framePrefix + strings.TrimSpace(input) + frameSuffix
}

// EventKind enumerates the inputs of the state machine.
type EventKind int

const (
	// EventLine is a line read from the human.
	EventLine EventKind = iota
	// EventEndOfInput means input is closed or the session context is done.
	EventEndOfInput
	// EventReply is a successful exchange; Feedback/HasFeedback carry the tool
	// output to feed back, if any.
	EventReply
	// EventProviderFailed is a failed exchange.
	EventProviderFailed
)

type Event struct {
	Kind        EventKind
	Line        string
	Feedback    string
	HasFeedback bool
	Err         error
}

func Line(s string) Event            { return Event{Kind: EventLine, Line: s} }
func EndOfInput() Event              { return Event{Kind: EventEndOfInput} }
func ProviderFailed(err error) Event { return Event{Kind: EventProviderFailed, Err: err} }

// Replied builds the event for a successful exchange.
func Replied(feedback string, ok bool) Event {
	return Event{Kind: EventReply, Feedback: feedback, HasFeedback: ok}
}

// EffectKind is the work the runner performs next.
type EffectKind int

const (
	// ReadLine blocks for the next human line.
	ReadLine EffectKind = iota
	// Submit sends Effect.Input to the provider.
	Submit
	// Stop ends the loop.
	Stop
	// Ignore leaves everything unchanged; the event did not apply to the state.
	Ignore
)

type Effect struct {
	Kind  EffectKind
	Input string
}

// Start returns the initial state and its first effect.
func Start() (State, Effect) { return UserInput, Effect{Kind: ReadLine} }

// Transition is total: an event that does not apply to a state yields the same
// state and an Ignore effect; terminal states always yield Stop.
func Transition(s State, ev Event) (State, Effect) {
	if s.Terminal() {
		return s, Effect{Kind: Stop}
	}
	switch ev.Kind {
	case EventEndOfInput:
		return Exit, Effect{Kind: Stop}
	case EventProviderFailed:
		return Error, Effect{Kind: Stop}
	case EventReply:
		if ev.HasFeedback {
			return ToolInput, Effect{Kind: Submit, Input: ev.Feedback}
		}
		return UserInput, Effect{Kind: ReadLine}
	case EventLine:
		if s != UserInput {
			return s, Effect{Kind: Ignore}
		}
		if IsExit(ev.Line) {
			return Exit, Effect{Kind: Stop}
		}
		return UserInput, Effect{Kind: Submit, Input: Frame(ev.Line)}
	}
	return s, Effect{Kind: Ignore}
}
