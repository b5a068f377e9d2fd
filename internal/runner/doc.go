// Package runner drives the chat session: it reads human input, sends it to the
// model provider, runs the tool blocks found in the reply and feeds surfaced
// tool output back as the next input.
//
// The session is a state machine; Transition is a pure function over it and
// Runner.Run only performs the blocking work each Effect asks for.
//
// Flow:
//
//	user(framed task) -> assistant(reply with tool blocks) -> user(tool output) -> assistant(reply)
package runner
