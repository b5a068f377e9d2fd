package runner

// View is where the session shows itself to the human.
type View interface {
	// Prompt is called right before a human line is read.
	Prompt()
	// Thinking is called right before a request is sent.
	Thinking()
	// Reply shows the assistant's reply.
	Reply(text string)
	// ToolFeedback shows tool output about to be fed back to the model.
	ToolFeedback(text string)
	// Diagnostic reports a problem the human should see.
	Diagnostic(msg string)
}

type nopView struct{}

func (nopView) Prompt()             {}
func (nopView) Thinking()           {}
func (nopView) Reply(string)        {}
func (nopView) ToolFeedback(string) {}
func (nopView) Diagnostic(string)   {}
