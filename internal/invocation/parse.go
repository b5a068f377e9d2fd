package invocation

import "strings"

// Fence is the delimiter that opens and closes a tool block.
const Fence = "```"

// Invocation is one parsed tool block.
type Invocation struct {
	Name string
	// Parameter is nil when the header carries nothing after the name.
	Parameter *string
	Content   string
}

// Param returns the parameter and whether one was given.
func (inv Invocation) Param() (string, bool) {
	if inv.Parameter == nil {
		return "", false
	}
	return *inv.Parameter, true
}

// Parse returns the invocations found in text, in the order encountered.
func Parse(text string) []Invocation {
	var out []Invocation
	cursor := 0
	for cursor < len(text) {
		idx := strings.Index(text[cursor:], Fence)
		if idx < 0 {
			break
		}
		// headerStart also serves as the resume point for a discarded candidate.
		headerStart := cursor + idx + len(Fence)

		inv, next, ok := parseBlock(text, headerStart)
		if !ok {
			cursor = headerStart
			continue
		}
		out = append(out, inv)
		cursor = next
	}
	return out
}

// parseBlock reads a header and body starting right after an opening fence.
// It returns the index just past the closing fence.
func parseBlock(text string, headerStart int) (Invocation, int, bool) {
	nl := strings.IndexByte(text[headerStart:], '\n')
	if nl < 0 {
		return Invocation{}, 0, false
	}
	fields := strings.Fields(text[headerStart : headerStart+nl])
	if len(fields) == 0 {
		return Invocation{}, 0, false
	}

	bodyStart := headerStart + nl + 1
	end := strings.Index(text[bodyStart:], Fence)
	if end < 0 {
		return Invocation{}, 0, false
	}

	inv := Invocation{
		Name:    fields[0],
		Content: strings.TrimSpace(text[bodyStart : bodyStart+end]),
	}
	if len(fields) > 1 {
		p := strings.Join(fields[1:], " ")
		inv.Parameter = &p
	}
	return inv, bodyStart + end + len(Fence), true
}
