// Package tools defines the capabilities the assistant can invoke from fenced
// blocks in its replies.
//
// Includes:
//   - ToolDefinition: indicator, prompt description, handler.
//   - Result: either no output (side effect only) or one surfaced text.
//   - File tools: save, append, replace (silent); read, ls (surfaced output).
//
// The registry order is the dispatch tie-break when two definitions share an
// indicator.
package tools
