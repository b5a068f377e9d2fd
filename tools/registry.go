package tools

// Registry returns all tool definitions wired for the assistant, in dispatch order.
func Registry() []ToolDefinition {
	return []ToolDefinition{
		SaveDefinition,
		AppendDefinition,
		ReplaceDefinition,
		ReadDefinition,
		ListDefinition,
	}
}

// Lookup returns the first definition with the given indicator.
func Lookup(defs []ToolDefinition, indicator string) (ToolDefinition, bool) {
	for _, d := range defs {
		if d.Indicator == indicator {
			return d, true
		}
	}
	return ToolDefinition{}, false
}
