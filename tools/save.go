package tools

import (
	"context"
	"fmt"

	"github.com/goetz-markgraf/maach-et/internal/fsops"
)

var SaveDefinition = ToolDefinition{
	Indicator: "save",
	Description: "## Save Tool\n\n" +
		"### Purpose:\nCreate or overwrite a file with the given content.\n\n" +
		"### Usage Pattern:\n\n" +
		"The path is relative to the workspace root.\n" +
		"To write to a file, use a code block with the language tag: `save <path>`\n\n" +
		"Example:\n\n" +
		"```save hello_world.go\n" +
		"package main\n\n" +
		"func main() {\n\tprintln(\"Hello, world!\")\n}\n" +
		"```\n\n" +
		"### Output:\n\nno output\n",
	Function: Save,
}

// Save writes content to the file named by param, replacing any previous content.
func Save(_ context.Context, param *string, content string) (Result, error) {
	path, err := requireParam(param)
	if err != nil {
		return Result{}, err
	}
	if err := fsops.WriteFile(path, withTrailingNewline(content)); err != nil {
		return Result{}, fmt.Errorf("save %s: %w", path, err)
	}
	return NoOutput(), nil
}

// Block bodies are trimmed by the parser; files end with a newline again.
func withTrailingNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
