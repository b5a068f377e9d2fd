package tools

import (
	"context"
	"fmt"

	"github.com/goetz-markgraf/maach-et/internal/fsops"
)

var AppendDefinition = ToolDefinition{
	Indicator: "append",
	Description: "## Append Tool\n\n" +
		"### Purpose:\nAppend the given content to the end of a file. The file is created if it does not exist.\n\n" +
		"### Usage Pattern:\n\n" +
		"Use a code block with the language tag: `append <path>`\n\n" +
		"Example:\n\n" +
		"```append notes.md\n" +
		"- another line\n" +
		"```\n\n" +
		"### Output:\n\nno output\n",
	Function: Append,
}

// Append adds content, newline-terminated, to the file named by param.
func Append(_ context.Context, param *string, content string) (Result, error) {
	path, err := requireParam(param)
	if err != nil {
		return Result{}, err
	}
	if err := fsops.AppendFile(path, withTrailingNewline(content)); err != nil {
		return Result{}, fmt.Errorf("append %s: %w", path, err)
	}
	return NoOutput(), nil
}
