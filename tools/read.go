package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/goetz-markgraf/maach-et/internal/fsops"
)

const maxReadLines = 400
const maxLineRunes = 2000
const truncationSentinel = "-- truncated --"

var ReadDefinition = ToolDefinition{
	Indicator: "read",
	Description: "## Read Tool\n\n" +
		"### Purpose:\nRead the content of a file.\n\n" +
		"### Usage Pattern:\n\n" +
		"Use a code block with the language tag: `read <path>` and an empty body.\n\n" +
		"Example:\n\n" +
		"```read main.go\n" +
		"```\n\n" +
		"### Output:\n\n" +
		"The file content, prefixed with a header line:\n\n" +
		"    File main.go:\n    package main\n    ...\n\n" +
		"Long files are cut off after " + fmt.Sprint(maxReadLines) + " lines and end with `" + truncationSentinel + "`.\n",
	Function: Read,
}

// Read surfaces the content of the file named by param.
func Read(_ context.Context, param *string, _ string) (Result, error) {
	path, err := requireParam(param)
	if err != nil {
		return Result{}, err
	}
	content, err := fsops.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	body, truncated := clampLines(content, maxReadLines, maxLineRunes)

	var b strings.Builder
	fmt.Fprintf(&b, "File %s:\n%s", path, body)
	if truncated {
		if !strings.HasSuffix(body, "\n") {
			b.WriteString("\n")
		}
		b.WriteString(truncationSentinel)
	}
	return Output(b.String()), nil
}

// clampLines keeps at most maxLines lines, each at most maxRunes runes long.
func clampLines(s string, maxLines, maxRunes int) (string, bool) {
	lines := strings.Split(s, "\n")
	truncated := false
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		truncated = true
	}
	for i, line := range lines {
		if r := []rune(line); len(r) > maxRunes {
			lines[i] = string(r[:maxRunes])
			truncated = true
		}
	}
	return strings.Join(lines, "\n"), truncated
}
