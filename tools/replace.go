package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goetz-markgraf/maach-et/internal/fsops"
)

// ReplaceSeparator divides the old text from the new text in a replace block.
const ReplaceSeparator = "======="

var (
	ErrNoSeparator = errors.New("replace block needs a line containing only " + ReplaceSeparator)
	ErrOldNotFound = errors.New("old text not found in file")
	ErrEmptyOld    = errors.New("old text must not be empty")
)

var ReplaceDefinition = ToolDefinition{
	Indicator: "replace",
	Description: "## Replace Tool\n\n" +
		"### Purpose:\nEdit an existing file by replacing every occurrence of a piece of text.\n\n" +
		"### Usage Pattern:\n\n" +
		"Use a code block with the language tag: `replace <path>`. Put the exact text to find first,\n" +
		"then a line containing only `" + ReplaceSeparator + "`, then the replacement text.\n\n" +
		"Example:\n\n" +
		"```replace main.go\n" +
		"println(\"Hello\")\n" +
		ReplaceSeparator + "\n" +
		"println(\"Hello, world!\")\n" +
		"```\n\n" +
		"### Output:\n\nno output\n",
	Function: Replace,
}

// Replace rewrites the file named by param, substituting all occurrences of
// the old text with the new text.
func Replace(_ context.Context, param *string, content string) (Result, error) {
	path, err := requireParam(param)
	if err != nil {
		return Result{}, err
	}
	oldStr, newStr, err := splitReplace(content)
	if err != nil {
		return Result{}, err
	}

	current, err := fsops.ReadWritable(path)
	if err != nil {
		return Result{}, fmt.Errorf("replace %s: %w", path, err)
	}
	if !strings.Contains(current, oldStr) {
		return Result{}, fmt.Errorf("replace %s: %w", path, ErrOldNotFound)
	}
	if err := fsops.WriteFile(path, strings.ReplaceAll(current, oldStr, newStr)); err != nil {
		return Result{}, fmt.Errorf("replace %s: %w", path, err)
	}
	return NoOutput(), nil
}

func splitReplace(content string) (string, string, error) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != ReplaceSeparator {
			continue
		}
		oldStr := strings.Join(lines[:i], "\n")
		if oldStr == "" {
			return "", "", ErrEmptyOld
		}
		return oldStr, strings.Join(lines[i+1:], "\n"), nil
	}
	return "", "", ErrNoSeparator
}
