package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/goetz-markgraf/maach-et/internal/fsops"
)

var ListDefinition = ToolDefinition{
	Indicator: "ls",
	Description: "## List Tool\n\n" +
		"### Purpose:\nList the entries of a directory (non-recursive).\n\n" +
		"### Usage Pattern:\n\n" +
		"Use a code block with the language tag: `ls <optional path>` and an empty body.\n" +
		"Without a path the workspace root is listed.\n\n" +
		"Example:\n\n" +
		"```ls src\n" +
		"```\n\n" +
		"### Output:\n\n" +
		"One entry per line, directories end with `/`:\n\n" +
		"    Directory src:\n    main.go\n    util/\n",
	Function: List,
}

// List surfaces the sorted entries of the directory named by param.
func List(_ context.Context, param *string, _ string) (Result, error) {
	dir := "."
	if param != nil && *param != "" {
		dir = *param
	}
	names, err := fsops.ListDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("ls %s: %w", dir, err)
	}
	if len(names) == 0 {
		return Output(fmt.Sprintf("Directory %s is empty", dir)), nil
	}
	return Output(fmt.Sprintf("Directory %s:\n%s", dir, strings.Join(names, "\n"))), nil
}
