package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goetz-markgraf/maach-et/internal/agent"
	"github.com/goetz-markgraf/maach-et/internal/config"
	"github.com/goetz-markgraf/maach-et/internal/prompt"
	"github.com/goetz-markgraf/maach-et/internal/provider"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

var askModel bool

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Classify text as complete, reject or partial",
	Long: `Classify text as complete, reject or partial.

With --ask the text is sent to the model as a task and the model's reply is
classified instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := agent.Classify(args[0])
		if askModel {
			p, err := provider.New(cmd.Context(), cfg.ProviderSettings())
			if err != nil {
				return err
			}
			a := agent.NewBasic("one-shot task", p)
			res, err = a.ProcessTask(cmd.Context(), agent.NewContext(prompt.System()), args[0])
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", res.Kind(), res.Text())
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "maachet", version)
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&askModel, "ask", false, "Send the text to the model and classify its reply")
}
