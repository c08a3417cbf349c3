// Package commands implements the CLI commands for tsbuild.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tsbuild/internal/app"
	"go.trai.ch/tsbuild/internal/build"
	"go.trai.ch/tsbuild/internal/core/ports"
)

// CLI represents the command line interface for tsbuild.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app. An explicit --json
// switches logger to JSON records.
func New(a Application, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:   "tsbuild [filter]",
		Short: "Build tree-sitter grammars into WebAssembly artifacts",
		Long: "Build every configured grammar with bounded concurrency and publish the artifacts\n" +
			"into the output directory. An optional filter keeps only targets whose name contains it.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.Flags().IntP("jobs", "j", 0, "Maximum number of builds in flight (default: number of CPUs)")
	rootCmd.PersistentFlags().Bool("json", false, "Emit log records as JSON")

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = c.applyLogFormat
	rootCmd.RunE = c.runBuild
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) applyLogFormat(cmd *cobra.Command, _ []string) {
	if c.logger == nil || !cmd.Flags().Changed("json") {
		return
	}
	enable, _ := cmd.Flags().GetBool("json")
	c.logger.SetJSON(enable)
}

func (c *CLI) runBuild(cmd *cobra.Command, args []string) error {
	var filter string
	if len(args) == 1 {
		filter = args[0]
	}
	jobs, _ := cmd.Flags().GetInt("jobs")

	return c.app.Run(cmd.Context(), app.RunOptions{
		Filter: filter,
		Jobs:   jobs,
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
