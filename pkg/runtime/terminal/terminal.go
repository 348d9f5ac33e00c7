package terminal

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vertekal/msrsync/pkg/runtime/terminal/commands"
	"github.com/vertekal/msrsync/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msrsync",
		Short: "Subcontract billing report updater",
	}

	cmd.AddCommand(commands.NewUpdateCmd(cli.reporter))
	cmd.AddCommand(commands.NewWSRCmd(cli.reporter))
	cmd.AddCommand(commands.NewSummaryCmd())
	cmd.AddCommand(commands.NewReportsCmd())

	return cmd
}
