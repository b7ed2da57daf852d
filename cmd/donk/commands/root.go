// Package commands implements the command line interface of donk.
package commands

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/donk/internal/app"
	"go.trai.ch/donk/internal/build"
	"go.trai.ch/donk/internal/core/ports"
	"go.trai.ch/zerr"
)

// shebangPrefix marks a first argument that names the config file, as in
// "#!/usr/bin/env donk" scripts invoked as "./tasks.yml build".
const shebangPrefix = "./"

// CLI represents the command line interface for donk.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	stdin   io.Reader
	dir     string
	getenv  func(string) string
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Complete(dir, path string, w io.Writer) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{
		app:    a,
		stdin:  os.Stdin,
		getenv: os.Getenv,
	}

	rootCmd := &cobra.Command{
		Use:           "donk [flags] [command] [args...]",
		Short:         "Run named commands from a config file",
		Long:          longHelp,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.run,
	}

	rootCmd.SetVersionTemplate(versionTemplate())
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	// Everything after the command name belongs to the command.
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().StringP("file", "f", "", "Path to the config file (default: discovered in the working directory)")
	rootCmd.Flags().BoolP("keep", "k", false, "Keep temporary scripts and export DONK_KEEP=1")
	rootCmd.Flags().StringP("watch", "w", "", "Re-run the command whenever files under `PATH` change")
	rootCmd.Flags().Bool("completion-script", false, "Print the bash completion script")
	rootCmd.Flags().Bool("complete-command", false, "Print the command names of the config at the optional PATH argument")

	c.rootCmd = rootCmd
	return c
}

const longHelp = `Run named commands from a config file.

Without a command, the configured .default command runs, or the available
commands are listed. Lines starting with + run another command in its own
shell, lines starting with < splice another command into the current shell
and lines starting with @ are not echoed.`

func (c *CLI) run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	if script, _ := flags.GetBool("completion-script"); script {
		return writeCompletionScript(cmd.OutOrStdout())
	}

	dir, err := c.workingDir()
	if err != nil {
		return err
	}

	if complete, _ := flags.GetBool("complete-command"); complete {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return c.app.Complete(dir, path, cmd.OutOrStdout())
	}

	file, _ := flags.GetString("file")
	keep, _ := flags.GetBool("keep")
	watch, _ := flags.GetString("watch")

	if file == "" && len(args) > 0 && strings.HasPrefix(args[0], shebangPrefix) {
		file, args = args[0], args[1:]
	}

	opts := app.RunOptions{
		ConfigFile: file,
		Keep:       keep,
		Watch:      watch,
		Dir:        dir,
		Nesting:    app.NestingFromEnv(c.getenv),
		Stdio: ports.Stdio{
			Stdin:  c.stdin,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		},
	}
	if len(args) > 0 {
		opts.Command, opts.Args = args[0], args[1:]
	}

	return c.app.Run(cmd.Context(), opts)
}

func (c *CLI) workingDir() (string, error) {
	if c.dir != "" {
		return c.dir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to determine working directory")
	}
	return dir, nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the stream handed to commands as stdin.
func (c *CLI) SetInput(in io.Reader) {
	c.stdin = in
}

// SetDir overrides the working directory. Used for testing.
func (c *CLI) SetDir(dir string) {
	c.dir = dir
}

// SetEnv sets the lookup used to detect a nested run. Used for testing.
func (c *CLI) SetEnv(getenv func(string) string) {
	c.getenv = getenv
}
