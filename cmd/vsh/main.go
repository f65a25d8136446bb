// vsh is an isolated shell over an in-memory virtual filesystem, built
// either empty or from a declarative XML source, driven interactively or
// by a script file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vshell/vsh/command"
	"github.com/vshell/vsh/config"
	"github.com/vshell/vsh/filesystem"
	"github.com/vshell/vsh/internal/util"
	"github.com/vshell/vsh/terminal"
	"github.com/vshell/vsh/vfsxml"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "vsh: %v\n", err) //nolint:errcheck // best-effort stderr
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath string
		vfsPath    string
		scriptPath string
		logLevel   string
	)

	root := &cobra.Command{
		Use:           "vsh",
		Short:         "vsh — an isolated shell over an in-memory virtual filesystem",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.NewDefaultConfig()
			if configPath != "" {
				override, err := config.LoadConfigOverrideFile(configPath)
				if err != nil {
					return err
				}
				cfg.Merge(override)
			}
			// CLI flags win over the config file.
			if cmd.Flags().Changed("vfs") {
				cfg.VFSPath = vfsPath
			}
			if cmd.Flags().Changed("script") {
				cfg.ScriptPath = scriptPath
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			util.InitializeLogger(util.ParseLogLevel(cfg.LogLevel))
			logger := util.GetLogger("main")

			fs := filesystem.New()
			if cfg.VFSPath != "" {
				loaded, err := vfsxml.Load(cfg.VFSPath)
				if err != nil {
					return err
				}
				fs = loaded
				logger.Info().Str("vfs", cfg.VFSPath).Msg("Loaded filesystem from VFS source")
			} else {
				logger.Warn().Msg("No VFS source provided, starting with an empty tree")
			}

			registry := command.NewRegistry()
			if err := command.RegisterBuiltins(registry); err != nil {
				return err
			}

			env := terminal.NewEnvironment(nil)
			term := terminal.New(cfg, fs, env, terminal.NewUser(env), registry)

			if cfg.ScriptPath != "" {
				return terminal.NewScriptRunnerWithStreams(term, stdout, stderr).Run(cfg.ScriptPath)
			}
			return terminal.NewInteractiveRunnerWithStreams(term, os.Stdin, stdout, stderr).Run()
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML or JSON config file")
	root.Flags().StringVarP(&vfsPath, "vfs", "n", "", "path to the XML VFS source (default: empty tree)")
	root.Flags().StringVarP(&scriptPath, "script", "s", "", "script to run instead of the interactive loop")
	root.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log verbosity: trace, debug, info, warn, error")
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}
