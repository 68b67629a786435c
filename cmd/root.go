// Package cmd provides the command-line interface for classroom-helper.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jiegec/classroom-helper/config"
	"github.com/jiegec/classroom-helper/controller"
	"github.com/jiegec/classroom-helper/roster"
	"github.com/jiegec/classroom-helper/utils"

	tea "github.com/charmbracelet/bubbletea"

	// Register SCM providers
	_ "github.com/jiegec/classroom-helper/scm/github"
)

const (
	configFlag = "config"

	preflightFlag   = "preflight"
	noPreflightFlag = "no-" + preflightFlag
)

// RootCmd configures the top-level root command and its flags.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "classroom-helper [config file]",
		Short: "Interactive terminal tool for grading classroom git submissions",
		Long: `Interactive terminal tool for grading classroom git submissions.

This tool syncs a template repository and one per-student repository per
roster entry, runs a configured grader against each student's checkout, and
lets you record blackbox/whitebox grades and comments in a live, keyboard
driven table. Results are saved as a CSV alongside the roster.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				config.CfgFile = args[0]
			}

			viper := config.Viper(cmd.Context())

			if config.CfgFile != "" {
				viper.SetConfigFile(config.CfgFile)
				if err := viper.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config file %s: %w", config.CfgFile, err)
				}
			}

			for _, key := range []string{
				config.Organization, config.Prefix, config.Workspace, config.Students,
				config.Template, config.TemplateBranch, config.Result, config.Grader,
				config.BeforeGrader, config.Diff, config.Deadline,
			} {
				viper.BindPFlag(key, cmd.Flags().Lookup(key))
			}

			viper.BindPFlag(config.Copy, cmd.Flags().Lookup(config.Copy))

			return utils.BindBoolFlags(cmd, preflightKey, preflightFlag, noPreflightFlag)
		},
		RunE: runGrading,
		Version: config.Version,
	}

	rootCmd.PersistentFlags().StringVar(&config.CfgFile, configFlag, "", "config file (default is classroom-helper.yaml)")

	rootCmd.PersistentFlags().String(config.Organization, "", "GitHub organization owning the template and student repositories")
	rootCmd.PersistentFlags().String(config.Prefix, "", "repository name prefix shared by every student repository")
	rootCmd.PersistentFlags().String(config.Workspace, "workspace", "directory checkouts are cloned into")
	rootCmd.PersistentFlags().String(config.Students, "students.csv", "path to the roster CSV")
	rootCmd.PersistentFlags().String(config.Template, "", "template repository name")
	rootCmd.PersistentFlags().String(config.TemplateBranch, "master", "template repository branch")
	rootCmd.PersistentFlags().String(config.Result, "result.csv", "path to the results CSV")
	rootCmd.PersistentFlags().String(config.Grader, "", "path to the grading script")
	rootCmd.PersistentFlags().String(config.BeforeGrader, "", "path to a script run before the grader")
	rootCmd.PersistentFlags().String(config.Diff, ".", "pathspec shown in the Diff pane")
	rootCmd.PersistentFlags().StringSlice(config.Copy, nil, "fixture file or directory to copy into each checkout before grading (repeatable)")
	rootCmd.PersistentFlags().String(config.Deadline, "", "RFC3339 submission deadline")

	utils.BuildBoolFlags(rootCmd, preflightFlag, "", noPreflightFlag, "", "confirm organization/template/student repositories exist before launching")

	rootCmd.AddCommand(doctorCmd())

	return rootCmd
}

// preflightKey is the viper key the --preflight/--no-preflight pair binds
// to; it isn't one of config's Configuration fields, so it isn't listed in
// config.Settings.
const preflightKey = "preflight"

func runGrading(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := config.Load(ctx)
	if err != nil {
		return err
	}

	preflight := config.Viper(ctx).GetBool(preflightKey)
	// The grading screen is a full-screen bubbletea program; it has no
	// useful behavior against a pipe, redirect, or CI log, so fall back to
	// the doctor report instead of hanging waiting for a real terminal.
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	if preflight || !interactive {
		if err := runDoctor(ctx, settings); err != nil {
			return err
		}
	}

	if !interactive {
		return nil
	}

	r, err := roster.Load(settings.Students, settings.Result)
	if err != nil {
		return err
	}

	m := controller.New(ctx, settings, r)

	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err = p.Run()
	return err
}

// Execute is called by main.main(); it builds the root command and runs it
// against a freshly initialized configuration context.
func Execute() {
	ctx := config.Init(context.Background())

	if err := RootCmd().ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
