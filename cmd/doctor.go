package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jiegec/classroom-helper/config"
	"github.com/jiegec/classroom-helper/roster"
	"github.com/jiegec/classroom-helper/scm"
)

const githubProviderName = "github"

// doctorCmd confirms the organization, template repo, and every student's
// repository are reachable on GitHub before the TUI tries to clone them,
// extending the teacher's repository-catalog probe (which already lists an
// org's repositories with metadata) toward this domain's "one repo per
// student derived from a template" shape.
func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Confirm organization, template, and student repositories exist on GitHub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings, err := config.Load(ctx)
			if err != nil {
				return err
			}

			return runDoctor(ctx, settings)
		},
	}
}

// runDoctor prints a one-line-per-student report and returns a non-nil
// error if the template or any student repository is missing.
func runDoctor(ctx context.Context, settings *config.Settings) error {
	provider := scm.Get(ctx, githubProviderName, settings.Organization)

	r, err := roster.Load(settings.Students, settings.Result)
	if err != nil {
		return err
	}

	return checkRepositories(provider, settings, r)
}

// checkRepositories runs the existence checks against an already-resolved
// provider, kept separate from runDoctor so tests can inject a fake
// scm.Provider instead of reaching the network.
func checkRepositories(provider scm.Provider, settings *config.Settings, r roster.Roster) error {
	missing := 0

	ok, err := provider.Exists(settings.Template)
	if err != nil {
		return fmt.Errorf("checking template repository: %w", err)
	}
	printExistence("template: "+settings.Template, ok)
	if !ok {
		missing++
	}

	for _, s := range r {
		repo := settings.RepoName(s.GitHub)

		ok, err := provider.Exists(repo)
		if err != nil {
			return fmt.Errorf("checking repository %s: %w", repo, err)
		}

		printExistence(s.Name+": "+repo, ok)
		if !ok {
			missing++
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d repositories missing", missing)
	}

	return nil
}

func printExistence(label string, ok bool) {
	mark := "OK"
	if !ok {
		mark = "MISSING"
	}

	fmt.Printf("[%s] %s\n", mark, label)
}
