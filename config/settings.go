package config

import (
	"context"
	"fmt"
	"time"
)

// Settings is the typed, immutable-after-start Configuration described by the
// spec's data model. It is built once from a *viper.Viper populated by the
// file/env/flag layering in Init.
type Settings struct {
	Organization   string
	Prefix         string
	Workspace      string
	Students       string
	Result         string
	Template       string
	TemplateBranch string
	Grader         string
	BeforeGrader   string
	Diff           string
	Copy           []string
	Deadline       *time.Time

	FetchWorkers  int
	ChannelBuffer int

	GithubUser      string
	GithubHost      string
	GithubAuthToken string
}

// Load builds a Settings value from the viper instance stored in ctx,
// failing with a ConfigError-flavored error on missing required fields.
func Load(ctx context.Context) (*Settings, error) {
	v := Viper(ctx)

	s := &Settings{
		Organization:   v.GetString(Organization),
		Prefix:         v.GetString(Prefix),
		Workspace:      v.GetString(Workspace),
		Students:       v.GetString(Students),
		Result:         v.GetString(Result),
		Template:       v.GetString(Template),
		TemplateBranch: v.GetString(TemplateBranch),
		Grader:         v.GetString(Grader),
		BeforeGrader:   v.GetString(BeforeGrader),
		Diff:           v.GetString(Diff),
		Copy:           v.GetStringSlice(Copy),

		FetchWorkers:  v.GetInt(FetchWorkers),
		ChannelBuffer: v.GetInt(ChannelBuffer),

		GithubUser:      v.GetString(GithubUser),
		GithubHost:      v.GetString(GithubHost),
		GithubAuthToken: v.GetString(GithubAuthToken),
	}

	for name, value := range map[string]string{
		Organization: s.Organization,
		Prefix:       s.Prefix,
		Students:     s.Students,
		Template:     s.Template,
		Grader:       s.Grader,
	} {
		if value == "" {
			return nil, fmt.Errorf("missing required configuration option %q", name)
		}
	}

	if raw := v.GetString(Deadline); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline %q: %w", raw, err)
		}
		s.Deadline = &t
	}

	if s.FetchWorkers <= 0 {
		s.FetchWorkers = 4
	}

	return s, nil
}

// RepoName returns the per-student repository name for the given github handle.
func (s *Settings) RepoName(github string) string {
	return fmt.Sprintf("%s-%s", s.Prefix, github)
}

// RepoURL returns the SSH clone URL for the given repository name.
func (s *Settings) RepoURL(repo string) string {
	return fmt.Sprintf(CloneSSHURLTmpl, s.GithubUser, s.GithubHost, s.Organization, repo)
}
