// Package github implements the scm.Provider interface against the GitHub
// REST API, used by the doctor preflight check.
package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v74/github"
	"golang.org/x/sync/semaphore"

	"github.com/jiegec/classroom-helper/config"
	"github.com/jiegec/classroom-helper/scm"
)

const readWeight = 1

var sem = semaphore.NewWeighted(4)

var _ scm.Provider = new(Github)

func init() {
	scm.Register("github", New)
}

// New creates a new GitHub provider instance for the given organization.
func New(ctx context.Context, org string) scm.Provider {
	v := config.Viper(ctx)
	return &Github{
		client: github.NewClient(http.DefaultClient).WithAuthToken(v.GetString(config.GithubAuthToken)),
		org:    org,
		ctx:    ctx,
	}
}

// Github implements scm.Provider for GitHub.
type Github struct {
	client *github.Client
	org    string
	ctx    context.Context
}

func (g *Github) readLock() (done func()) {
	if err := sem.Acquire(g.ctx, readWeight); err != nil {
		return func() {}
	}

	return func() {
		sem.Release(readWeight)
	}
}
