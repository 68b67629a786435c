package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v74/github"

	"github.com/jiegec/classroom-helper/scm"
)

// ListRepositories lists every repository in the organization, falling back
// to a user-repository listing if the configured org is actually a user
// account (e.g. an instructor grading solo without an organization).
func (g *Github) ListRepositories() ([]*scm.Repository, error) {
	defer g.readLock()()

	output := make([]*scm.Repository, 0)
	opt := &github.RepositoryListByOrgOptions{
		Sort:        "full_name",
		ListOptions: github.ListOptions{PerPage: 50},
	}

	for {
		repos, resp, err := g.listRepositories(opt)
		if err != nil {
			return nil, err
		}

		for _, repo := range repos {
			output = append(output, &scm.Repository{
				Name:          repo.GetName(),
				Description:   repo.GetDescription(),
				Public:        !repo.GetPrivate(),
				Project:       g.org,
				DefaultBranch: repo.GetDefaultBranch(),
			})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}

		opt.Page = resp.NextPage
	}

	return output, nil
}

func (g *Github) listRepositories(opt *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error) {
	repos, resp, err := g.client.Repositories.ListByOrg(g.ctx, g.org, opt)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			userOpt := &github.RepositoryListByUserOptions{Sort: opt.Sort, ListOptions: opt.ListOptions}
			return g.client.Repositories.ListByUser(g.ctx, g.org, userOpt)
		}

		return nil, nil, fmt.Errorf("list repositories: %w", err)
	}

	return repos, resp, nil
}

// Exists reports whether a repository named name exists under the
// configured organization (or user account).
func (g *Github) Exists(name string) (bool, error) {
	defer g.readLock()()

	_, resp, err := g.client.Repositories.Get(g.ctx, g.org, name)
	if err == nil {
		return true, nil
	}

	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	return false, fmt.Errorf("check repository %s/%s: %w", g.org, name, err)
}
