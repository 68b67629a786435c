// Package fake provides an in-memory scm.Provider for tests that exercise
// the doctor preflight check without touching the network.
package fake

import (
	"context"

	"github.com/jiegec/classroom-helper/scm"
)

var _ scm.Provider = new(Fake)

func init() {
	scm.Register("fake", New)
}

// Fake implements scm.Provider with a configurable in-memory repository set.
type Fake struct {
	Project      string
	Repositories []*scm.Repository
	Errors       map[string]error
}

// New creates a new fake provider with no seeded repositories.
func New(_ context.Context, project string) scm.Provider {
	return &Fake{
		Project:      project,
		Repositories: make([]*scm.Repository, 0),
		Errors:       make(map[string]error),
	}
}

// NewFake creates a fake provider pre-seeded with repos.
func NewFake(project string, repos []*scm.Repository) *Fake {
	f := New(context.Background(), project).(*Fake)
	f.AddRepositories(repos...)
	return f
}

// ListRepositories returns the configured repositories.
func (f *Fake) ListRepositories() ([]*scm.Repository, error) {
	if err := f.Errors["ListRepositories"]; err != nil {
		return nil, err
	}

	result := make([]*scm.Repository, len(f.Repositories))
	copy(result, f.Repositories)

	return result, nil
}

// Exists reports whether a repository by this name was seeded.
func (f *Fake) Exists(name string) (bool, error) {
	if err := f.Errors["Exists"]; err != nil {
		return false, err
	}

	for _, repo := range f.Repositories {
		if repo.Name == name {
			return true, nil
		}
	}

	return false, nil
}

// AddRepository seeds a repository.
func (f *Fake) AddRepository(repo *scm.Repository) {
	f.Repositories = append(f.Repositories, &scm.Repository{
		Name:          repo.Name,
		Description:   repo.Description,
		Public:        repo.Public,
		Project:       repo.Project,
		DefaultBranch: repo.DefaultBranch,
	})
}

// AddRepositories seeds multiple repositories.
func (f *Fake) AddRepositories(repos ...*scm.Repository) {
	for _, repo := range repos {
		f.AddRepository(repo)
	}
}

// SetError configures the provider to return an error for a specific method.
func (f *Fake) SetError(method string, err error) {
	f.Errors[method] = err
}

// Clear removes all seeded repositories and errors.
func (f *Fake) Clear() {
	f.Repositories = f.Repositories[:0]
	f.Errors = make(map[string]error)
}

// GetRepositoryCount returns the number of seeded repositories.
func (f *Fake) GetRepositoryCount() int {
	return len(f.Repositories)
}

// CreateTestRepositories builds a small fixture repository set for tests.
func CreateTestRepositories(project string) []*scm.Repository {
	return []*scm.Repository{
		{Name: "self-intro-ann", Project: project, DefaultBranch: "main", Public: false},
		{Name: "self-intro-bob", Project: project, DefaultBranch: "main", Public: false},
	}
}
