package fake

import (
	"context"
	"errors"
	"testing"

	"github.com/jiegec/classroom-helper/scm"
)

func TestNewHasNoRepositories(t *testing.T) {
	provider := New(context.Background(), "test-org").(*Fake)

	if provider.Project != "test-org" {
		t.Errorf("Project = %q, want %q", provider.Project, "test-org")
	}
	if provider.GetRepositoryCount() != 0 {
		t.Errorf("expected 0 repositories, got %d", provider.GetRepositoryCount())
	}
}

func TestNewFakeSeedsRepositories(t *testing.T) {
	repos := CreateTestRepositories("test-org")
	f := NewFake("test-org", repos)

	if f.GetRepositoryCount() != len(repos) {
		t.Errorf("expected %d repositories, got %d", len(repos), f.GetRepositoryCount())
	}

	listed, err := f.ListRepositories()
	if err != nil {
		t.Fatalf("ListRepositories() error = %v", err)
	}

	if listed[0] == repos[0] {
		t.Error("expected ListRepositories to return copies, not the seeded pointers")
	}
}

func TestExists(t *testing.T) {
	f := NewFake("test-org", CreateTestRepositories("test-org"))

	ok, err := f.Exists("self-intro-ann")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !ok {
		t.Error("expected self-intro-ann to exist")
	}

	ok, err = f.Exists("self-intro-missing")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Error("expected self-intro-missing to not exist")
	}
}

func TestListRepositoriesError(t *testing.T) {
	f := NewFake("test-org", CreateTestRepositories("test-org"))
	f.SetError("ListRepositories", errors.New("boom"))

	if _, err := f.ListRepositories(); err == nil {
		t.Fatal("expected configured error")
	}
}

func TestClear(t *testing.T) {
	f := NewFake("test-org", CreateTestRepositories("test-org"))
	f.Clear()

	if f.GetRepositoryCount() != 0 {
		t.Errorf("expected 0 repositories after Clear, got %d", f.GetRepositoryCount())
	}
}

func TestFakeSatisfiesProvider(t *testing.T) {
	var _ scm.Provider = New(context.Background(), "test-org")
}
