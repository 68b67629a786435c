package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newTestGithub(t *testing.T, server *httptest.Server) *Github {
	t.Helper()

	g := New(context.Background(), "test-org").(*Github)

	base, err := url.Parse(server.URL + "/")
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}
	g.client.BaseURL = base

	return g
}

func mockRepo(name, description string, private bool, defaultBranch string) map[string]any {
	return map[string]any{
		"name":           name,
		"description":    description,
		"private":        private,
		"default_branch": defaultBranch,
	}
}

func TestListRepositoriesOrganization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/orgs/test-org/repos") {
			t.Errorf("expected org repos path, got %s", r.URL.Path)
		}

		json.NewEncoder(w).Encode([]map[string]any{
			mockRepo("self-intro-ann", "", false, "main"),
			mockRepo("self-intro-bob", "", true, "master"),
		})
	}))
	defer server.Close()

	g := newTestGithub(t, server)
	repos, err := g.ListRepositories()
	if err != nil {
		t.Fatalf("ListRepositories() error = %v", err)
	}

	if len(repos) != 2 || repos[0].Name != "self-intro-ann" {
		t.Fatalf("unexpected repos: %+v", repos)
	}
	if repos[1].Public {
		t.Error("expected second repo to be private")
	}
}

func TestListRepositoriesFallsBackToUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/orgs/") {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
			return
		}

		if strings.Contains(r.URL.Path, "/users/test-org/repos") {
			json.NewEncoder(w).Encode([]map[string]any{mockRepo("solo-repo", "", false, "main")})
			return
		}

		t.Errorf("unexpected path: %s", r.URL.Path)
	}))
	defer server.Close()

	g := newTestGithub(t, server)
	repos, err := g.ListRepositories()
	if err != nil {
		t.Fatalf("ListRepositories() error = %v", err)
	}

	if len(repos) != 1 || repos[0].Name != "solo-repo" {
		t.Fatalf("unexpected repos: %+v", repos)
	}
}

func TestExistsTrue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(mockRepo("self-intro-ann", "", false, "main"))
	}))
	defer server.Close()

	g := newTestGithub(t, server)
	ok, err := g.Exists("self-intro-ann")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !ok {
		t.Error("expected Exists() == true")
	}
}

func TestExistsFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	}))
	defer server.Close()

	g := newTestGithub(t, server)
	ok, err := g.Exists("self-intro-missing")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Error("expected Exists() == false for 404")
	}
}
