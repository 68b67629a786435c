package cmd

import (
	"testing"
)

func TestRootCmd(t *testing.T) {
	cmd := RootCmd()

	if cmd == nil {
		t.Fatal("RootCmd() returned nil")
	}

	if cmd.Use != "classroom-helper [config file]" {
		t.Errorf("Expected Use to be 'classroom-helper [config file]', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	var doctor bool
	for _, sub := range cmd.Commands() {
		if sub.Use == "doctor" {
			doctor = true
		}
	}
	if !doctor {
		t.Error("Expected a doctor subcommand")
	}
}

func TestRootCmdRegistersSettingsFlags(t *testing.T) {
	cmd := RootCmd()

	for _, name := range []string{"organization", "prefix", "workspace", "students", "template", "template-branch", "result", "grader", "before-grader", "diff", "copy", "deadline"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected a persistent flag named %q", name)
		}
	}

	if cmd.PersistentFlags().Lookup("preflight") == nil {
		t.Error("expected a preflight flag")
	}
}
