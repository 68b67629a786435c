// Package grader runs one student's grading job: copy fixtures into the
// checkout, optionally run a pre-grader, run the grader, and parse its
// JSON result.
package grader

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/jiegec/classroom-helper/bus"
	"github.com/jiegec/classroom-helper/config"
	"github.com/jiegec/classroom-helper/runner"
)

// Job holds everything a grade job needs, copied out of the shared settings
// so a worker never reaches back into foreground-owned state.
type Job struct {
	Index    int
	GitHub   string
	Settings *config.Settings
}

// Run executes the job end to end, publishing Status and Grade messages to
// b. It never returns an error: every failure mode degrades to an absent
// grade so the controller is always unblocked.
func Run(ctx context.Context, job Job, b bus.Bus) {
	checkout := filepath.Join(job.Settings.Workspace, job.Settings.RepoName(job.GitHub))

	if _, err := os.Stat(filepath.Join(checkout, ".git")); os.IsNotExist(err) {
		b.Send(bus.Status(fmt.Sprintf("Grading %s repo not found", job.GitHub)))
		b.Send(bus.Grade(job.Index, nil))
		return
	}

	if err := copyFixtures(job.Settings, checkout); err != nil {
		b.Send(bus.Status(fmt.Sprintf("Grading %s fixture copy failed: %v", job.GitHub, err)))
		b.Send(bus.Grade(job.Index, nil))
		return
	}

	if job.Settings.BeforeGrader != "" {
		b.Send(bus.Status(fmt.Sprintf("Before grader procedure %s begin", job.GitHub)))

		if _, err := runner.Run(ctx, job.Settings.BeforeGrader, checkout); err != nil {
			b.Send(bus.Status(fmt.Sprintf("Before grader procedure %s failed: %v", job.GitHub, err)))
		}
	}

	b.Send(bus.Status(fmt.Sprintf("Grading %s begin", job.GitHub)))

	start := time.Now()
	out, err := runner.Run(ctx, job.Settings.Grader, checkout)
	elapsed := time.Since(start)

	grade := parseGrade(out)
	if err != nil {
		grade = nil
	}

	b.Send(bus.Status(fmt.Sprintf("Grading %s ended with %s (%.1fs)", job.GitHub, gradeText(grade), elapsed.Seconds())))
	b.Send(bus.Grade(job.Index, grade))
}

// copyFixtures copies every configured path from the template checkout into
// the student checkout, skipping anything that is neither a file nor a
// directory at the source.
func copyFixtures(settings *config.Settings, checkout string) error {
	templateRoot := filepath.Join(settings.Workspace, settings.Template)

	for _, p := range settings.Copy {
		src := filepath.Join(templateRoot, p)

		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}

		if !info.Mode().IsRegular() && !info.IsDir() {
			continue
		}

		dst := filepath.Join(checkout, p)
		if err := copyFixture(src, dst); err != nil {
			return err
		}
	}

	return nil
}

// parseGrade decodes text as a JSON object and extracts a finite numeric
// "grade" field. Any failure - malformed JSON, a non-object value, a
// missing or non-numeric field - yields a nil grade rather than an error.
func parseGrade(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var payload map[string]any
	if err := gojson.Unmarshal([]byte(text), &payload); err != nil {
		return nil
	}

	raw, ok := payload["grade"]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case float64:
		if isFinite(v) {
			return &v
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil && isFinite(f) {
			return &f
		}
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// gradeText renders an absent grade as "None", matching the literal Rust
// Option::None text the source status lines compare against.
func gradeText(g *float64) string {
	if g == nil {
		return "None"
	}

	return strconv.FormatFloat(*g, 'f', -1, 64)
}
