package roster

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}

	return path
}

func TestLoadPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	rosterPath := writeFile(t, dir, "students.csv", "student_id,name,github\n1,Ann,ann\n2,Bob,bob\n")
	resultsPath := filepath.Join(dir, "missing-results.csv")

	r, err := Load(rosterPath, resultsPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(r) != 2 || r[0].Name != "Ann" || r[1].Name != "Bob" {
		t.Fatalf("unexpected order: %+v", r)
	}
}

func TestLoadMergesExistingResults(t *testing.T) {
	dir := t.TempDir()
	rosterPath := writeFile(t, dir, "students.csv", "student_id,name,github\n1,Ann,ann\n2,Bob,bob\n")
	resultsPath := writeFile(t, dir, "result.csv",
		string(bom)+"学号,姓名,GitHub,黑盒成绩,白盒成绩,备注\n1,Ann,ann,85,N/A,great job\n")

	r, err := Load(rosterPath, resultsPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if r[0].Blackbox == nil || *r[0].Blackbox != 85 {
		t.Errorf("expected Ann.Blackbox == 85, got %v", r[0].Blackbox)
	}
	if r[0].Whitebox != nil {
		t.Errorf("expected Ann.Whitebox absent, got %v", *r[0].Whitebox)
	}
	if r[0].Comment != "great job" {
		t.Errorf("expected Ann.Comment == %q, got %q", "great job", r[0].Comment)
	}
	if r[1].Blackbox != nil {
		t.Errorf("expected Bob.Blackbox absent, got %v", *r[1].Blackbox)
	}
}

func TestLoadUnparsableGradeIsAbsent(t *testing.T) {
	dir := t.TempDir()
	rosterPath := writeFile(t, dir, "students.csv", "student_id,name,github\n1,Ann,ann\n")
	resultsPath := writeFile(t, dir, "result.csv",
		string(bom)+"学号,姓名,GitHub,黑盒成绩,白盒成绩,备注\n1,Ann,ann,oops,N/A,\n")

	r, err := Load(rosterPath, resultsPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if r[0].Blackbox != nil {
		t.Errorf("expected unparsable grade to be absent, got %v", *r[0].Blackbox)
	}
}

func TestSerializeHasBOMAndHeader(t *testing.T) {
	r := Roster{{StudentID: "1", Name: "Ann", GitHub: "ann"}}
	grade := 85.0
	r[0].Blackbox = &grade

	out := Serialize(r)

	if !bytes.HasPrefix(out, bom) {
		t.Fatal("expected serialized output to start with BOM")
	}

	if !bytes.HasPrefix(out[len(bom):], []byte("学号,姓名,GitHub,黑盒成绩,白盒成绩,备注\n")) {
		t.Errorf("expected header row right after the BOM, got:\n%s", out)
	}

	if !bytes.Contains(out, []byte("1,Ann,ann,85,N/A,")) {
		t.Errorf("expected row for Ann with N/A whitebox, got:\n%s", out)
	}
}

func TestSerializeRoundTripIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	rosterPath := writeFile(t, dir, "students.csv", "student_id,name,github\n1,Ann,ann\n2,Bob,bob\n")
	resultsPath := filepath.Join(dir, "result.csv")

	r1, err := Load(rosterPath, resultsPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	grade := 85.0
	r1[0].Blackbox = &grade
	r1[0].Comment = "Hello"

	first := Serialize(r1)
	if err := os.WriteFile(resultsPath, first, 0o644); err != nil {
		t.Fatalf("writing results: %v", err)
	}

	r2, err := Load(rosterPath, resultsPath)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}

	second := Serialize(r2)

	if !bytes.Equal(first, second) {
		t.Errorf("round trip not idempotent:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestSummarize(t *testing.T) {
	grade := 90.0
	r := Roster{
		{StudentID: "1", Name: "Ann", GitHub: "ann", Blackbox: &grade, Comment: "good"},
		{StudentID: "2", Name: "Bob", GitHub: "bob"},
	}

	sum := Summarize(r)

	if sum.Total != 2 || sum.Graded != 1 || sum.Commented != 1 {
		t.Errorf("unexpected summary: %+v", sum)
	}
}
