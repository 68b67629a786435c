package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
)

// Roster is the ordered sequence of students, iteration order preserved from
// the roster file. Nothing outside the controller mutates it after Load.
type Roster []*Student

var bom = []byte{0xEF, 0xBB, 0xBF}

var header = []string{"学号", "姓名", "GitHub", "黑盒成绩", "白盒成绩", "备注"}

const naLiteral = "N/A"

// Load reads the roster CSV (columns: student_id, name, github), preserving
// order, then overlays any matching grades/comment from an existing results
// CSV. A results record whose (student_id, name, github) triple doesn't match
// any roster student is ignored; a field that fails numeric parsing is left
// absent rather than erroring the whole load.
func Load(rosterPath, resultsPath string) (Roster, error) {
	rosterFile, err := os.Open(rosterPath)
	if err != nil {
		return nil, err
	}
	defer rosterFile.Close()

	r, err := readRoster(rosterFile)
	if err != nil {
		return nil, err
	}

	resultsFile, err := os.Open(resultsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return nil, err
	}
	defer resultsFile.Close()

	if err := mergeResults(r, resultsFile); err != nil {
		return nil, err
	}

	return r, nil
}

func readRoster(f io.Reader) (Roster, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // extra trailing columns are ignored

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return Roster{}, nil
	}

	r := make(Roster, 0, len(records)-1)
	for _, rec := range records[1:] { // skip header row
		if len(rec) < 3 {
			continue
		}

		r = append(r, &Student{
			StudentID: rec[0],
			Name:      rec[1],
			GitHub:    rec[2],
		})
	}

	return r, nil
}

func mergeResults(r Roster, f io.Reader) error {
	index := make(map[[3]string]*Student, len(r))
	for _, s := range r {
		index[s.Key()] = s
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	data = bytes.TrimPrefix(data, bom)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return nil
	}

	for _, rec := range records[1:] {
		if len(rec) < 6 {
			continue
		}

		key := [3]string{rec[0], rec[1], rec[2]}
		s, ok := index[key]
		if !ok {
			continue
		}

		s.Blackbox = parseGrade(rec[3])
		s.Whitebox = parseGrade(rec[4])
		s.Comment = rec[5]
	}

	return nil
}

func parseGrade(raw string) *float64 {
	if raw == "" || raw == naLiteral {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &v
}

// Serialize produces the canonical results CSV bytes: a UTF-8 BOM, the exact
// Chinese header row, and one row per student in roster order. Missing
// grades are written as the literal N/A; missing comments as empty.
func Serialize(r Roster) []byte {
	var buf bytes.Buffer
	buf.Write(bom)

	w := csv.NewWriter(&buf)
	w.Write(header)

	for _, s := range r {
		w.Write([]string{
			s.StudentID,
			s.Name,
			s.GitHub,
			formatGrade(s.Blackbox),
			formatGrade(s.Whitebox),
			s.Comment,
		})
	}

	w.Flush()

	return buf.Bytes()
}

func formatGrade(g *float64) string {
	if g == nil {
		return naLiteral
	}

	return strconv.FormatFloat(*g, 'f', -1, 64)
}
