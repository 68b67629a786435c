// Package roster loads and serializes the student roster and saved grades.
package roster

// Student is a single row of the roster, mutable only by the controller.
type Student struct {
	StudentID string
	Name      string
	GitHub    string

	Blackbox *float64
	Whitebox *float64
	Comment  string
}

// Key returns the (student_id, name, github) triple used to match students
// across roster and result files.
func (s *Student) Key() [3]string {
	return [3]string{s.StudentID, s.Name, s.GitHub}
}
