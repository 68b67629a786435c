package roster

// Summary reports how many students carried over a prior grade or comment
// when a roster was loaded, out of the total. It supplements
// the base Load/Serialize pair with a one-line startup summary the original
// tool never printed, mirroring the teacher's habit of summarizing batch
// results (see controller.Model's startup status line).
type Summary struct {
	Total     int
	Graded    int
	Commented int
}

// Summarize walks a loaded Roster and counts prior grading state.
func Summarize(r Roster) Summary {
	sum := Summary{Total: len(r)}

	for _, s := range r {
		if s.Blackbox != nil || s.Whitebox != nil {
			sum.Graded++
		}
		if s.Comment != "" {
			sum.Commented++
		}
	}

	return sum
}
