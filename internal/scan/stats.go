package scan

// Stats counts grammar hits and misses for one analysis run. The reporting
// layer reads both at the end of the run.
type Stats struct {
	Hits   int
	Misses int
}

func (s *Stats) Hit() {
	if s != nil {
		s.Hits++
	}
}

func (s *Stats) Miss() {
	if s != nil {
		s.Misses++
	}
}
