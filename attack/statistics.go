package attack

// Statistics holds the running mean of the accepted timing deltas of each class.
// A delta is accepted if its absolute value is strictly below the outlier threshold.
type Statistics struct {
	threshold float64
	means     [NbClasses]float64
	counts    [NbClasses]uint64
	discarded uint64
}

// NewStatistics creates empty Statistics with the given outlier threshold.
func NewStatistics(threshold float64) *Statistics {
	return &Statistics{threshold: threshold}
}

// Update incorporates delta in the mean of class and returns true, or counts it
// as discarded and returns false if |delta| >= threshold.
func (s *Statistics) Update(class int, delta float64) (accepted bool) {
	if !(delta < s.threshold && -delta < s.threshold) {
		s.discarded++
		return false
	}
	s.counts[class]++
	s.means[class] += (delta - s.means[class]) / float64(s.counts[class])
	return true
}

// Reset clears all means and counters.
func (s *Statistics) Reset() {
	s.means = [NbClasses]float64{}
	s.counts = [NbClasses]uint64{}
	s.discarded = 0
}

// Mean returns the running mean of class.
func (s *Statistics) Mean(class int) float64 {
	return s.means[class]
}

// Count returns the number of accepted deltas of class.
func (s *Statistics) Count(class int) uint64 {
	return s.counts[class]
}

// Means returns a copy of the running means of all classes.
func (s *Statistics) Means() [NbClasses]float64 {
	return s.means
}

// Counts returns a copy of the accepted counts of all classes.
func (s *Statistics) Counts() [NbClasses]uint64 {
	return s.counts
}

// Discarded returns the number of rejected deltas.
func (s *Statistics) Discarded() uint64 {
	return s.discarded
}

// Accepted returns the total number of accepted deltas.
func (s *Statistics) Accepted() (n uint64) {
	for _, c := range s.counts {
		n += c
	}
	return
}
