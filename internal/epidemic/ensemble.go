package epidemic

import "gonum.org/v1/gonum/stat"

// Ensemble collects the daily counts of independent runs of the same board.
type Ensemble struct {
	Days int
	Runs [][]PopulationCount
}

// Series returns the daily counts of one category for run i.
func (e *Ensemble) Series(i int, c Category) []float64 {
	out := make([]float64, len(e.Runs[i]))
	for d, p := range e.Runs[i] {
		out[d] = float64(p.Get(c))
	}
	return out
}

// Band is the per-day mean and sample standard deviation of one category.
type Band struct {
	Mean   []float64
	StdDev []float64
}

// Summary is the ensemble statistic for every category.
type Summary map[Category]Band

// Summary computes per-day statistics across runs. With a single run the
// standard deviation is reported as zero.
func (e *Ensemble) Summary() Summary {
	out := make(Summary, len(Categories))
	sample := make([]float64, len(e.Runs))
	for _, c := range Categories {
		band := Band{Mean: make([]float64, e.Days), StdDev: make([]float64, e.Days)}
		for d := 0; d < e.Days; d++ {
			for i, run := range e.Runs {
				sample[i] = float64(run[d].Get(c))
			}
			if len(sample) == 1 {
				band.Mean[d] = sample[0]
				continue
			}
			band.Mean[d], band.StdDev[d] = stat.MeanStdDev(sample, nil)
		}
		out[c] = band
	}
	return out
}

// PeakInfected returns, for every run, the day with the most infected cells
// and that count. Ties resolve to the earliest day.
func (e *Ensemble) PeakInfected() (days, counts []int) {
	days = make([]int, len(e.Runs))
	counts = make([]int, len(e.Runs))
	for i, run := range e.Runs {
		for d, p := range run {
			if p.Infected > counts[i] {
				days[i], counts[i] = d, p.Infected
			}
		}
	}
	return days, counts
}
