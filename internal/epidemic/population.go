package epidemic

import "fmt"

// Category is the classification of a single cell.
type Category uint8

const (
	Susceptible Category = iota
	Infected
	Recovered
)

// Categories lists every category in a fixed order.
var Categories = [...]Category{Susceptible, Infected, Recovered}

func (c Category) String() string {
	switch c {
	case Susceptible:
		return "susceptible"
	case Infected:
		return "infected"
	case Recovered:
		return "recovered"
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Classify applies the thresholds in priority order: a cell over both
// thresholds is infected, never recovered.
func (t Thresholds) Classify(c Cell) Category {
	if c.Virus >= t.Infected {
		return Infected
	}
	if c.Antibody >= t.Recovered {
		return Recovered
	}
	return Susceptible
}

// PopulationCount is a per-day snapshot of the classified population.
type PopulationCount struct {
	Susceptible int `json:"susceptible"`
	Infected    int `json:"infected"`
	Recovered   int `json:"recovered"`
}

// Get returns the count for one category.
func (p PopulationCount) Get(c Category) int {
	switch c {
	case Infected:
		return p.Infected
	case Recovered:
		return p.Recovered
	}
	return p.Susceptible
}

func (p *PopulationCount) add(c Category) {
	switch c {
	case Infected:
		p.Infected++
	case Recovered:
		p.Recovered++
	default:
		p.Susceptible++
	}
}

// Total is the number of classified cells.
func (p PopulationCount) Total() int { return p.Susceptible + p.Infected + p.Recovered }

// Map returns the counts keyed by category name.
func (p PopulationCount) Map() map[string]int {
	return map[string]int{
		Susceptible.String(): p.Susceptible,
		Infected.String():    p.Infected,
		Recovered.String():   p.Recovered,
	}
}

func (p PopulationCount) String() string {
	return fmt.Sprintf("%d susceptible, %d infected, %d recovered", p.Susceptible, p.Infected, p.Recovered)
}
