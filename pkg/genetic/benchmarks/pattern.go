package benchmarks

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

const (
	DrawPatternName = "DrawPattern"
)

// Draw is one historic lottery draw.
type Draw struct {
	Nr      int    `json:"nr,omitempty"`
	Date    string `json:"date,omitempty"`
	Numbers []int  `json:"numbers"`
}

// DrawArchive is the on-disk form of a draw history.
type DrawArchive struct {
	Draws []Draw `json:"draws"`
}

// LoadDraws decodes a YAML or JSON draw archive.
func LoadDraws(r io.Reader) ([]Draw, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading draw archive: %w", err)
	}
	var archive DrawArchive
	if err := yaml.UnmarshalStrict(data, &archive); err != nil {
		return nil, fmt.Errorf("decoding draw archive: %w", err)
	}
	return archive.Draws, nil
}

// DrawPattern scores a ticket of distinct numbers against a draw history.
// Fitness is the number of ticket numbers found in each draw, summed over
// the history and normalized by draws times ticket length, so a ticket
// matching every draw completely scores 1.
type DrawPattern struct {
	maxNumber int
	picks     int
	draws     []map[int]struct{}
}

// NewDrawPattern builds a problem picking picks numbers out of 1..maxNumber.
func NewDrawPattern(maxNumber, picks int, draws []Draw) (*DrawPattern, error) {
	if picks <= 0 || picks > maxNumber {
		return nil, fmt.Errorf("%w: %d picks out of %d numbers", framework.ErrInsufficientDomain, picks, maxNumber)
	}
	if len(draws) == 0 {
		return nil, fmt.Errorf("%w: empty draw history", framework.ErrInvalidConfig)
	}

	p := &DrawPattern{
		maxNumber: maxNumber,
		picks:     picks,
		draws:     make([]map[int]struct{}, len(draws)),
	}
	for i, d := range draws {
		set := make(map[int]struct{}, len(d.Numbers))
		for _, n := range d.Numbers {
			if n < 1 || n > maxNumber {
				return nil, fmt.Errorf("%w: draw %d holds %d, outside 1..%d", framework.ErrInvalidConfig, i, n, maxNumber)
			}
			set[n] = struct{}{}
		}
		p.draws[i] = set
	}
	return p, nil
}

func (p *DrawPattern) Name() string {
	return DrawPatternName
}

func (p *DrawPattern) Domain() framework.Domain[int] {
	return framework.IntRange(1, p.maxNumber)
}

func (p *DrawPattern) ChromosomeLength() int {
	return p.picks
}

func (p *DrawPattern) Constraint() framework.GeneConstraint {
	return framework.Unique
}

func (p *DrawPattern) Fitness(ind *framework.Individual[int]) float64 {
	if ind.Len() == 0 {
		return 0
	}
	matches := 0
	for _, n := range ind.Chromosome() {
		for _, draw := range p.draws {
			if _, ok := draw[n]; ok {
				matches++
			}
		}
	}
	return float64(matches) / float64(len(p.draws)*ind.Len())
}

func (p *DrawPattern) Optimum() (float64, bool) {
	return 1, true
}
