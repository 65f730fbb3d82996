package benchmarks

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

const (
	TSPName = "TSP"
)

// City is a point on the plane.
type City struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceFrom returns the euclidean distance between c and other.
func (c City) DistanceFrom(other City) float64 {
	return math.Hypot(float64(other.X-c.X), float64(other.Y-c.Y))
}

// NewRandomCities places n cities uniformly on a [0, bound) grid.
func NewRandomCities(rng *rand.Rand, n, bound int) []City {
	cities := make([]City, n)
	for i := range cities {
		cities[i] = City{X: rng.IntN(bound), Y: rng.IntN(bound)}
	}
	return cities
}

// Route resolves a chromosome of city indices into the visited cities.
func Route(ind *framework.Individual[int], cities []City) ([]City, error) {
	route := make([]City, ind.Len())
	for i, idx := range ind.Chromosome() {
		if idx < 0 || idx >= len(cities) {
			return nil, fmt.Errorf("%w: city %d of %d", framework.ErrIndexOutOfRange, idx, len(cities))
		}
		route[i] = cities[idx]
	}
	return route, nil
}

// RouteDistance is the length of the closed tour through route, returning
// to the first city.
func RouteDistance(route []City) float64 {
	if len(route) < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i+1 < len(route); i++ {
		total += route[i].DistanceFrom(route[i+1])
	}
	return total + route[len(route)-1].DistanceFrom(route[0])
}

// TSP is the travelling salesman problem over a fixed set of cities. A
// chromosome is a permutation of the city indices.
type TSP struct {
	cities []City
}

func NewTSP(cities []City) *TSP {
	c := make([]City, len(cities))
	copy(c, cities)
	return &TSP{
		cities: c,
	}
}

func (p *TSP) Name() string {
	return TSPName
}

func (p *TSP) Cities() []City {
	out := make([]City, len(p.cities))
	copy(out, p.cities)
	return out
}

func (p *TSP) Domain() framework.Domain[int] {
	return framework.IntRange(0, len(p.cities)-1)
}

func (p *TSP) ChromosomeLength() int {
	return len(p.cities)
}

func (p *TSP) Constraint() framework.GeneConstraint {
	return framework.Unique
}

// Fitness is the inverse of the tour length. Tours through coincident
// cities have length 0 and score 0 instead of an infinite fitness.
func (p *TSP) Fitness(ind *framework.Individual[int]) float64 {
	route, err := Route(ind, p.cities)
	if err != nil {
		return 0
	}
	distance := RouteDistance(route)
	if distance == 0 {
		return 0
	}
	return 1 / distance
}

// Distance returns the tour length of ind.
func (p *TSP) Distance(ind *framework.Individual[int]) (float64, error) {
	route, err := Route(ind, p.cities)
	if err != nil {
		return 0, err
	}
	return RouteDistance(route), nil
}

// The shortest tour is unknown, runs are bounded by generations.
func (p *TSP) Optimum() (float64, bool) {
	return 0, false
}
