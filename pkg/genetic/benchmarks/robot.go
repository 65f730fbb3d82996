package benchmarks

import (
	"fmt"
	"strings"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

const (
	RobotControllerName = "RobotController"

	// sensorStates is the number of distinct readings of the six wall sensors.
	sensorStates = 64
	// RobotChromosomeLength is two bits per sensor state.
	RobotChromosomeLength = 2 * sensorStates
)

// Cell is the content of a maze position.
type Cell int

const (
	CellOpen Cell = iota
	CellWall
	CellStart
	CellRoute
	CellGoal
)

// Position is a maze coordinate, X being the column.
type Position struct {
	X, Y int
}

// Maze is a rectangular grid the robot navigates. Positions outside the
// grid read as walls.
type Maze struct {
	grid  [][]Cell
	start Position
}

// NewMaze validates grid and locates the start cell. A grid without a start
// cell starts at the origin.
func NewMaze(grid [][]int) (*Maze, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("%w: empty maze", framework.ErrInvalidConfig)
	}
	m := &Maze{grid: make([][]Cell, len(grid))}
	found := false
	for y, row := range grid {
		if len(row) != len(grid[0]) {
			return nil, fmt.Errorf("%w: maze row %d has %d cells, want %d", framework.ErrInvalidConfig, y, len(row), len(grid[0]))
		}
		m.grid[y] = make([]Cell, len(row))
		for x, v := range row {
			if v < int(CellOpen) || v > int(CellGoal) {
				return nil, fmt.Errorf("%w: maze cell (%d,%d) has unknown type %d", framework.ErrInvalidConfig, x, y, v)
			}
			m.grid[y][x] = Cell(v)
			if Cell(v) == CellStart && !found {
				m.start = Position{X: x, Y: y}
				found = true
			}
		}
	}
	return m, nil
}

// DefaultMaze returns the 9x9 maze with a route from the top right corner to
// the bottom right corner.
func DefaultMaze() *Maze {
	m, _ := NewMaze([][]int{
		{0, 0, 0, 0, 1, 0, 1, 3, 2},
		{1, 0, 1, 1, 1, 0, 1, 3, 1},
		{1, 0, 0, 1, 3, 3, 3, 3, 1},
		{3, 3, 3, 1, 3, 1, 1, 0, 1},
		{3, 1, 3, 3, 3, 1, 1, 0, 0},
		{3, 3, 1, 1, 1, 1, 0, 1, 1},
		{1, 3, 0, 1, 3, 3, 3, 3, 3},
		{0, 3, 1, 1, 3, 1, 0, 1, 3},
		{1, 3, 3, 3, 3, 1, 1, 1, 4},
	})
	return m
}

func (m *Maze) Start() Position {
	return m.start
}

func (m *Maze) Width() int {
	return len(m.grid[0])
}

func (m *Maze) Height() int {
	return len(m.grid)
}

// At returns the cell at p, CellWall outside the grid.
func (m *Maze) At(p Position) Cell {
	if p.X < 0 || p.Y < 0 || p.Y >= len(m.grid) || p.X >= len(m.grid[0]) {
		return CellWall
	}
	return m.grid[p.Y][p.X]
}

func (m *Maze) IsWall(p Position) bool {
	return m.At(p) == CellWall
}

// RouteCells counts the route cells of the maze, an upper bound of ScoreRoute.
func (m *Maze) RouteCells() int {
	n := 0
	for _, row := range m.grid {
		for _, c := range row {
			if c == CellRoute {
				n++
			}
		}
	}
	return n
}

// ScoreRoute awards one point per distinct route cell visited. Revisits
// score nothing so wiggling on the route does not pay.
func (m *Maze) ScoreRoute(route []Position) int {
	visited := make(map[Position]bool, len(route))
	score := 0
	for _, p := range route {
		if m.At(p) == CellRoute && !visited[p] {
			visited[p] = true
			score++
		}
	}
	return score
}

// Action is a robot move.
type Action int

const (
	ActionStop Action = iota
	ActionForward
	ActionTurnRight
	ActionTurnLeft
)

type heading int

const (
	north heading = iota
	east
	south
	west
)

// delta returns the offset of one step along h.
func (h heading) delta() Position {
	switch h {
	case north:
		return Position{0, -1}
	case east:
		return Position{1, 0}
	case south:
		return Position{0, 1}
	default:
		return Position{-1, 0}
	}
}

func (h heading) right() heading {
	return (h + 1) % 4
}

func (h heading) left() heading {
	return (h + 3) % 4
}

// DecodeActions maps a bit chromosome to one action per sensor state: bits
// 2i and 2i+1 form the action for sensor value i, high bit first.
func DecodeActions(chromosome []int) []Action {
	actions := make([]Action, len(chromosome)/2)
	for i := range actions {
		a := 0
		if chromosome[2*i] == 1 {
			a += 2
		}
		if chromosome[2*i+1] == 1 {
			a++
		}
		actions[i] = Action(a)
	}
	return actions
}

// Robot walks a maze driven by a sensor to action table.
type Robot struct {
	maze     *Maze
	actions  []Action
	maxMoves int

	position Position
	heading  heading
	route    []Position
}

// NewRobot places a robot facing east on the start cell of maze. actions
// must have an entry for each of the 64 sensor values.
func NewRobot(actions []Action, maze *Maze, maxMoves int) (*Robot, error) {
	if len(actions) != sensorStates {
		return nil, fmt.Errorf("%w: %d actions, want %d", framework.ErrIndexOutOfRange, len(actions), sensorStates)
	}
	start := maze.Start()
	return &Robot{
		maze:     maze,
		actions:  actions,
		maxMoves: maxMoves,
		position: start,
		heading:  east,
		route:    []Position{start},
	}, nil
}

// Run moves the robot until it stops, reaches the goal or runs out of moves.
func (r *Robot) Run() {
	for moves := 1; ; moves++ {
		action := r.nextAction()
		if action == ActionStop || r.maze.At(r.position) == CellGoal || moves > r.maxMoves {
			return
		}
		r.act(action)
	}
}

func (r *Robot) act(action Action) {
	switch action {
	case ActionForward:
		d := r.heading.delta()
		next := Position{X: r.position.X + d.X, Y: r.position.Y + d.Y}
		if !r.maze.IsWall(next) {
			r.position = next
			r.route = append(r.route, next)
		}
	case ActionTurnRight:
		r.heading = r.heading.right()
	case ActionTurnLeft:
		r.heading = r.heading.left()
	}
}

func (r *Robot) nextAction() Action {
	return r.actions[r.SensorValue()]
}

// SensorValue reads the six wall sensors relative to the heading: front 1,
// front-left 2, front-right 4, left 8, right 16, back 32.
func (r *Robot) SensorValue() int {
	front := r.heading.delta()
	right := r.heading.right().delta()
	left := r.heading.left().delta()
	back := r.heading.right().right().delta()
	at := func(offsets ...Position) Position {
		p := r.position
		for _, o := range offsets {
			p.X += o.X
			p.Y += o.Y
		}
		return p
	}

	sensors := []Position{
		at(front),
		at(front, left),
		at(front, right),
		at(left),
		at(right),
		at(back),
	}
	value := 0
	for i, p := range sensors {
		if r.maze.IsWall(p) {
			value |= 1 << i
		}
	}
	return value
}

func (r *Robot) Position() Position {
	return r.position
}

// Route returns every cell entered, the start included.
func (r *Robot) Route() []Position {
	out := make([]Position, len(r.route))
	copy(out, r.route)
	return out
}

func (r *Robot) String() string {
	var sb strings.Builder
	for _, p := range r.route {
		fmt.Fprintf(&sb, "{%d,%d}", p.X, p.Y)
	}
	return sb.String()
}

// RobotController evolves the sensor to action table of a maze robot.
// Fitness is the number of distinct route cells the robot covers.
type RobotController struct {
	maze     *Maze
	maxMoves int
}

func NewRobotController(maze *Maze, maxMoves int) *RobotController {
	return &RobotController{
		maze:     maze,
		maxMoves: maxMoves,
	}
}

func (p *RobotController) Name() string {
	return RobotControllerName
}

func (p *RobotController) Domain() framework.Domain[int] {
	return framework.NewDomain(0, 1)
}

func (p *RobotController) ChromosomeLength() int {
	return RobotChromosomeLength
}

func (p *RobotController) Constraint() framework.GeneConstraint {
	return framework.Unconstrained
}

// Simulate runs a robot controlled by ind through the maze.
func (p *RobotController) Simulate(ind *framework.Individual[int]) (*Robot, error) {
	if ind.Len() != RobotChromosomeLength {
		return nil, fmt.Errorf("%w: chromosome length %d, want %d", framework.ErrIndexOutOfRange, ind.Len(), RobotChromosomeLength)
	}
	robot, err := NewRobot(DecodeActions(ind.Chromosome()), p.maze, p.maxMoves)
	if err != nil {
		return nil, err
	}
	robot.Run()
	return robot, nil
}

func (p *RobotController) Fitness(ind *framework.Individual[int]) float64 {
	robot, err := p.Simulate(ind)
	if err != nil {
		return 0
	}
	return float64(p.maze.ScoreRoute(robot.route))
}

// The best achievable coverage depends on the maze layout, runs are bounded
// by generations.
func (p *RobotController) Optimum() (float64, bool) {
	return 0, false
}
