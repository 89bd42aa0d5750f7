package engine

// Graph is a validated, execution-ready step ordering produced by
// Registry.Build. For every step, all of its dependencies appear earlier in
// the order.
type Graph struct {
	ordered []Step
	index   map[string]Step
}

func newGraph(ordered []Step) *Graph {
	index := make(map[string]Step, len(ordered))
	for _, step := range ordered {
		index[step.ID().String()] = step
	}
	return &Graph{ordered: ordered, index: index}
}

// Len returns the number of steps.
func (g *Graph) Len() int { return len(g.ordered) }

// Steps returns the steps in execution order.
func (g *Graph) Steps() []Step {
	steps := make([]Step, len(g.ordered))
	copy(steps, g.ordered)
	return steps
}

// Get retrieves a step by ID.
func (g *Graph) Get(id StepID) (Step, bool) {
	step, ok := g.index[id.String()]
	return step, ok
}

// LockNames returns the distinct resource lock names declared by steps.
func (g *Graph) LockNames() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, step := range g.ordered {
		if name := LockNameOf(step); name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
