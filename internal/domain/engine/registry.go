package engine

// Registry accumulates declared steps before a run. Registration order is
// preserved: it breaks ties when the graph is linearized, which keeps runs
// deterministic.
//
// Duplicate names are rejected immediately; dependency references are
// validated in Build, so steps may be registered in any order.
type Registry struct {
	steps map[string]Step
	order []Step
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{steps: make(map[string]Step)}
}

// Len returns the number of registered steps.
func (r *Registry) Len() int { return len(r.order) }

// Register adds a step. Returns a ConfigError wrapping ErrDuplicateName if
// the name is taken.
func (r *Registry) Register(step Step) error {
	id := step.ID().String()
	if _, exists := r.steps[id]; exists {
		return NewDuplicateNameError(step.ID())
	}
	r.steps[id] = step
	r.order = append(r.order, step)
	return nil
}

// Build validates the graph and returns an execution-ready ordering.
// It fails with ErrUnknownDependency if a step references an unregistered
// step, and with ErrCyclicDependency (naming the cycle members) if the graph
// is not acyclic.
func (r *Registry) Build() (*Graph, error) {
	for _, step := range r.order {
		for _, dep := range step.DependsOn() {
			if _, ok := r.steps[dep.String()]; !ok {
				return nil, NewUnknownDependencyError(step.ID(), dep)
			}
		}
	}

	ordered, err := r.sort()
	if err != nil {
		return nil, err
	}

	return newGraph(ordered), nil
}

// sort runs Kahn's algorithm. The ready queue is kept in registration order,
// so any valid linearization is deterministic for a given registration
// sequence.
func (r *Registry) sort() ([]Step, error) {
	regIndex := make(map[string]int, len(r.order))
	for i, step := range r.order {
		regIndex[step.ID().String()] = i
	}

	inDegree := make(map[string]int, len(r.order))
	dependents := make(map[string][]string)
	for _, step := range r.order {
		id := step.ID().String()
		inDegree[id] = len(step.DependsOn())
		for _, dep := range step.DependsOn() {
			dependents[dep.String()] = append(dependents[dep.String()], id)
		}
	}

	// Ready steps, maintained sorted by registration index.
	ready := make([]string, 0, len(r.order))
	for _, step := range r.order {
		if inDegree[step.ID().String()] == 0 {
			ready = append(ready, step.ID().String())
		}
	}

	sorted := make([]Step, 0, len(r.order))
	for len(ready) > 0 {
		// Pick the earliest-registered ready step.
		pick := 0
		for i := 1; i < len(ready); i++ {
			if regIndex[ready[i]] < regIndex[ready[pick]] {
				pick = i
			}
		}
		id := ready[pick]
		ready = append(ready[:pick], ready[pick+1:]...)

		sorted = append(sorted, r.steps[id])

		for _, dependent := range dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(sorted) != len(r.order) {
		emitted := make(map[string]bool, len(sorted))
		for _, step := range sorted {
			emitted[step.ID().String()] = true
		}
		remaining := make(map[string]bool, len(r.order)-len(sorted))
		for _, step := range r.order {
			if !emitted[step.ID().String()] {
				remaining[step.ID().String()] = true
			}
		}

		// Steps merely downstream of a cycle also fail to emit. Peel them
		// off, innermost first: a true cycle member always has another
		// remaining step depending on it, a downstream straggler eventually
		// has none.
		for changed := true; changed; {
			changed = false
			for id := range remaining {
				depended := false
				for _, dependent := range dependents[id] {
					if remaining[dependent] {
						depended = true
						break
					}
				}
				if !depended {
					delete(remaining, id)
					changed = true
				}
			}
		}

		members := make([]string, 0, len(remaining))
		for _, step := range r.order {
			if remaining[step.ID().String()] {
				members = append(members, step.ID().String())
			}
		}
		return nil, NewCyclicDependencyError(members)
	}

	return sorted, nil
}
