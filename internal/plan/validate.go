package plan

// validate.go — structural checks over the planned dependency graph.
//
// A violating edge here is a planner defect, not user error: Build refuses
// to emit a plan whose edges break the layer rules or form a cycle.

import "fmt"

// allowedDeps encodes which layers a unit of a given layer may reference.
var allowedDeps = map[Layer]map[Layer]bool{
	LayerApp:          {},
	LayerPresentation: {LayerDomain: true, LayerBusiness: true},
	LayerBusiness:     {LayerDomain: true},
	LayerData:         {LayerDomain: true},
	LayerDomain:       {},
	LayerTest: {
		LayerApp: true, LayerPresentation: true, LayerBusiness: true,
		LayerDomain: true, LayerData: true,
	},
}

// validateEdges checks that every edge joins known units, respects the
// layer rules, and that the edge set as a whole is acyclic.
func validateEdges(units []Unit, edges []Edge) error {
	layer := make(map[string]Layer, len(units))
	for _, u := range units {
		layer[u.Name] = u.Layer
	}

	for _, e := range edges {
		from, ok := layer[e.From]
		if !ok {
			return fmt.Errorf("edge from unknown unit %q", e.From)
		}
		to, ok := layer[e.To]
		if !ok {
			return fmt.Errorf("edge to unknown unit %q", e.To)
		}
		if !allowedDeps[from][to] {
			return fmt.Errorf("edge %s -> %s violates layer rules (%s may not reference %s)",
				e.From, e.To, from, to)
		}
	}
	return validateAcyclic(units, edges)
}

// validateAcyclic proves the edge set has no cycles using Kahn's algorithm:
// if every unit can be peeled off in topological order, no cycle exists.
func validateAcyclic(units []Unit, edges []Edge) error {
	indeg := make(map[string]int, len(units))
	out := make(map[string][]string, len(units))
	for _, u := range units {
		indeg[u.Name] = 0
	}
	for _, e := range edges {
		out[e.From] = append(out[e.From], e.To)
		indeg[e.To]++
	}

	var ready []string
	for _, u := range units {
		if indeg[u.Name] == 0 {
			ready = append(ready, u.Name)
		}
	}
	seen := 0
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		seen++
		for _, m := range out[n] {
			indeg[m]--
			if indeg[m] == 0 {
				ready = append(ready, m)
			}
		}
	}
	if seen != len(units) {
		return fmt.Errorf("dependency cycle detected among %d units", len(units)-seen)
	}
	return nil
}
