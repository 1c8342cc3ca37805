package ordering

import (
	"slices"
	"sort"
)

// Stage is a group of directive types sharing a stage number.
type Stage struct {
	Number      int
	Description string
	// Types are in dependency order.
	Types []string
}

// Plan is the resolved application order for a set of directive types.
type Plan struct {
	// Order lists every present type, prerequisites first.
	Order []string
	// Stages groups Order by stage number, ascending.
	Stages []Stage
	// Graph maps each present type to its present prerequisites.
	Graph map[string][]string
}

// Index returns the position of typ in Order, or -1.
func (p *Plan) Index(typ string) int {
	return slices.Index(p.Order, typ)
}

// Resolver computes plans against a fixed table.
type Resolver struct {
	table *Table
}

// NewResolver creates a resolver reading from table.
func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

// Table returns the table the resolver reads from.
func (r *Resolver) Table() *Table {
	return r.table
}

// DetermineOrder resolves the order of the present directive types.
//
// Only edges between present types are considered: a prerequisite that is
// not present counts as satisfied. present is treated as a set; duplicates
// and input order do not affect the result.
func (r *Resolver) DetermineOrder(present []string) (*Plan, error) {
	want := make(map[string]struct{}, len(present))

	for _, typ := range present {
		if !r.table.Contains(typ) {
			return nil, &UnknownTypeError{Type: typ}
		}

		want[typ] = struct{}{}
	}

	// Nodes in table order.
	var nodes []string

	for _, d := range r.table.entries {
		if _, ok := want[d.Type]; ok {
			nodes = append(nodes, d.Type)
		}
	}

	graph := r.restrictedGraph(nodes, want)

	if cycle := findCycle(nodes, graph); cycle != nil {
		return nil, &CircularDependencyError{Cycle: cycle}
	}

	order := topoSort(nodes, graph)

	return &Plan{
		Order:  order,
		Stages: r.groupStages(order),
		Graph:  graph,
	}, nil
}

// restrictedGraph keeps, for each node, the prerequisites that are present.
func (r *Resolver) restrictedGraph(nodes []string, want map[string]struct{}) map[string][]string {
	graph := make(map[string][]string, len(nodes))

	for _, n := range nodes {
		d := r.table.entries[r.table.index[n]]
		deps := []string{}

		for _, dep := range d.DependsOn {
			if _, ok := want[dep]; !ok {
				continue
			}

			if !slices.Contains(deps, dep) {
				deps = append(deps, dep)
			}
		}

		graph[n] = deps
	}

	return graph
}

type visitState int

const (
	unvisited visitState = iota
	onStack
	done
)

// findCycle runs a depth-first search with a recursion stack and returns
// the first cycle found, closed by repeating its first element.
func findCycle(nodes []string, graph map[string][]string) []string {
	state := make(map[string]visitState, len(nodes))

	var stack []string

	var visit func(n string) []string

	visit = func(n string) []string {
		state[n] = onStack
		stack = append(stack, n)

		for _, dep := range graph[n] {
			switch state[dep] {
			case onStack:
				i := slices.Index(stack, dep)
				return append(slices.Clone(stack[i:]), dep)
			case unvisited:
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			case done:
			}
		}

		stack = stack[:len(stack)-1]
		state[n] = done

		return nil
	}

	for _, n := range nodes {
		if state[n] != unvisited {
			continue
		}

		if cycle := visit(n); cycle != nil {
			return cycle
		}
	}

	return nil
}

// topoSort returns nodes in post-order: every prerequisite before its
// dependents. graph must be acyclic.
func topoSort(nodes []string, graph map[string][]string) []string {
	visited := make(map[string]bool, len(nodes))
	order := make([]string, 0, len(nodes))

	var visit func(n string)

	visit = func(n string) {
		if visited[n] {
			return
		}

		visited[n] = true

		for _, dep := range graph[n] {
			visit(dep)
		}

		order = append(order, n)
	}

	for _, n := range nodes {
		visit(n)
	}

	return order
}

// groupStages buckets order by stage number, keeping order within a stage.
func (r *Resolver) groupStages(order []string) []Stage {
	byNumber := map[int]*Stage{}

	var numbers []int

	for _, typ := range order {
		d := r.table.entries[r.table.index[typ]]

		st, ok := byNumber[d.Stage]
		if !ok {
			st = &Stage{Number: d.Stage, Description: d.Description}
			byNumber[d.Stage] = st
			numbers = append(numbers, d.Stage)
		}

		st.Types = append(st.Types, typ)
	}

	sort.Ints(numbers)

	stages := make([]Stage, 0, len(numbers))
	for _, n := range numbers {
		stages = append(stages, *byNumber[n])
	}

	return stages
}
