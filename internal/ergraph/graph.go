// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ergraph builds the foreign-key adjacency graph behind the ER
diagram's reachability trimming (spec.md §4.4) and coordinates the
prefetch of the table details an export needs.
*/
package ergraph

import "github.com/taibuivan/pgview/internal/domain"

// Adjacency maps a table's qualified name ("schema.name") to the qualified
// names of every table one FK hop away, in either direction.
type Adjacency map[string][]string

// BuildAdjacency constructs a bidirectional FK adjacency map from a set of
// tables: each foreign key adds an edge both from the referencing table to
// the referenced table and back (spec.md §4.4's "bidirectional FK adjacency
// map"). There is no teacher precedent for graph construction; this is the
// plainest possible expression (one pass appending both edge directions),
// noted in DESIGN.md as a judgment call.
func BuildAdjacency(tables []domain.Table) Adjacency {
	adj := make(Adjacency, len(tables))

	for _, t := range tables {
		name := t.QualifiedName()
		if _, ok := adj[name]; !ok {
			adj[name] = nil
		}
		for _, fk := range t.ForeignKeys {
			target := fk.ReferencedSchema + "." + fk.ReferencedTable
			adj[name] = appendUnique(adj[name], target)
			adj[target] = appendUnique(adj[target], name)
		}
	}

	return adj
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

// Reachable performs a breadth-first traversal from seed over adj and
// returns every table reachable from it, including seed itself. If seed is
// absent from adj the traversal returns an empty slice (spec.md §4.4:
// "if the seed is absent, the traversal returns empty").
func Reachable(adj Adjacency, seed string) []string {
	if _, ok := adj[seed]; !ok {
		return nil
	}

	visited := map[string]bool{seed: true}
	queue := []string{seed}
	order := []string{seed}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range adj[current] {
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			order = append(order, neighbor)
			queue = append(queue, neighbor)
		}
	}

	return order
}
