package object

import (
	"fmt"
)

// Edge is one child -> parent link of the commit ancestry graph.
type Edge struct {
	Child  Hash
	Parent Hash
}

// AncestryEdges walks the commit graph from start and returns one edge
// per (commit, parent) pair of every commit it expands. The order is a
// depth-first pre-order: a parent that has not been seen is expanded
// right after its edge is emitted, before the next sibling parent. Each
// commit is expanded at most once, so cyclic histories terminate.
func (s *Store) AncestryEdges(start Hash) ([]Edge, error) {
	return s.WalkAncestry(start, make(map[Hash]struct{}))
}

type ancestryFrame struct {
	commit  Hash
	parents []Hash
	next    int
}

// WalkAncestry is AncestryEdges with a caller-owned visited set. Commits
// already in seen are not expanded, and every commit expanded by this
// call is added to it.
func (s *Store) WalkAncestry(start Hash, seen map[Hash]struct{}) ([]Edge, error) {
	var edges []Edge
	var stack []ancestryFrame

	expand := func(h Hash) error {
		seen[h] = struct{}{}
		commit, err := s.ReadCommit(h)
		if err != nil {
			return fmt.Errorf("ancestry walk %s: %w", h, err)
		}
		stack = append(stack, ancestryFrame{commit: h, parents: commit.Parents()})
		return nil
	}

	if _, ok := seen[start]; ok {
		return nil, nil
	}
	if err := expand(start); err != nil {
		return nil, err
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.parents) {
			stack = stack[:len(stack)-1]
			continue
		}
		parent := top.parents[top.next]
		top.next++
		edges = append(edges, Edge{Child: top.commit, Parent: parent})

		if _, ok := seen[parent]; ok {
			continue
		}
		if err := expand(parent); err != nil {
			return nil, err
		}
	}
	return edges, nil
}
