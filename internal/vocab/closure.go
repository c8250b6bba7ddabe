// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vocab

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCycle reports a cycle in the requires relation. The relation must be
// acyclic; a cycle is a structural fault in the data files, not a per-request
// condition.
var ErrCycle = errors.New("cycle in requires relation")

// visit marks for the closure walk.
type mark uint8

const (
	white mark = iota // unvisited
	gray              // on the current walk
	black             // emitted
)

// Expand returns every target plus every symbol transitively required by a
// target, each exactly once, in an order where a symbol appears strictly
// after all of its requires. Targets are processed in the given order and
// requires edges in their declared order, so the result is deterministic.
//
// A cycle in the requires relation returns an error wrapping ErrCycle with
// the offending path.
func (s *Store) Expand(targets []string) ([]string, error) {
	marks := make(map[string]mark)
	order := make([]string, 0, len(targets))
	var path []string

	var visit func(sym string) error
	visit = func(sym string) error {
		switch marks[sym] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("%w: %s -> %s", ErrCycle, strings.Join(path, " -> "), sym)
		}

		marks[sym] = gray
		path = append(path, sym)
		for _, r := range s.Requires(sym) {
			if err := visit(r); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		marks[sym] = black
		order = append(order, sym)
		return nil
	}

	for _, t := range targets {
		if err := visit(t); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// PrereqOnly returns the sorted set of symbols pulled in only because a
// target required them: Expand(targets) minus the targets themselves.
func (s *Store) PrereqOnly(targets []string) ([]string, error) {
	closure, err := s.Expand(targets)
	if err != nil {
		return nil, err
	}

	targetSet := make(map[string]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}

	var prereqs []string
	for _, sym := range closure {
		if !targetSet[sym] {
			prereqs = append(prereqs, sym)
		}
	}
	sort.Strings(prereqs)
	return prereqs, nil
}
