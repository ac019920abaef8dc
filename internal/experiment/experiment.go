// Package experiment is a small in-memory A/B bucketing helper for
// headline and CTA copy. Assignment is a pure function of the visitor
// id and the experiment name, so the same visitor always sees the same
// variant without any stored state.
package experiment

import (
	"fmt"
	"hash/fnv"
)

type Experiment struct {
	Name     string
	Variants []string
}

type Registry struct {
	experiments map[string]Experiment
}

func NewRegistry() *Registry {
	return &Registry{experiments: make(map[string]Experiment)}
}

func (r *Registry) Register(name string, variants ...string) error {
	if len(variants) == 0 {
		return fmt.Errorf("experiment %q needs at least one variant", name)
	}
	if _, exists := r.experiments[name]; exists {
		return fmt.Errorf("experiment %q already registered", name)
	}
	r.experiments[name] = Experiment{Name: name, Variants: variants}
	return nil
}

// Assign returns the variant for a visitor, deterministically.
func (r *Registry) Assign(name, visitorID string) (string, error) {
	exp, ok := r.experiments[name]
	if !ok {
		return "", fmt.Errorf("unknown experiment %q", name)
	}

	h := fnv.New32a()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(visitorID))

	return exp.Variants[h.Sum32()%uint32(len(exp.Variants))], nil
}
