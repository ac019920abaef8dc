package experiment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssign_Deterministic(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.Register("headline", "control", "variant_a", "variant_b"))

	first, err := r.Assign("headline", "visitor-42")
	assert.NoError(t, err)

	for i := 0; i < 100; i++ {
		again, err := r.Assign("headline", "visitor-42")
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAssign_SameVisitorDifferentExperiments(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.Register("headline", "control", "variant_a"))
	assert.NoError(t, r.Register("cta", "control", "variant_a"))

	// Assignment mixes the experiment name into the hash, so two
	// experiments with identical variant lists bucket independently.
	differs := false
	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("visitor-%d", i)
		a, _ := r.Assign("headline", id)
		b, _ := r.Assign("cta", id)
		if a != b {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}

func TestAssign_CoversAllVariants(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.Register("headline", "control", "variant_a", "variant_b"))

	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		v, err := r.Assign("headline", fmt.Sprintf("visitor-%d", i))
		assert.NoError(t, err)
		seen[v] = true
	}
	assert.Len(t, seen, 3)
}

func TestRegister(t *testing.T) {
	r := NewRegistry()

	assert.Error(t, r.Register("empty"))
	assert.NoError(t, r.Register("headline", "control"))
	assert.Error(t, r.Register("headline", "control"))
}

func TestAssign_UnknownExperiment(t *testing.T) {
	r := NewRegistry()
	_, err := r.Assign("missing", "visitor-1")
	assert.Error(t, err)
}
