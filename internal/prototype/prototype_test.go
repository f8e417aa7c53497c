package prototype

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawRoot(t *rapid.T) *Root {
	v := rapid.Int().Draw(t, "primitive")
	sec := rapid.Int64Range(0, 4102444800).Draw(t, "stamp")
	label := rapid.String().Draw(t, "label")
	return NewRoot(v, NewComponent(time.Unix(sec, 0).UTC(), label))
}

func TestNewRoot_BackRefPointsToRoot(t *testing.T) {
	r := NewRoot(1, NewComponent(time.Now(), "now"))

	require.NotNil(t, r.Ref)
	require.Same(t, r, r.Ref.Root)
}

// TestClone_ReferenceScenario mirrors the console walkthrough: 245 and a
// timestamp in, true/false/true/false out.
func TestClone_ReferenceScenario(t *testing.T) {
	r := NewRoot(245, NewComponent(time.Now(), "created"))

	c := r.Clone()

	require.Equal(t, 245, c.Primitive)
	require.NotSame(t, r.Component, c.Component)
	require.Same(t, c, c.Ref.Root)
	require.NotSame(t, r, c.Ref.Root)

	obs := Observe(r, c)
	require.Equal(t, Observation{
		PrimitiveEqual:    true,
		ComponentShared:   false,
		BackRefToClone:    true,
		BackRefToOriginal: false,
	}, obs)
	require.True(t, obs.OK())
}

func TestClone_ComponentIsShallowCopy(t *testing.T) {
	stamp := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	r := NewRoot(7, NewComponent(stamp, "original"))

	c := r.Clone()
	require.Equal(t, *r.Component, *c.Component)

	c.Component.Label = "changed"
	require.Equal(t, "original", r.Component.Label, "mutating the clone's component must not reach the source")
}

func TestClone_NilComponent(t *testing.T) {
	r := NewRoot(3, nil)

	c := r.Clone()
	require.Nil(t, c.Component)
	require.Same(t, c, c.Ref.Root)
}

func TestClone_NewIdentity(t *testing.T) {
	r := NewRoot(3, nil)
	c := r.Clone()

	require.NotEqual(t, r.ID, c.ID)
	require.NotSame(t, r.Ref, c.Ref)
	require.Same(t, r, r.Ref.Root, "cloning must not rewire the source")
}

func TestObserve_DetectsBrokenClone(t *testing.T) {
	r := NewRoot(10, NewComponent(time.Now(), ""))

	// Naive struct copy: component and back-reference both alias the source.
	bad := *r
	obs := Observe(r, &bad)

	require.True(t, obs.PrimitiveEqual)
	require.True(t, obs.ComponentShared)
	require.False(t, obs.BackRefToClone)
	require.True(t, obs.BackRefToOriginal)
	require.False(t, obs.OK())
}

func TestObserve_NilRef(t *testing.T) {
	r := NewRoot(1, nil)
	obs := Observe(r, &Root{Primitive: 1})

	require.False(t, obs.BackRefToClone)
	require.False(t, obs.BackRefToOriginal)
	require.False(t, obs.OK())
}

// ============================================================================
// Property-Based Tests
// ============================================================================

func TestProperty_PrimitiveCarriedOver(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Int().Draw(t, "v")
		if got := NewRoot(v, NewComponent(time.Now(), "")).Clone().Primitive; got != v {
			t.Fatalf("clone primitive = %d, want %d", got, v)
		}
	})
}

func TestProperty_ComponentNotShared(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := drawRoot(t)
		c := r.Clone()
		if c.Component == r.Component {
			t.Fatalf("clone shares component with source")
		}
		if *c.Component != *r.Component {
			t.Fatalf("component fields not carried over: %+v vs %+v", *c.Component, *r.Component)
		}
	})
}

func TestProperty_BackRefTargetsClone(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := drawRoot(t)
		c := r.Clone()
		if c.Ref.Root != c {
			t.Fatalf("clone back-reference does not point at the clone")
		}
		if c.Ref.Root == r {
			t.Fatalf("clone back-reference points at the source")
		}
	})
}

func TestProperty_RepeatedClonesAreIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := drawRoot(t)
		n := rapid.IntRange(2, 8).Draw(t, "n")

		clones := make([]*Root, n)
		for i := range clones {
			clones[i] = r.Clone()
			if !Observe(r, clones[i]).OK() {
				t.Fatalf("clone %d failed observation: %+v", i, Observe(r, clones[i]))
			}
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if clones[i] == clones[j] || clones[i].Component == clones[j].Component {
					t.Fatalf("clones %d and %d alias each other", i, j)
				}
			}
		}
	})
}

func TestProperty_CloneOfCloneStillCorrect(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := drawRoot(t)
		c1 := r.Clone()
		c2 := c1.Clone()
		if !Observe(c1, c2).OK() {
			t.Fatalf("second-generation clone failed: %+v", Observe(c1, c2))
		}
		if c2.Ref.Root == r {
			t.Fatalf("second-generation clone points at the first source")
		}
	})
}
