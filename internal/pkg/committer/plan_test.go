package committer

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		plan := NewPlan()
		assert.True(t, plan.IsEmpty())
		assert.Equal(t, 0, plan.Count())
	})

	t.Run("ignores nil mutations", func(t *testing.T) {
		plan := NewPlan()
		plan.Add(nil)
		plan.AddMultiple([]*spanner.Mutation{nil, nil})
		assert.True(t, plan.IsEmpty())
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		first := spanner.Delete("cart_items", spanner.Key{"u1", "a"})
		second := spanner.Delete("cart_items", spanner.Key{"u1", "b"})

		plan := NewPlan()
		plan.Add(first)
		plan.AddMultiple([]*spanner.Mutation{second})

		assert.Equal(t, 2, plan.Count())
		assert.Same(t, first, plan.Mutations()[0])
		assert.Same(t, second, plan.Mutations()[1])
	})

	t.Run("buffering an empty plan is a no-op", func(t *testing.T) {
		assert.NoError(t, NewPlan().Buffer(nil))
	})
}
