// Package committer collects Spanner mutations from several repositories and applies
// them in one commit.
//
// Repositories never write on their own: they return mutations, the caller adds them to
// a CommitPlan together with the analytics outbox rows for the same change, and the
// Committer applies the plan atomically.
//
//	plan := committer.NewPlan()
//	plan.Add(cartModel.DeleteAllMut(userID))
//	plan.Add(outboxRepo.InsertMut(event))
//	return c.Apply(ctx, plan)
//
// When mutations depend on what is currently stored, use ApplyWithReadWriteTransaction
// and buffer the plan inside the transaction with Buffer.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan is an ordered set of mutations that must land together.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Buffer stages the plan inside an open read-write transaction.
func (cp *CommitPlan) Buffer(txn *spanner.ReadWriteTransaction) error {
	if cp.IsEmpty() {
		return nil
	}
	return txn.BufferWrite(cp.mutations)
}

// Committer applies CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ApplyWithReadWriteTransaction runs fn in a read-write transaction. fn reads what it
// needs and buffers its plan; errors returned by fn keep their identity.
func (c *Committer) ApplyWithReadWriteTransaction(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	if _, err := c.client.ReadWriteTransaction(ctx, fn); err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
