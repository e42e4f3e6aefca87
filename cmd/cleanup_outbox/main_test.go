package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpired(t *testing.T) {
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	count := expired(cutoff).Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM outbox_events WHERE status = @p0 AND processed_at < @p1", count.SQL)

	del := expired(cutoff).Delete()
	assert.Equal(t, "DELETE FROM outbox_events WHERE status = @p0 AND processed_at < @p1", del.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "processed", "p1": cutoff}, del.Params)
}
