package query

import "fmt"

// Condition is one WHERE predicate.
// Implementations use Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the fragment and its parameters. paramIndex numbers the
	// generated names (@p0, @p1, ...).
	SQL(paramIndex int) (string, map[string]interface{})
}

type cmpCondition struct {
	field string
	op    string
	value interface{}
}

// Eq matches rows where field equals value.
// Example: Eq("user_id", "u1") generates "user_id = @p0"
func Eq(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "=", value: value}
}

// Lt matches rows where field is strictly less than value.
// Example: Lt("processed_at", cutoff) generates "processed_at < @p0"
func Lt(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "<", value: value}
}

func (c *cmpCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, paramName)
	return sql, map[string]interface{}{paramName: c.value}
}
