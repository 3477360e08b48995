package dto

import (
	"fmt"
	"maps"
	"strings"
)

// Operators understood by Filter. Bookings are filtered by status and mechanic, by a
// scheduled_at window, and by whether a mechanic has been assigned yet.
const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorGreaterEq = "greater_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var filterComparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorGreaterEq: ">=",
	FilterOperatorLessEq:    "<=",
}

// Filter is a single named-parameter condition for sqlx. ArgName defaults to Field, so two
// conditions on the same column (a from/to window) need distinct ArgNames.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like greater_eq less_eq is_null"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause renders the condition and its bound arguments. Unknown operators render
// nothing, which FilterGroup drops.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	column, arg := f.column(), f.argName()

	if cmp, ok := filterComparisons[f.Operator]; ok {
		return fmt.Sprintf("%s %s :%s", column, cmp, arg), map[string]any{arg: f.Value}
	}

	switch f.Operator {
	case FilterOperatorLike:
		// case-insensitive substring, used for customer email search
		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, arg), map[string]any{arg: fmt.Sprintf("%%%v%%", f.Value)}
	case FilterIsNull:
		return column + " IS NULL", map[string]any{}
	default:
		return "", map[string]any{}
	}
}

// FilterGroup joins Filter and nested FilterGroup values with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch condition := item.(type) {
		case Filter:
			where, arg = condition.GetWhereClause()
		case FilterGroup:
			where, arg = condition.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	return "(" + strings.Join(clauses, " "+f.Operator+" ") + ")", args
}
