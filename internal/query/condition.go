package query

import (
	"strconv"
	"strings"
)

// Args collects bound values in order and hands out positional placeholders.
type Args struct {
	values []interface{}
}

// Bind appends value and returns its placeholder ($1, $2, ...).
func (a *Args) Bind(value interface{}) string {
	a.values = append(a.values, value)
	return "$" + strconv.Itoa(len(a.values))
}

// Values returns the bound values in placeholder order.
func (a *Args) Values() []interface{} {
	if a.values == nil {
		return []interface{}{}
	}
	return a.values
}

// Condition is a WHERE fragment that carries its own values.
// SQL renders the fragment, binding each value through args so that
// placeholders are numbered by position of first use.
type Condition interface {
	SQL(args *Args) string
}

type conditionFunc func(args *Args) string

func (f conditionFunc) SQL(args *Args) string {
	return f(args)
}

// Eq creates an equality condition: column = value.
func Eq(column string, value interface{}) Condition {
	return compare(column, "=", value)
}

// Gte creates a condition: column >= value.
func Gte(column string, value interface{}) Condition {
	return compare(column, ">=", value)
}

// Lte creates a condition: column <= value.
func Lte(column string, value interface{}) Condition {
	return compare(column, "<=", value)
}

func compare(column, op string, value interface{}) Condition {
	return conditionFunc(func(args *Args) string {
		return column + " " + op + " " + args.Bind(value)
	})
}

// Raw creates a condition without bound values.
func Raw(fragment string) Condition {
	return conditionFunc(func(*Args) string {
		return fragment
	})
}

// ILikeAny matches pattern against any of the expressions. The pattern is
// bound once and reused by every expression.
func ILikeAny(pattern string, exprs ...string) Condition {
	return conditionFunc(func(args *Args) string {
		placeholder := args.Bind(pattern)
		parts := make([]string, 0, len(exprs))
		for _, expr := range exprs {
			parts = append(parts, expr+" ILIKE "+placeholder)
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	})
}

// Contains wraps text into a substring pattern for ILIKE.
func Contains(text string) string {
	return "%" + text + "%"
}

// Where renders the conditions joined with AND. It returns an empty string
// when there is nothing to filter on.
func Where(conditions []Condition, args *Args) string {
	if len(conditions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		parts = append(parts, cond.SQL(args))
	}
	return "WHERE " + strings.Join(parts, " AND ")
}
