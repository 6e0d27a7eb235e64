package query

import (
	"strings"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

// ParseDirection returns Desc for "desc" (any case) and Asc otherwise.
func ParseDirection(dir string) Direction {
	if strings.EqualFold(strings.TrimSpace(dir), "desc") {
		return Desc
	}
	return Asc
}

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// Statement is a SQL text with its positional arguments.
type Statement struct {
	SQL  string
	Args []interface{}
}

type orderTerm struct {
	column    string
	direction Direction
}

// Builder constructs PostgreSQL SELECT statements. Placeholders are
// numbered while building, so callers never track parameter indexes.
// Every method returns a new Builder.
type Builder struct {
	table      string
	selectCols []string
	joins      []string
	conditions []Condition
	orderBy    []orderTerm
	limitVal   *int64
	offsetVal  *int64
}

// From creates a new Builder for the specified table expression.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select specifies the columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Join adds a join clause, e.g. "INNER JOIN suppliers s ON s.id = p.supplier_id".
func (b *Builder) Join(clause string) *Builder {
	nb := b.clone()
	nb.joins = append(nb.joins, clause)
	return nb
}

// Where adds conditions. Multiple conditions are combined with AND.
func (b *Builder) Where(conditions ...Condition) *Builder {
	nb := b.clone()
	nb.conditions = append(nb.conditions, conditions...)
	return nb
}

// OrderBy appends a sort term. Earlier terms take precedence; a column
// that is already sorted on is not added again.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	for _, term := range nb.orderBy {
		if term.column == column {
			return nb
		}
	}
	nb.orderBy = append(nb.orderBy, orderTerm{column: column, direction: direction})
	return nb
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limitVal = &limit
	return nb
}

// Offset sets the number of rows to skip.
func (b *Builder) Offset(offset int64) *Builder {
	nb := b.clone()
	nb.offsetVal = &offset
	return nb
}

// Paginate applies the page's limit and offset.
func (b *Builder) Paginate(p Page) *Builder {
	return b.Limit(int64(p.Size)).Offset(int64(p.Offset()))
}

// Count returns a builder for COUNT(*) over the same FROM, joins and
// conditions, without ordering or pagination.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.selectCols = []string{"COUNT(*)::int AS total"}
	nb.orderBy = nil
	nb.limitVal = nil
	nb.offsetVal = nil
	return nb
}

// Build renders the statement.
func (b *Builder) Build() Statement {
	var sql strings.Builder
	args := &Args{}

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	for _, join := range b.joins {
		sql.WriteString(" ")
		sql.WriteString(join)
	}

	if where := Where(b.conditions, args); where != "" {
		sql.WriteString(" ")
		sql.WriteString(where)
	}

	if len(b.orderBy) > 0 {
		terms := make([]string, 0, len(b.orderBy))
		for _, term := range b.orderBy {
			terms = append(terms, term.column+" "+term.direction.String())
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(terms, ", "))
	}

	if b.limitVal != nil {
		sql.WriteString(" LIMIT ")
		sql.WriteString(args.Bind(*b.limitVal))
	}

	if b.offsetVal != nil {
		sql.WriteString(" OFFSET ")
		sql.WriteString(args.Bind(*b.offsetVal))
	}

	return Statement{SQL: sql.String(), Args: args.Values()}
}

func (b *Builder) clone() *Builder {
	nb := &Builder{
		table:      b.table,
		selectCols: append([]string(nil), b.selectCols...),
		joins:      append([]string(nil), b.joins...),
		conditions: append([]Condition(nil), b.conditions...),
		orderBy:    append([]orderTerm(nil), b.orderBy...),
	}
	if b.limitVal != nil {
		v := *b.limitVal
		nb.limitVal = &v
	}
	if b.offsetVal != nil {
		v := *b.offsetVal
		nb.offsetVal = &v
	}
	return nb
}
