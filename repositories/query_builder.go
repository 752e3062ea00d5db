package repositories

import (
	"strconv"
	"strings"
)

// QueryBuilder assembles a single SQL statement incrementally. The first
// AddFilter opens the WHERE clause, subsequent calls join with AND; GROUP BY
// and ORDER BY behave the same way with comma separators. Fragments use ?
// placeholders which are rewritten to positional $n parameters in the order
// the fragments are appended, so the bind list returned by Args lines up
// with the statement text.
type QueryBuilder struct {
	parts         []string
	args          []interface{}
	filtersActive bool
	groupByActive bool
	orderByActive bool
}

func NewQueryBuilder(selectClause string, args ...interface{}) *QueryBuilder {
	qb := &QueryBuilder{}
	qb.parts = append(qb.parts, qb.bind(selectClause, args))
	return qb
}

func (qb *QueryBuilder) AddFilter(predicate string, args ...interface{}) {
	if qb.filtersActive {
		qb.parts = append(qb.parts, " AND ")
	} else {
		qb.parts = append(qb.parts, " WHERE ")
		qb.filtersActive = true
	}
	qb.parts = append(qb.parts, qb.bind(predicate, args))
}

func (qb *QueryBuilder) AddGroupBy(columns string) {
	if qb.groupByActive {
		qb.parts = append(qb.parts, " , ")
	} else {
		qb.parts = append(qb.parts, " GROUP BY ")
		qb.groupByActive = true
	}
	qb.parts = append(qb.parts, columns)
}

func (qb *QueryBuilder) AddOrderBy(columns string) {
	if qb.orderByActive {
		qb.parts = append(qb.parts, " , ")
	} else {
		qb.parts = append(qb.parts, " ORDER BY ")
		qb.orderByActive = true
	}
	qb.parts = append(qb.parts, columns)
}

// AddPagination appends LIMIT/OFFSET. Page is 0-indexed, so the offset is
// page*limit.
func (qb *QueryBuilder) AddPagination(page, limit int) {
	qb.parts = append(qb.parts, qb.bind(" LIMIT ? OFFSET ?", []interface{}{limit, page * limit}))
}

// Build returns the final statement text, always terminated with a
// semicolon.
func (qb *QueryBuilder) Build() string {
	return strings.Join(qb.parts, "") + ";"
}

// Args returns the bind parameters in positional order.
func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}

// bind rewrites each ? in the fragment to the next positional placeholder
// and records its argument. The number of ? runes must match len(args).
func (qb *QueryBuilder) bind(fragment string, args []interface{}) string {
	if len(args) == 0 {
		return fragment
	}
	var sb strings.Builder
	next := 0
	for _, r := range fragment {
		if r == '?' && next < len(args) {
			qb.args = append(qb.args, args[next])
			next++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(len(qb.args)))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
