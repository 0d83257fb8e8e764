package pgxkit

import (
	"reflect"
	"slices"
	"strings"
)

// Clause values are immutable once constructed: the With* methods operate on
// value receivers and return modified copies, and the constructors apply the
// documented defaults. A SQL-emitting consumer must handle every member of
// the operator enums; an unmatched member is a programming error there, not
// a case to ignore.

// JoinClause describes one join in a query.
type JoinClause struct {
	Table    string
	On       string
	JoinType JoinType
	Alias    string
}

// NewJoinClause returns an INNER join with no alias.
func NewJoinClause(table, on string) JoinClause {
	return JoinClause{Table: table, On: on, JoinType: JoinInner}
}

// WithType returns a copy using the given join type.
func (c JoinClause) WithType(t JoinType) JoinClause {
	c.JoinType = t
	return c
}

// WithAlias returns a copy using the given table alias.
func (c JoinClause) WithAlias(alias string) JoinClause {
	c.Alias = alias
	return c
}

// WhereClause describes one predicate in a query.
type WhereClause struct {
	Column    string
	Operator  ComparisonOperator
	Value     any
	LogicalOp LogicalOperator
}

// NewWhereClause returns a predicate combined with AND.
func NewWhereClause(column string, operator ComparisonOperator, value any) WhereClause {
	return WhereClause{Column: column, Operator: operator, Value: value, LogicalOp: LogicalAnd}
}

// WithLogicalOp returns a copy combined with the given logical operator.
func (c WhereClause) WithLogicalOp(op LogicalOperator) WhereClause {
	c.LogicalOp = op
	return c
}

// OrderByClause describes one ordering term in a query.
type OrderByClause struct {
	Column    string
	Ascending bool
}

// NewOrderByClause returns an ascending ordering term.
func NewOrderByClause(column string) OrderByClause {
	return OrderByClause{Column: column, Ascending: true}
}

// Desc returns a descending copy.
func (c OrderByClause) Desc() OrderByClause {
	c.Ascending = false
	return c
}

// Asc returns an ascending copy.
func (c OrderByClause) Asc() OrderByClause {
	c.Ascending = true
	return c
}

// ForeignKeyRef points at a model field using dot notation.
type ForeignKeyRef struct {
	Model reflect.Type
	Field string
}

// NewForeignKeyRef builds a reference to model's "id" field. The model may be
// a struct value or a pointer to one.
func NewForeignKeyRef(model any) ForeignKeyRef {
	return ForeignKeyRef{Model: indirectType(model), Field: "id"}
}

// WithField returns a copy referencing the given field.
func (r ForeignKeyRef) WithField(field string) ForeignKeyRef {
	r.Field = field
	return r
}

// String renders the reference as "<model-name-lowercased>.<field>".
func (r ForeignKeyRef) String() string {
	name := ""
	if r.Model != nil {
		name = strings.ToLower(r.Model.Name())
	}
	return name + "." + r.Field
}

// Relationship describes a named relationship between two models.
type Relationship struct {
	Name          string
	RelatedModel  reflect.Type
	ForeignKey    string
	BackPopulates string
	Lazy          bool
	Cascade       []string
}

// NewRelationship returns a lazy relationship with no back-reference and no
// cascade actions.
func NewRelationship(name string, relatedModel any, foreignKey string) Relationship {
	return Relationship{
		Name:         name,
		RelatedModel: indirectType(relatedModel),
		ForeignKey:   foreignKey,
		Lazy:         true,
	}
}

// WithBackPopulates returns a copy naming the inverse attribute.
func (r Relationship) WithBackPopulates(attr string) Relationship {
	r.BackPopulates = attr
	return r
}

// WithCascade returns a copy using the given cascade actions.
func (r Relationship) WithCascade(actions ...string) Relationship {
	r.Cascade = slices.Clone(actions)
	return r
}

// Eager returns a copy that loads eagerly.
func (r Relationship) Eager() Relationship {
	r.Lazy = false
	return r
}

// ForeignKeyInfo describes a foreign key constraint on a table.
type ForeignKeyInfo struct {
	Field    string
	RefTable string
	RefField string
	OnDelete string
	OnUpdate string
}

// NewForeignKeyInfo returns a constraint referencing refTable's "id" with
// CASCADE on delete and update.
func NewForeignKeyInfo(field, refTable string) ForeignKeyInfo {
	return ForeignKeyInfo{
		Field:    field,
		RefTable: refTable,
		RefField: "id",
		OnDelete: "CASCADE",
		OnUpdate: "CASCADE",
	}
}

// WithRefField returns a copy referencing the given field.
func (f ForeignKeyInfo) WithRefField(field string) ForeignKeyInfo {
	f.RefField = field
	return f
}

// WithOnDelete returns a copy using the given ON DELETE action.
func (f ForeignKeyInfo) WithOnDelete(action string) ForeignKeyInfo {
	f.OnDelete = action
	return f
}

// WithOnUpdate returns a copy using the given ON UPDATE action.
func (f ForeignKeyInfo) WithOnUpdate(action string) ForeignKeyInfo {
	f.OnUpdate = action
	return f
}

// Row is a single result row keyed by column name.
type Row map[string]any

// QueryResult carries ordered result rows plus the affected-row count reported
// by the backend. The zero value is a valid empty result.
type QueryResult struct {
	rows     []Row
	affected int64
}

// NewQueryResult builds a result from rows in backend order.
func NewQueryResult(rows []Row, affected int64) QueryResult {
	return QueryResult{rows: slices.Clone(rows), affected: affected}
}

// Len returns the number of rows.
func (r QueryResult) Len() int {
	return len(r.rows)
}

// IsEmpty reports whether the result holds no rows.
func (r QueryResult) IsEmpty() bool {
	return len(r.rows) == 0
}

// AffectedRows returns the backend's affected-row count.
func (r QueryResult) AffectedRows() int64 {
	return r.affected
}

// Rows returns a copy of the rows in order.
func (r QueryResult) Rows() []Row {
	return slices.Clone(r.rows)
}

// First returns the first row, or ok=false when the result is empty.
func (r QueryResult) First() (Row, bool) {
	if len(r.rows) == 0 {
		return nil, false
	}
	return r.rows[0], true
}

// Last returns the last row, or ok=false when the result is empty.
func (r QueryResult) Last() (Row, bool) {
	if len(r.rows) == 0 {
		return nil, false
	}
	return r.rows[len(r.rows)-1], true
}

func indirectType(model any) reflect.Type {
	t := reflect.TypeOf(model)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
