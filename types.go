package pgxkit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
)

// The enumerated vocabularies below are closed sets. Their string values are
// the literal tokens a SQL-emitting layer uses verbatim, so they are part of
// the wire contract with that layer and must not be renamed. The Parse*
// constructors reject anything outside the sets with a VALIDATION error.

// ConflictAction selects the conflict resolution strategy for idempotent
// inserts.
type ConflictAction string

const (
	ConflictDoNothing ConflictAction = "DO NOTHING"
	ConflictDoUpdate  ConflictAction = "DO UPDATE"
)

// ConflictActions returns the closed set of conflict actions.
func ConflictActions() []ConflictAction {
	return []ConflictAction{ConflictDoNothing, ConflictDoUpdate}
}

// Valid reports whether the action is a member of the closed set.
func (a ConflictAction) Valid() bool {
	return slices.Contains(ConflictActions(), a)
}

// ParseConflictAction constructs a ConflictAction from its literal token.
func ParseConflictAction(s string) (ConflictAction, error) {
	a := ConflictAction(s)
	if !a.Valid() {
		return "", unknownMember("conflict action", s, "ParseConflictAction")
	}
	return a, nil
}

// FieldType is a supported column type for schema mapping.
type FieldType string

const (
	FieldText      FieldType = "TEXT"
	FieldInteger   FieldType = "INTEGER"
	FieldFloat     FieldType = "FLOAT"
	FieldBoolean   FieldType = "BOOLEAN"
	FieldBytea     FieldType = "BYTEA"
	FieldTimestamp FieldType = "TIMESTAMP"
	FieldDate      FieldType = "DATE"
	FieldUUID      FieldType = "UUID"
	FieldJSON      FieldType = "JSON"
	FieldJSONB     FieldType = "JSONB"
	FieldArray     FieldType = "ARRAY"
)

// FieldTypes returns the closed set of field types.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldText, FieldInteger, FieldFloat, FieldBoolean, FieldBytea,
		FieldTimestamp, FieldDate, FieldUUID, FieldJSON, FieldJSONB, FieldArray,
	}
}

// Valid reports whether the field type is a member of the closed set.
func (t FieldType) Valid() bool {
	return slices.Contains(FieldTypes(), t)
}

// ParseFieldType constructs a FieldType from its literal token.
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(s)
	if !t.Valid() {
		return "", unknownMember("field type", s, "ParseFieldType")
	}
	return t, nil
}

// JoinType is a join flavor for query building.
type JoinType string

const (
	JoinInner JoinType = "INNER JOIN"
	JoinLeft  JoinType = "LEFT JOIN"
	JoinRight JoinType = "RIGHT JOIN"
	JoinFull  JoinType = "FULL JOIN"
)

// JoinTypes returns the closed set of join types.
func JoinTypes() []JoinType {
	return []JoinType{JoinInner, JoinLeft, JoinRight, JoinFull}
}

// Valid reports whether the join type is a member of the closed set.
func (t JoinType) Valid() bool {
	return slices.Contains(JoinTypes(), t)
}

// ParseJoinType constructs a JoinType from its literal token.
func ParseJoinType(s string) (JoinType, error) {
	t := JoinType(s)
	if !t.Valid() {
		return "", unknownMember("join type", s, "ParseJoinType")
	}
	return t, nil
}

// ComparisonOperator is a comparison operator for WHERE clauses.
type ComparisonOperator string

const (
	OpEQ        ComparisonOperator = "="
	OpNE        ComparisonOperator = "!="
	OpLT        ComparisonOperator = "<"
	OpLTE       ComparisonOperator = "<="
	OpGT        ComparisonOperator = ">"
	OpGTE       ComparisonOperator = ">="
	OpLike      ComparisonOperator = "LIKE"
	OpILike     ComparisonOperator = "ILIKE"
	OpIn        ComparisonOperator = "IN"
	OpNotIn     ComparisonOperator = "NOT IN"
	OpIsNull    ComparisonOperator = "IS NULL"
	OpIsNotNull ComparisonOperator = "IS NOT NULL"
	OpBetween   ComparisonOperator = "BETWEEN"
	OpExists    ComparisonOperator = "EXISTS"
)

// ComparisonOperators returns the closed set of comparison operators.
func ComparisonOperators() []ComparisonOperator {
	return []ComparisonOperator{
		OpEQ, OpNE, OpLT, OpLTE, OpGT, OpGTE, OpLike, OpILike,
		OpIn, OpNotIn, OpIsNull, OpIsNotNull, OpBetween, OpExists,
	}
}

// Valid reports whether the operator is a member of the closed set.
func (o ComparisonOperator) Valid() bool {
	return slices.Contains(ComparisonOperators(), o)
}

// ParseComparisonOperator constructs a ComparisonOperator from its literal
// token.
func ParseComparisonOperator(s string) (ComparisonOperator, error) {
	o := ComparisonOperator(s)
	if !o.Valid() {
		return "", unknownMember("comparison operator", s, "ParseComparisonOperator")
	}
	return o, nil
}

// LogicalOperator combines WHERE clauses.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "AND"
	LogicalOr  LogicalOperator = "OR"
	LogicalNot LogicalOperator = "NOT"
)

// LogicalOperators returns the closed set of logical operators.
func LogicalOperators() []LogicalOperator {
	return []LogicalOperator{LogicalAnd, LogicalOr, LogicalNot}
}

// Valid reports whether the operator is a member of the closed set.
func (o LogicalOperator) Valid() bool {
	return slices.Contains(LogicalOperators(), o)
}

// ParseLogicalOperator constructs a LogicalOperator from its literal token.
func ParseLogicalOperator(s string) (LogicalOperator, error) {
	o := LogicalOperator(s)
	if !o.Valid() {
		return "", unknownMember("logical operator", s, "ParseLogicalOperator")
	}
	return o, nil
}

// MigrationDirection marks which way a migration runs.
type MigrationDirection string

const (
	MigrationUp   MigrationDirection = "up"
	MigrationDown MigrationDirection = "down"
)

// MigrationDirections returns the closed set of migration directions.
func MigrationDirections() []MigrationDirection {
	return []MigrationDirection{MigrationUp, MigrationDown}
}

// Valid reports whether the direction is a member of the closed set.
func (d MigrationDirection) Valid() bool {
	return slices.Contains(MigrationDirections(), d)
}

// ParseMigrationDirection constructs a MigrationDirection from its literal
// token.
func ParseMigrationDirection(s string) (MigrationDirection, error) {
	d := MigrationDirection(s)
	if !d.Valid() {
		return "", unknownMember("migration direction", s, "ParseMigrationDirection")
	}
	return d, nil
}

// IsolationLevel is a transaction isolation level.
type IsolationLevel string

const (
	ReadUncommitted IsolationLevel = "READ UNCOMMITTED"
	ReadCommitted   IsolationLevel = "READ COMMITTED"
	RepeatableRead  IsolationLevel = "REPEATABLE READ"
	Serializable    IsolationLevel = "SERIALIZABLE"
)

// IsolationLevels returns the closed set of isolation levels.
func IsolationLevels() []IsolationLevel {
	return []IsolationLevel{ReadUncommitted, ReadCommitted, RepeatableRead, Serializable}
}

// Valid reports whether the level is a member of the closed set.
func (l IsolationLevel) Valid() bool {
	return slices.Contains(IsolationLevels(), l)
}

// ParseIsolationLevel constructs an IsolationLevel from its literal token.
func ParseIsolationLevel(s string) (IsolationLevel, error) {
	l := IsolationLevel(s)
	if !l.Valid() {
		return "", unknownMember("isolation level", s, "ParseIsolationLevel")
	}
	return l, nil
}

// PgxTxIsoLevel bridges the level to the pgx transaction option value.
func (l IsolationLevel) PgxTxIsoLevel() pgx.TxIsoLevel {
	return pgx.TxIsoLevel(strings.ToLower(string(l)))
}

// RelationshipType is the cardinality of a relationship between models.
type RelationshipType string

const (
	OneToOne   RelationshipType = "one-to-one"
	OneToMany  RelationshipType = "one-to-many"
	ManyToOne  RelationshipType = "many-to-one"
	ManyToMany RelationshipType = "many-to-many"
)

// RelationshipTypes returns the closed set of relationship types.
func RelationshipTypes() []RelationshipType {
	return []RelationshipType{OneToOne, OneToMany, ManyToOne, ManyToMany}
}

// Valid reports whether the relationship type is a member of the closed set.
func (t RelationshipType) Valid() bool {
	return slices.Contains(RelationshipTypes(), t)
}

// ParseRelationshipType constructs a RelationshipType from its literal token.
func ParseRelationshipType(s string) (RelationshipType, error) {
	t := RelationshipType(s)
	if !t.Valid() {
		return "", unknownMember("relationship type", s, "ParseRelationshipType")
	}
	return t, nil
}

func unknownMember(kind, value, op string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf("unknown %s %q", kind, value),
		Op:      op,
	}
}
