package pgxkit

import (
	"testing"
)

type User struct {
	ID    int
	Email string
}

type OrderItem struct {
	ID int
}

func TestNewJoinClause_Defaults(t *testing.T) {
	c := NewJoinClause("orders", "orders.user_id = users.id")

	if c.JoinType != JoinInner {
		t.Errorf("expected INNER JOIN default, got %s", c.JoinType)
	}
	if c.Alias != "" {
		t.Errorf("expected no alias, got %q", c.Alias)
	}
	if c.Table != "orders" || c.On != "orders.user_id = users.id" {
		t.Error("table/on not carried")
	}
}

func TestJoinClause_With_CopiesNotMutates(t *testing.T) {
	base := NewJoinClause("orders", "orders.user_id = users.id")
	left := base.WithType(JoinLeft).WithAlias("o")

	if base.JoinType != JoinInner || base.Alias != "" {
		t.Error("With* must not mutate the original clause")
	}
	if left.JoinType != JoinLeft || left.Alias != "o" {
		t.Error("copy did not carry the new values")
	}
}

func TestNewWhereClause_Defaults(t *testing.T) {
	c := NewWhereClause("email", OpEQ, "a@b.c")

	if c.LogicalOp != LogicalAnd {
		t.Errorf("expected AND default, got %s", c.LogicalOp)
	}
	if c.Column != "email" || c.Operator != OpEQ || c.Value != "a@b.c" {
		t.Error("fields not carried")
	}

	or := c.WithLogicalOp(LogicalOr)
	if c.LogicalOp != LogicalAnd {
		t.Error("WithLogicalOp must not mutate the original")
	}
	if or.LogicalOp != LogicalOr {
		t.Error("copy did not carry OR")
	}
}

func TestNewOrderByClause_Defaults(t *testing.T) {
	c := NewOrderByClause("created_at")

	if !c.Ascending {
		t.Error("expected ascending default")
	}

	desc := c.Desc()
	if !c.Ascending {
		t.Error("Desc must not mutate the original")
	}
	if desc.Ascending {
		t.Error("expected descending copy")
	}
	if !desc.Asc().Ascending {
		t.Error("expected ascending copy back")
	}
}

func TestForeignKeyRef_String(t *testing.T) {
	ref := NewForeignKeyRef(User{})
	if ref.Field != "id" {
		t.Errorf("expected default field id, got %q", ref.Field)
	}
	if ref.String() != "user.id" {
		t.Errorf("expected user.id, got %s", ref.String())
	}

	uuidRef := ref.WithField("uuid")
	if uuidRef.String() != "user.uuid" {
		t.Errorf("expected user.uuid, got %s", uuidRef.String())
	}
	if ref.String() != "user.id" {
		t.Error("WithField must not mutate the original")
	}
}

func TestForeignKeyRef_PointerModel(t *testing.T) {
	ref := NewForeignKeyRef(&OrderItem{})
	if ref.String() != "orderitem.id" {
		t.Errorf("expected orderitem.id, got %s", ref.String())
	}
}

func TestNewRelationship_Defaults(t *testing.T) {
	rel := NewRelationship("orders", OrderItem{}, "user_id")

	if !rel.Lazy {
		t.Error("expected lazy default")
	}
	if rel.BackPopulates != "" {
		t.Error("expected no back-populates default")
	}
	if rel.Cascade != nil {
		t.Error("expected no cascade default")
	}
	if rel.RelatedModel.Name() != "OrderItem" {
		t.Errorf("expected OrderItem, got %s", rel.RelatedModel.Name())
	}

	eager := rel.Eager().WithBackPopulates("user").WithCascade("delete", "save-update")
	if !rel.Lazy || rel.BackPopulates != "" {
		t.Error("builders must not mutate the original")
	}
	if eager.Lazy {
		t.Error("expected eager copy")
	}
	if eager.BackPopulates != "user" {
		t.Error("back-populates not carried")
	}
	if len(eager.Cascade) != 2 {
		t.Errorf("expected 2 cascade actions, got %d", len(eager.Cascade))
	}
}

func TestNewForeignKeyInfo_Defaults(t *testing.T) {
	fk := NewForeignKeyInfo("user_id", "users")

	if fk.RefField != "id" {
		t.Errorf("expected ref field id, got %q", fk.RefField)
	}
	if fk.OnDelete != "CASCADE" || fk.OnUpdate != "CASCADE" {
		t.Errorf("expected CASCADE defaults, got %q/%q", fk.OnDelete, fk.OnUpdate)
	}

	restricted := fk.WithRefField("uuid").WithOnDelete("RESTRICT").WithOnUpdate("SET NULL")
	if fk.RefField != "id" || fk.OnDelete != "CASCADE" {
		t.Error("builders must not mutate the original")
	}
	if restricted.RefField != "uuid" || restricted.OnDelete != "RESTRICT" || restricted.OnUpdate != "SET NULL" {
		t.Error("copy did not carry the new values")
	}
}

func TestQueryResult_Empty(t *testing.T) {
	result := NewQueryResult([]Row{}, 0)

	if !result.IsEmpty() {
		t.Error("expected empty result")
	}
	if result.Len() != 0 {
		t.Errorf("expected length 0, got %d", result.Len())
	}
	if result.AffectedRows() != 0 {
		t.Errorf("expected 0 affected rows, got %d", result.AffectedRows())
	}
	if _, ok := result.First(); ok {
		t.Error("First on empty result must report absent")
	}
	if _, ok := result.Last(); ok {
		t.Error("Last on empty result must report absent")
	}
}

func TestQueryResult_Rows(t *testing.T) {
	result := NewQueryResult([]Row{{"id": 1}, {"id": 2}}, 2)

	if result.IsEmpty() {
		t.Error("expected non-empty result")
	}
	if result.Len() != 2 {
		t.Errorf("expected length 2, got %d", result.Len())
	}
	if result.AffectedRows() != 2 {
		t.Errorf("expected 2 affected rows, got %d", result.AffectedRows())
	}

	first, ok := result.First()
	if !ok || first["id"] != 1 {
		t.Errorf("expected first row id=1, got %v", first)
	}
	last, ok := result.Last()
	if !ok || last["id"] != 2 {
		t.Errorf("expected last row id=2, got %v", last)
	}
}

func TestQueryResult_ZeroValue(t *testing.T) {
	var result QueryResult

	if !result.IsEmpty() || result.Len() != 0 {
		t.Error("zero value must be a valid empty result")
	}
	if _, ok := result.First(); ok {
		t.Error("First on zero value must report absent")
	}
}

func TestQueryResult_RowsCopy(t *testing.T) {
	rows := []Row{{"id": 1}}
	result := NewQueryResult(rows, 1)

	rows[0] = Row{"id": 99}
	first, _ := result.First()
	if first["id"] != 1 {
		t.Error("constructor must copy the row slice")
	}

	got := result.Rows()
	got[0] = Row{"id": 42}
	first, _ = result.First()
	if first["id"] != 1 {
		t.Error("Rows must return a copy")
	}
}
