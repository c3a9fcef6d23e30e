package repository

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/edustack/campus-backend/internal/policy"
)

func TestWhereBuilderEmpty(t *testing.T) {
	w := newWhere()
	if got := w.clause(); got != "" {
		t.Errorf("clause() = %q, want empty", got)
	}
	if len(w.args) != 0 {
		t.Errorf("args = %v, want none", w.args)
	}
}

func TestWhereBuilderRebindsPlaceholders(t *testing.T) {
	w := newWhere()
	w.add("school_id = ?", "s1")
	w.add("date BETWEEN ? AND ?", "a", "b")

	want := " WHERE school_id = $1 AND date BETWEEN $2 AND $3"
	if got := w.clause(); got != want {
		t.Errorf("clause() = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(w.args, []interface{}{"s1", "a", "b"}) {
		t.Errorf("args = %v", w.args)
	}
}

func TestWhereBuilderBindContinuesNumbering(t *testing.T) {
	w := newWhere()
	w.add("status = ?", "pending")

	if ph := w.bind(20); ph != "$2" {
		t.Errorf("bind limit = %q, want $2", ph)
	}
	if ph := w.bind(40); ph != "$3" {
		t.Errorf("bind offset = %q, want $3", ph)
	}
	if !reflect.DeepEqual(w.args, []interface{}{"pending", 20, 40}) {
		t.Errorf("args = %v", w.args)
	}
}

func TestWhereBuilderScopeComposes(t *testing.T) {
	schoolID := uuid.New()
	pred := policy.Eq("school_id", schoolID)

	w := newWhere()
	w.add("is_active = ?", true)
	w.addScope(pred)

	want := " WHERE is_active = $1 AND school_id = $2"
	if got := w.clause(); got != want {
		t.Errorf("clause() = %q, want %q", got, want)
	}
	if len(w.args) != 2 || w.args[1] != schoolID {
		t.Errorf("args = %v", w.args)
	}
}
