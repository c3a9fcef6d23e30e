package policy

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type predicateKind int

const (
	kindAll predicateKind = iota
	kindNone
	kindExpr
	kindAnd
	kindOr
)

// Predicate is a declarative, composable visibility filter over resource
// columns. Repositories render it into a SQL fragment and conjoin it with
// their own filters, so role logic is never re-derived at call sites.
//
// An All predicate renders to TRUE; None renders to FALSE. None is a valid
// outcome (e.g. a parent with no children) and is distinct from a Forbidden
// decision, which never reaches query rendering.
type Predicate struct {
	kind     predicateKind
	expr     string
	args     []interface{}
	children []*Predicate
}

// All matches every row.
func All() *Predicate { return &Predicate{kind: kindAll} }

// None matches no rows.
func None() *Predicate { return &Predicate{kind: kindNone} }

// Expr builds a leaf from a SQL fragment using ? placeholders, rebound to
// positional $n arguments at render time.
func Expr(expr string, args ...interface{}) *Predicate {
	return &Predicate{kind: kindExpr, expr: expr, args: args}
}

// Eq matches rows where col equals v.
func Eq(col string, v interface{}) *Predicate {
	return Expr(col+" = ?", v)
}

// In matches rows where col is any of ids. An empty id list matches nothing.
func In(col string, ids []uuid.UUID) *Predicate {
	if len(ids) == 0 {
		return None()
	}
	return Expr(col+" = ANY(?)", ids)
}

// And conjoins predicates. All-children are dropped; a None child collapses
// the whole conjunction to None.
func And(ps ...*Predicate) *Predicate {
	kept := make([]*Predicate, 0, len(ps))
	for _, p := range ps {
		switch p.kind {
		case kindAll:
			continue
		case kindNone:
			return None()
		default:
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return All()
	case 1:
		return kept[0]
	}
	return &Predicate{kind: kindAnd, children: kept}
}

// Or disjoins predicates. None-children are dropped; an All child collapses
// the whole disjunction to All.
func Or(ps ...*Predicate) *Predicate {
	kept := make([]*Predicate, 0, len(ps))
	for _, p := range ps {
		switch p.kind {
		case kindNone:
			continue
		case kindAll:
			return All()
		default:
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return None()
	case 1:
		return kept[0]
	}
	return &Predicate{kind: kindOr, children: kept}
}

// IsNone reports whether the predicate can never match.
func (p *Predicate) IsNone() bool { return p.kind == kindNone }

// IsAll reports whether the predicate matches unconditionally.
func (p *Predicate) IsAll() bool { return p.kind == kindAll }

// SQL renders the predicate into a SQL fragment with positional arguments
// starting at $argIdx. The returned args line up with the placeholders.
func (p *Predicate) SQL(argIdx int) (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}
	p.render(&sb, &args, &argIdx)
	return sb.String(), args
}

func (p *Predicate) render(sb *strings.Builder, args *[]interface{}, argIdx *int) {
	switch p.kind {
	case kindAll:
		sb.WriteString("TRUE")
	case kindNone:
		sb.WriteString("FALSE")
	case kindExpr:
		for _, r := range p.expr {
			if r == '?' {
				sb.WriteString("$" + strconv.Itoa(*argIdx))
				*argIdx++
				continue
			}
			sb.WriteRune(r)
		}
		*args = append(*args, p.args...)
	case kindAnd, kindOr:
		sep := " AND "
		if p.kind == kindOr {
			sep = " OR "
		}
		sb.WriteString("(")
		for i, child := range p.children {
			if i > 0 {
				sb.WriteString(sep)
			}
			child.render(sb, args, argIdx)
		}
		sb.WriteString(")")
	}
}
