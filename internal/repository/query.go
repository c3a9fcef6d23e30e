package repository

import (
	"strconv"
	"strings"

	"github.com/edustack/campus-backend/internal/policy"
)

// whereBuilder accumulates WHERE conditions with positional arguments.
// Conditions use ? placeholders, rebound to $n in order of addition, so
// repository filters and policy scopes compose without manual numbering.
type whereBuilder struct {
	conds  []string
	args   []interface{}
	argIdx int
}

func newWhere() *whereBuilder {
	return &whereBuilder{argIdx: 1}
}

// add appends one condition; each ? consumes one value from vals.
func (w *whereBuilder) add(cond string, vals ...interface{}) {
	var sb strings.Builder
	for _, r := range cond {
		if r == '?' {
			sb.WriteString("$" + strconv.Itoa(w.argIdx))
			w.argIdx++
			continue
		}
		sb.WriteRune(r)
	}
	w.conds = append(w.conds, sb.String())
	w.args = append(w.args, vals...)
}

// addScope conjoins a policy scope predicate.
func (w *whereBuilder) addScope(p *policy.Predicate) {
	sql, args := p.SQL(w.argIdx)
	w.argIdx += len(args)
	w.conds = append(w.conds, sql)
	w.args = append(w.args, args...)
}

// bind reserves the next placeholder for a trailing argument (LIMIT/OFFSET).
func (w *whereBuilder) bind(v interface{}) string {
	ph := "$" + strconv.Itoa(w.argIdx)
	w.argIdx++
	w.args = append(w.args, v)
	return ph
}

// clause renders the accumulated conditions as a WHERE clause, or an empty
// string when no condition was added.
func (w *whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
