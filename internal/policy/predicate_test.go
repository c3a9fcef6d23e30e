package policy

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestPredicateRendering(t *testing.T) {
	id := uuid.New()
	other := uuid.New()

	tests := []struct {
		name     string
		pred     *Predicate
		startIdx int
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "all renders TRUE",
			pred:     All(),
			startIdx: 1,
			wantSQL:  "TRUE",
		},
		{
			name:     "none renders FALSE",
			pred:     None(),
			startIdx: 1,
			wantSQL:  "FALSE",
		},
		{
			name:     "eq binds one arg",
			pred:     Eq("e.section_id", id),
			startIdx: 3,
			wantSQL:  "e.section_id = $3",
			wantArgs: []interface{}{id},
		},
		{
			name:     "in uses ANY",
			pred:     In("m.student_id", []uuid.UUID{id, other}),
			startIdx: 1,
			wantSQL:  "m.student_id = ANY($1)",
			wantArgs: []interface{}{[]uuid.UUID{id, other}},
		},
		{
			name:     "empty in collapses to none",
			pred:     In("m.student_id", nil),
			startIdx: 1,
			wantSQL:  "FALSE",
		},
		{
			name:     "and joins with sequential placeholders",
			pred:     And(Eq("e.school_id", id), Eq("e.subject_id", other)),
			startIdx: 2,
			wantSQL:  "(e.school_id = $2 AND e.subject_id = $3)",
			wantArgs: []interface{}{id, other},
		},
		{
			name:     "or of eq and in",
			pred:     Or(Eq("a.marked_by", id), In("st.section_id", []uuid.UUID{other})),
			startIdx: 1,
			wantSQL:  "(a.marked_by = $1 OR st.section_id = ANY($2))",
			wantArgs: []interface{}{id, []uuid.UUID{other}},
		},
		{
			name:     "and short-circuits on none",
			pred:     And(Eq("x", id), None()),
			startIdx: 1,
			wantSQL:  "FALSE",
		},
		{
			name:     "and drops all children",
			pred:     And(All(), Eq("x", id)),
			startIdx: 1,
			wantSQL:  "x = $1",
			wantArgs: []interface{}{id},
		},
		{
			name:     "or short-circuits on all",
			pred:     Or(Eq("x", id), All()),
			startIdx: 1,
			wantSQL:  "TRUE",
		},
		{
			name:     "or drops none children",
			pred:     Or(None(), Eq("x", id)),
			startIdx: 1,
			wantSQL:  "x = $1",
			wantArgs: []interface{}{id},
		},
		{
			name:     "nested composition keeps numbering",
			pred:     And(Eq("a", id), Or(Eq("b", other), Expr("c = ANY(?)", []uuid.UUID{id}))),
			startIdx: 1,
			wantSQL:  "(a = $1 AND (b = $2 OR c = ANY($3)))",
			wantArgs: []interface{}{id, other, []uuid.UUID{id}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := tt.pred.SQL(tt.startIdx)
			if gotSQL != tt.wantSQL {
				t.Errorf("SQL = %q, want %q", gotSQL, tt.wantSQL)
			}
			if len(tt.wantArgs) == 0 && len(gotArgs) != 0 {
				t.Errorf("args = %v, want none", gotArgs)
			}
			if len(tt.wantArgs) > 0 && !reflect.DeepEqual(gotArgs, tt.wantArgs) {
				t.Errorf("args = %v, want %v", gotArgs, tt.wantArgs)
			}
		})
	}
}
