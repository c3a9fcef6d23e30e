package policy

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/edustack/campus-backend/internal/model"
)

func TestCanWriteMatrix(t *testing.T) {
	tests := []struct {
		role     model.Role
		res      Resource
		action   Action
		want     bool
	}{
		// Exam/mark/attendance writes: staff only.
		{model.RoleTeacher, ResourceExams, ActionCreate, true},
		{model.RolePrincipal, ResourceExams, ActionCreate, true},
		{model.RoleDeveloper, ResourceMarks, ActionUpdate, true},
		{model.RoleStudent, ResourceExams, ActionCreate, false},
		{model.RoleParent, ResourceMarks, ActionCreate, false},
		{model.RoleStudent, ResourceAttendance, ActionCreate, false},

		// Fees: teachers locked out entirely, writes admin-only.
		{model.RoleTeacher, ResourceFeeRecords, ActionRead, false},
		{model.RoleTeacher, ResourceFeeRecords, ActionCreate, false},
		{model.RoleStudent, ResourceFeeRecords, ActionRead, true},
		{model.RoleParent, ResourceFeeRecords, ActionRead, true},
		{model.RolePrincipal, ResourceFeeRecords, ActionCreate, true},
		{model.RolePrincipal, ResourceFeeStructures, ActionCreate, true},
		{model.RoleTeacher, ResourceFeeStructures, ActionCreate, false},

		// Submissions: students create, staff grade.
		{model.RoleStudent, ResourceSubmissions, ActionCreate, true},
		{model.RoleTeacher, ResourceSubmissions, ActionCreate, false},
		{model.RoleTeacher, ResourceSubmissions, ActionUpdate, true},
		{model.RoleParent, ResourceSubmissions, ActionUpdate, false},

		// Reads are broadly allowed; Scope narrows them.
		{model.RoleParent, ResourceMarks, ActionRead, true},
		{model.RoleStudent, ResourceNotices, ActionRead, true},

		// Learning material: staff publish, everyone reads.
		{model.RoleTeacher, ResourceLearningMaterials, ActionCreate, true},
		{model.RoleStudent, ResourceLearningMaterials, ActionRead, true},
		{model.RoleStudent, ResourceLearningMaterials, ActionCreate, false},
		{model.RoleParent, ResourceLearningMaterials, ActionDelete, false},

		// Org management.
		{model.RolePrincipal, ResourceClasses, ActionCreate, true},
		{model.RoleTeacher, ResourceClasses, ActionCreate, false},
		{model.RolePrincipal, ResourceSchools, ActionCreate, false},
		{model.RoleDeveloper, ResourceSchools, ActionCreate, true},

		// Unknown resource denies.
		{model.RoleDeveloper, Resource("bogus"), ActionRead, false},
	}

	for _, tt := range tests {
		got := Can(tt.role, tt.res, tt.action)
		if got != tt.want {
			t.Errorf("Can(%s, %s, %s) = %v, want %v", tt.role, tt.res, tt.action, got, tt.want)
		}
	}
}

func TestScopeDeveloperSeesAll(t *testing.T) {
	dev := &Actor{ID: uuid.New(), Role: model.RoleDeveloper}
	for _, res := range []Resource{ResourceExams, ResourceMarks, ResourceAttendance, ResourceFeeRecords, ResourceNotices} {
		if !Scope(dev, res).IsAll() {
			t.Errorf("developer scope for %s should be All", res)
		}
	}
}

func TestScopePrincipalIsSchoolScoped(t *testing.T) {
	school := uuid.New()
	p := &Actor{ID: uuid.New(), Role: model.RolePrincipal, SchoolID: &school}

	sql, args := Scope(p, ResourceExams).SQL(1)
	if sql != "e.school_id = $1" {
		t.Errorf("principal exam scope = %q", sql)
	}
	if len(args) != 1 || args[0] != school {
		t.Errorf("principal exam scope args = %v", args)
	}

	// A principal with no school binding sees nothing, not everything.
	orphan := &Actor{ID: uuid.New(), Role: model.RolePrincipal}
	if !Scope(orphan, ResourceExams).IsNone() {
		t.Error("principal without school should scope to None")
	}
}

func TestScopeTeacherExamOrSemantics(t *testing.T) {
	school := uuid.New()
	subj := uuid.New()
	sect := uuid.New()
	teacher := &Actor{
		ID:         uuid.New(),
		Role:       model.RoleTeacher,
		SchoolID:   &school,
		ProfileID:  uuid.New(),
		SubjectIDs: []uuid.UUID{subj},
		SectionIDs: []uuid.UUID{sect},
	}

	sql, args := Scope(teacher, ResourceExams).SQL(1)
	want := "(e.school_id = $1 AND (e.subject_id = ANY($2) OR e.section_id = ANY($3)))"
	if sql != want {
		t.Errorf("teacher exam scope = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Errorf("teacher exam scope args = %d, want 3", len(args))
	}

	// Assignments are ownership-only, deliberately narrower than exams.
	sql, _ = Scope(teacher, ResourceAssignments).SQL(1)
	if sql != "asg.teacher_id = $1" {
		t.Errorf("teacher assignment scope = %q", sql)
	}
}

func TestScopeTeacherAttendanceMarkedOrSections(t *testing.T) {
	sect := uuid.New()
	teacher := &Actor{
		ID:         uuid.New(),
		Role:       model.RoleTeacher,
		ProfileID:  uuid.New(),
		SectionIDs: []uuid.UUID{sect},
	}

	sql, _ := Scope(teacher, ResourceAttendance).SQL(1)
	want := "(a.marked_by = $1 OR st.section_id = ANY($2))"
	if sql != want {
		t.Errorf("teacher attendance scope = %q, want %q", sql, want)
	}
}

func TestScopeStudentOwnRecordsOnly(t *testing.T) {
	school := uuid.New()
	profile := uuid.New()
	section := uuid.New()
	class := uuid.New()
	student := &Actor{
		ID: uuid.New(), Role: model.RoleStudent, SchoolID: &school,
		ProfileID: profile, ClassID: &class, SectionID: &section,
	}

	sql, args := Scope(student, ResourceMarks).SQL(1)
	if sql != "m.student_id = $1" || args[0] != profile {
		t.Errorf("student mark scope = %q %v", sql, args)
	}

	sql, args = Scope(student, ResourceExams).SQL(1)
	if sql != "e.section_id = $1" || args[0] != section {
		t.Errorf("student exam scope = %q %v", sql, args)
	}

	sql, args = Scope(student, ResourceFeeRecords).SQL(1)
	if sql != "f.student_id = $1" || args[0] != profile {
		t.Errorf("student fee scope = %q %v", sql, args)
	}
}

func TestScopeParentUnionOfChildren(t *testing.T) {
	school := uuid.New()
	childA := uuid.New()
	childB := uuid.New()
	parent := &Actor{
		ID: uuid.New(), Role: model.RoleParent, SchoolID: &school,
		ProfileID: uuid.New(),
		ChildIDs:  []uuid.UUID{childA, childB},
	}

	sql, args := Scope(parent, ResourceAttendance).SQL(1)
	if sql != "a.student_id = ANY($1)" {
		t.Errorf("parent attendance scope = %q", sql)
	}
	ids, ok := args[0].([]uuid.UUID)
	if !ok || len(ids) != 2 {
		t.Errorf("parent attendance args = %v, want both children", args)
	}
}

func TestScopeParentWithNoChildrenIsEmptyNotForbidden(t *testing.T) {
	school := uuid.New()
	parent := &Actor{ID: uuid.New(), Role: model.RoleParent, SchoolID: &school, ProfileID: uuid.New()}

	// Read permission stands; the scope is empty.
	if !Can(parent.Role, ResourceMarks, ActionRead) {
		t.Fatal("parents may read marks")
	}
	if !Scope(parent, ResourceMarks).IsNone() {
		t.Error("parent with no children should scope to None")
	}
}

func TestScopeTeacherFeeIsNone(t *testing.T) {
	school := uuid.New()
	teacher := &Actor{ID: uuid.New(), Role: model.RoleTeacher, SchoolID: &school, ProfileID: uuid.New()}
	if !Scope(teacher, ResourceFeeRecords).IsNone() {
		t.Error("teacher fee scope should be None")
	}
}

func TestScopeNoticeTargeting(t *testing.T) {
	school := uuid.New()
	class := uuid.New()
	student := &Actor{
		ID: uuid.New(), Role: model.RoleStudent, SchoolID: &school,
		ProfileID: uuid.New(), ClassID: &class,
	}

	sql, _ := Scope(student, ResourceNotices).SQL(1)
	if !strings.Contains(sql, "n.school_id = $1") {
		t.Errorf("notice scope missing school filter: %q", sql)
	}
	if !strings.Contains(sql, "NOT EXISTS (SELECT 1 FROM notice_targets") {
		t.Errorf("notice scope missing school-wide branch: %q", sql)
	}
	if !strings.Contains(sql, "nt.class_id = ANY(") {
		t.Errorf("notice scope missing class-target branch: %q", sql)
	}
}

func TestScopeLearningMaterialVisibility(t *testing.T) {
	school := uuid.New()
	class := uuid.New()

	teacher := &Actor{ID: uuid.New(), Role: model.RoleTeacher, SchoolID: &school, ProfileID: uuid.New()}
	sql, _ := Scope(teacher, ResourceLearningMaterials).SQL(1)
	if sql != "res.school_id = $1" {
		t.Errorf("teacher resource scope = %q", sql)
	}

	// Students only reach public material for their class or with no class
	// binding at all.
	student := &Actor{
		ID: uuid.New(), Role: model.RoleStudent, SchoolID: &school,
		ProfileID: uuid.New(), ClassID: &class,
	}
	sql, args := Scope(student, ResourceLearningMaterials).SQL(1)
	want := "(res.school_id = $1 AND res.is_public = $2 AND (res.class_id IS NULL OR res.class_id = $3))"
	if sql != want {
		t.Errorf("student resource scope = %q, want %q", sql, want)
	}
	if len(args) != 3 || args[0] != school || args[1] != true || args[2] != class {
		t.Errorf("student resource scope args = %v", args)
	}

	// A parent with no children still sees school-wide public material.
	parent := &Actor{ID: uuid.New(), Role: model.RoleParent, SchoolID: &school, ProfileID: uuid.New()}
	sql, _ = Scope(parent, ResourceLearningMaterials).SQL(1)
	want = "(res.school_id = $1 AND res.is_public = $2 AND res.class_id IS NULL)"
	if sql != want {
		t.Errorf("parent resource scope = %q, want %q", sql, want)
	}
}

func TestScopeMessagesSenderOrRecipient(t *testing.T) {
	actor := &Actor{ID: uuid.New(), Role: model.RoleStudent, ProfileID: uuid.New()}
	sql, args := Scope(actor, ResourceMessages).SQL(1)
	want := "(msg.sender_id = $1 OR EXISTS (SELECT 1 FROM message_recipients mr WHERE mr.message_id = msg.id AND mr.recipient_id = $2))"
	if sql != want {
		t.Errorf("message scope = %q, want %q", sql, want)
	}
	if len(args) != 2 || args[0] != actor.ID || args[1] != actor.ID {
		t.Errorf("message scope args = %v", args)
	}
}
