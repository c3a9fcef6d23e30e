// Package policy is the central authority for role-based access. It answers
// two questions: whether an actor may perform an action on a resource kind
// (Can), and which resource instances an actor may read (Scope). Both are
// pure functions of the actor context and static tables — services call them
// instead of re-deriving role logic per endpoint.
package policy

import (
	"github.com/google/uuid"

	"github.com/edustack/campus-backend/internal/model"
)

// Action identifies what the caller wants to do.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource identifies the entity class a decision applies to.
type Resource string

const (
	ResourceSchools            Resource = "schools"
	ResourceClasses            Resource = "classes"
	ResourceSections           Resource = "sections"
	ResourceSubjects           Resource = "subjects"
	ResourceActors             Resource = "actors"
	ResourceProfiles           Resource = "profiles"
	ResourceExams              Resource = "exams"
	ResourceMarks              Resource = "marks"
	ResourceTimetable          Resource = "timetable"
	ResourceAttendance         Resource = "attendance"
	ResourceAssignments        Resource = "assignments"
	ResourceSubmissions        Resource = "submissions"
	ResourceFeeStructures      Resource = "fee_structures"
	ResourceFeeRecords         Resource = "fee_records"
	ResourceNotices            Resource = "notices"
	ResourceLearningMaterials  Resource = "resources"
	ResourceBehaviorCategories Resource = "behavior_categories"
	ResourceBehaviorLogs       Resource = "behavior_logs"
	ResourceMessages           Resource = "messages"
)

// roleSet is a compact allow-list of roles.
type roleSet map[model.Role]bool

func roles(rs ...model.Role) roleSet {
	set := make(roleSet, len(rs))
	for _, r := range rs {
		set[r] = true
	}
	return set
}

var (
	allRoles   = roles(model.RoleDeveloper, model.RolePrincipal, model.RoleTeacher, model.RoleStudent, model.RoleParent)
	staffRoles = roles(model.RoleDeveloper, model.RolePrincipal, model.RoleTeacher)
	adminRoles = roles(model.RoleDeveloper, model.RolePrincipal)
	devOnly    = roles(model.RoleDeveloper)
	noTeacher  = roles(model.RoleDeveloper, model.RolePrincipal, model.RoleStudent, model.RoleParent)
)

// permissionTable is the canonical (resource, action) → allowed-roles matrix.
// Read visibility within the allowed set is further narrowed by Scope.
var permissionTable = map[Resource]map[Action]roleSet{
	ResourceSchools: {
		ActionCreate: devOnly, ActionRead: allRoles, ActionUpdate: devOnly, ActionDelete: devOnly,
	},
	ResourceClasses: {
		ActionCreate: adminRoles, ActionRead: allRoles, ActionUpdate: adminRoles, ActionDelete: adminRoles,
	},
	ResourceSections: {
		ActionCreate: adminRoles, ActionRead: allRoles, ActionUpdate: adminRoles, ActionDelete: adminRoles,
	},
	ResourceSubjects: {
		ActionCreate: adminRoles, ActionRead: allRoles, ActionUpdate: adminRoles, ActionDelete: adminRoles,
	},
	ResourceActors: {
		ActionCreate: adminRoles, ActionRead: adminRoles, ActionUpdate: adminRoles, ActionDelete: adminRoles,
	},
	ResourceProfiles: {
		ActionCreate: adminRoles, ActionRead: allRoles, ActionUpdate: adminRoles, ActionDelete: adminRoles,
	},
	ResourceExams: {
		ActionCreate: staffRoles, ActionRead: allRoles, ActionUpdate: staffRoles, ActionDelete: staffRoles,
	},
	ResourceMarks: {
		ActionCreate: staffRoles, ActionRead: allRoles, ActionUpdate: staffRoles, ActionDelete: staffRoles,
	},
	ResourceTimetable: {
		ActionCreate: staffRoles, ActionRead: allRoles, ActionUpdate: staffRoles, ActionDelete: staffRoles,
	},
	ResourceAttendance: {
		ActionCreate: staffRoles, ActionRead: allRoles, ActionUpdate: staffRoles, ActionDelete: staffRoles,
	},
	ResourceAssignments: {
		ActionCreate: staffRoles, ActionRead: allRoles, ActionUpdate: staffRoles, ActionDelete: staffRoles,
	},
	ResourceSubmissions: {
		// Students submit for their own identity; graders update.
		ActionCreate: roles(model.RoleStudent),
		ActionRead:   allRoles,
		ActionUpdate: staffRoles,
		ActionDelete: adminRoles,
	},
	ResourceFeeStructures: {
		ActionCreate: adminRoles, ActionRead: noTeacher, ActionUpdate: adminRoles, ActionDelete: adminRoles,
	},
	ResourceFeeRecords: {
		// Teachers have no fee access at all.
		ActionCreate: adminRoles, ActionRead: noTeacher, ActionUpdate: adminRoles, ActionDelete: adminRoles,
	},
	ResourceNotices: {
		ActionCreate: staffRoles, ActionRead: allRoles, ActionUpdate: staffRoles, ActionDelete: adminRoles,
	},
	ResourceLearningMaterials: {
		ActionCreate: staffRoles, ActionRead: allRoles, ActionUpdate: staffRoles, ActionDelete: staffRoles,
	},
	ResourceBehaviorCategories: {
		ActionCreate: adminRoles, ActionRead: allRoles, ActionUpdate: adminRoles, ActionDelete: adminRoles,
	},
	ResourceBehaviorLogs: {
		ActionCreate: staffRoles, ActionRead: allRoles, ActionUpdate: staffRoles, ActionDelete: adminRoles,
	},
	ResourceMessages: {
		ActionCreate: allRoles, ActionRead: allRoles, ActionUpdate: allRoles, ActionDelete: adminRoles,
	},
}

// Can reports whether the role may perform the action on the resource kind.
// It is a pure table lookup with no side effects. A false result must surface
// as Forbidden — never as a silent empty result.
func Can(role model.Role, res Resource, action Action) bool {
	actions, ok := permissionTable[res]
	if !ok {
		return false
	}
	allowed, ok := actions[action]
	if !ok {
		return false
	}
	return allowed[role]
}

// Scope computes the visibility predicate restricting which instances of a
// resource the actor may read. The predicate is written against canonical
// table aliases that repositories must use when conjoining it:
//
//	schools s · classes c · sections sec · subjects sub · actors act ·
//	profiles p · exams e · marks m (joined to exams e) · timetable t ·
//	attendance a (joined to student_profiles st) · assignments asg ·
//	submissions sm (joined to assignments asg) · fee records f (joined to
//	student_profiles st) · notices n · resources res · behavior logs b
//	(joined to student_profiles st) · messages msg
//
// Scope never encodes a permission decision: callers must check Can first.
// An empty scope (None) is a valid outcome distinct from Forbidden.
func Scope(a *Actor, res Resource) *Predicate {
	if a.Role == model.RoleDeveloper {
		return All()
	}

	switch res {
	case ResourceSchools:
		if a.SchoolID == nil {
			return None()
		}
		return Eq("s.id", *a.SchoolID)

	case ResourceClasses:
		return a.school("c.school_id")

	case ResourceSections:
		return a.school("sec.school_id")

	case ResourceSubjects:
		return a.school("sub.school_id")

	case ResourceActors:
		return a.school("act.school_id")

	case ResourceProfiles:
		return a.school("p.school_id")

	case ResourceExams:
		switch a.Role {
		case model.RolePrincipal:
			return a.school("e.school_id")
		case model.RoleTeacher:
			// Subject taught OR section assigned — deliberately OR semantics.
			return And(a.school("e.school_id"),
				Or(In("e.subject_id", a.SubjectIDs), In("e.section_id", a.SectionIDs)))
		case model.RoleStudent:
			return a.studentSection("e.section_id")
		case model.RoleParent:
			return In("e.section_id", a.ChildSectionIDs)
		}

	case ResourceMarks:
		switch a.Role {
		case model.RolePrincipal:
			return a.school("e.school_id")
		case model.RoleTeacher:
			return And(a.school("e.school_id"),
				Or(In("e.subject_id", a.SubjectIDs), In("e.section_id", a.SectionIDs)))
		case model.RoleStudent:
			return Eq("m.student_id", a.ProfileID)
		case model.RoleParent:
			return In("m.student_id", a.ChildIDs)
		}

	case ResourceTimetable:
		switch a.Role {
		case model.RolePrincipal, model.RoleTeacher:
			return a.school("t.school_id")
		case model.RoleStudent:
			return a.studentClass("t.class_id")
		case model.RoleParent:
			return In("t.class_id", a.ChildClassIDs)
		}

	case ResourceAttendance:
		switch a.Role {
		case model.RolePrincipal:
			return a.school("st.school_id")
		case model.RoleTeacher:
			// Records they marked OR records of their assigned sections.
			return Or(Eq("a.marked_by", a.ID), In("st.section_id", a.SectionIDs))
		case model.RoleStudent:
			return Eq("a.student_id", a.ProfileID)
		case model.RoleParent:
			return In("a.student_id", a.ChildIDs)
		}

	case ResourceAssignments:
		switch a.Role {
		case model.RolePrincipal:
			return a.school("asg.school_id")
		case model.RoleTeacher:
			// Ownership only — narrower than the exam scope on purpose.
			return Eq("asg.teacher_id", a.ProfileID)
		case model.RoleStudent:
			return a.studentSection("asg.section_id")
		case model.RoleParent:
			return In("asg.section_id", a.ChildSectionIDs)
		}

	case ResourceSubmissions:
		switch a.Role {
		case model.RolePrincipal:
			return a.school("asg.school_id")
		case model.RoleTeacher:
			return Eq("asg.teacher_id", a.ProfileID)
		case model.RoleStudent:
			return Eq("sm.student_id", a.ProfileID)
		case model.RoleParent:
			return In("sm.student_id", a.ChildIDs)
		}

	case ResourceFeeStructures:
		switch a.Role {
		case model.RolePrincipal, model.RoleStudent, model.RoleParent:
			return a.school("fs.school_id")
		case model.RoleTeacher:
			return None()
		}

	case ResourceFeeRecords:
		switch a.Role {
		case model.RolePrincipal:
			return a.school("st.school_id")
		case model.RoleTeacher:
			return None()
		case model.RoleStudent:
			return Eq("f.student_id", a.ProfileID)
		case model.RoleParent:
			return In("f.student_id", a.ChildIDs)
		}

	case ResourceNotices:
		switch a.Role {
		case model.RolePrincipal, model.RoleTeacher:
			return a.school("n.school_id")
		case model.RoleStudent:
			return And(a.school("n.school_id"), noticeTargets(classIDList(a.ClassID)))
		case model.RoleParent:
			return And(a.school("n.school_id"), noticeTargets(a.ChildClassIDs))
		}

	case ResourceLearningMaterials:
		switch a.Role {
		case model.RolePrincipal, model.RoleTeacher:
			return a.school("res.school_id")
		case model.RoleStudent:
			// Public material for their class, or with no class binding.
			return And(a.school("res.school_id"), Eq("res.is_public", true),
				Or(Expr("res.class_id IS NULL"), a.studentClass("res.class_id")))
		case model.RoleParent:
			return And(a.school("res.school_id"), Eq("res.is_public", true),
				Or(Expr("res.class_id IS NULL"), In("res.class_id", a.ChildClassIDs)))
		}

	case ResourceBehaviorCategories:
		return a.school("bc.school_id")

	case ResourceBehaviorLogs:
		switch a.Role {
		case model.RolePrincipal:
			return a.school("st.school_id")
		case model.RoleTeacher:
			return Or(Eq("b.reported_by", a.ID), In("st.section_id", a.SectionIDs))
		case model.RoleStudent:
			return Eq("b.student_id", a.ProfileID)
		case model.RoleParent:
			return In("b.student_id", a.ChildIDs)
		}

	case ResourceMessages:
		// Everyone sees what they sent or received; principals do not get
		// school-wide mailbox access.
		return Or(
			Eq("msg.sender_id", a.ID),
			Expr("EXISTS (SELECT 1 FROM message_recipients mr WHERE mr.message_id = msg.id AND mr.recipient_id = ?)", a.ID),
		)
	}

	return None()
}

// noticeTargets matches notices that are school-wide (no target rows) or
// target one of the given classes.
func noticeTargets(classIDs []uuid.UUID) *Predicate {
	schoolWide := Expr("NOT EXISTS (SELECT 1 FROM notice_targets nt WHERE nt.notice_id = n.id)")
	if len(classIDs) == 0 {
		return schoolWide
	}
	targeted := Expr("EXISTS (SELECT 1 FROM notice_targets nt WHERE nt.notice_id = n.id AND nt.class_id = ANY(?))", classIDs)
	return Or(schoolWide, targeted)
}

// classIDList lifts an optional class id into a slice for target matching.
func classIDList(id *uuid.UUID) []uuid.UUID {
	if id == nil {
		return nil
	}
	return []uuid.UUID{*id}
}
