package policy

import (
	"github.com/google/uuid"

	"github.com/edustack/campus-backend/internal/model"
)

// Actor is the explicit policy context for one authenticated request. It is
// resolved once per request from the token plus profile linkage and passed
// into every Can/Scope call — there is no implicit request-global state.
//
// Linkage fields are populated per role: ClassID/SectionID for students,
// SectionIDs/SubjectIDs for teachers, Child* for parents. When the
// parent-visibility policy is "primary", Child* only contains
// primary-guardian links.
type Actor struct {
	ID        uuid.UUID
	Role      model.Role
	SchoolID  *uuid.UUID
	ProfileID uuid.UUID

	// Student linkage.
	ClassID   *uuid.UUID
	SectionID *uuid.UUID

	// Teacher linkage.
	SectionIDs []uuid.UUID
	SubjectIDs []uuid.UUID

	// Parent linkage.
	ChildIDs        []uuid.UUID
	ChildClassIDs   []uuid.UUID
	ChildSectionIDs []uuid.UUID
}

// school returns a school-equality predicate on col, or None when the actor
// has no school (principals et al. are always tenant-bound).
func (a *Actor) school(col string) *Predicate {
	if a.SchoolID == nil {
		return None()
	}
	return Eq(col, *a.SchoolID)
}

// studentSection returns an equality predicate on the actor's own section.
func (a *Actor) studentSection(col string) *Predicate {
	if a.SectionID == nil {
		return None()
	}
	return Eq(col, *a.SectionID)
}

// studentClass returns an equality predicate on the actor's own class.
func (a *Actor) studentClass(col string) *Predicate {
	if a.ClassID == nil {
		return None()
	}
	return Eq(col, *a.ClassID)
}
