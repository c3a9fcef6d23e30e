package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
	"github.com/edustack/campus-backend/internal/repository"
)

// ProfileService handles role profile management. Profiles bind actors into
// the org hierarchy, so every write revalidates tenancy and invalidates the
// actor's cached policy context.
type ProfileService struct {
	profileRepo *repository.ProfileRepository
	actorRepo   *repository.ActorRepository
	classRepo   *repository.ClassRepository
	classSvc    *ClassService
	contextSvc  *ContextService
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo *repository.ProfileRepository, actorRepo *repository.ActorRepository, classRepo *repository.ClassRepository, classSvc *ClassService, contextSvc *ContextService) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		actorRepo:   actorRepo,
		classRepo:   classRepo,
		classSvc:    classSvc,
		contextSvc:  contextSvc,
	}
}

// targetActor loads the actor a profile attaches to and verifies role and
// school consistency against the caller.
func (s *ProfileService) targetActor(ctx context.Context, actor *policy.Actor, actorID uuid.UUID, wantRole model.Role) (*model.Actor, error) {
	target, err := s.actorRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if target.Role != wantRole {
		return nil, ErrForbidden
	}
	if target.SchoolID == nil {
		return nil, ErrCrossSchool
	}
	if actor.Role != model.RoleDeveloper {
		if actor.SchoolID == nil || *actor.SchoolID != *target.SchoolID {
			return nil, ErrCrossSchool
		}
	}
	return target, nil
}

// CreateTeacher attaches a teacher profile to a teacher actor.
func (s *ProfileService) CreateTeacher(ctx context.Context, actor *policy.Actor, req *model.CreateTeacherProfileRequest) (*model.TeacherProfile, error) {
	if !policy.Can(actor.Role, policy.ResourceProfiles, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	target, err := s.targetActor(ctx, actor, req.ActorID, model.RoleTeacher)
	if err != nil {
		return nil, err
	}

	p := &model.TeacherProfile{
		ActorID:    target.ID,
		SchoolID:   *target.SchoolID,
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		SubjectIDs: req.SubjectIDs,
		SectionIDs: req.SectionIDs,
	}
	if err := s.profileRepo.CreateTeacher(ctx, p); err != nil {
		return nil, err
	}
	s.contextSvc.Invalidate(ctx, target.ID)
	return p, nil
}

// UpdateTeacher modifies a teacher profile and its assignment lists.
func (s *ProfileService) UpdateTeacher(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateTeacherProfileRequest) (*model.TeacherProfile, error) {
	if !policy.Can(actor.Role, policy.ResourceProfiles, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	p, err := s.profileRepo.GetTeacherByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.Role != model.RoleDeveloper && (actor.SchoolID == nil || *actor.SchoolID != p.SchoolID) {
		return nil, ErrNotFound
	}

	if req.FirstName != "" {
		p.FirstName = req.FirstName
	}
	if req.LastName != "" {
		p.LastName = req.LastName
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.profileRepo.UpdateTeacher(ctx, p, req.SubjectIDs, req.SectionIDs); err != nil {
		return nil, err
	}
	s.contextSvc.Invalidate(ctx, p.ActorID)
	return s.profileRepo.GetTeacherByID(ctx, id)
}

// CreateStudent attaches a student profile to a student actor. The section
// must belong to the class, both must be in the actor's school, and the
// section must have room.
func (s *ProfileService) CreateStudent(ctx context.Context, actor *policy.Actor, req *model.CreateStudentProfileRequest) (*model.StudentProfile, error) {
	if !policy.Can(actor.Role, policy.ResourceProfiles, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	target, err := s.targetActor(ctx, actor, req.ActorID, model.RoleStudent)
	if err != nil {
		return nil, err
	}

	if err := s.validatePlacement(ctx, *target.SchoolID, req.ClassID, req.SectionID); err != nil {
		return nil, err
	}
	if err := s.classSvc.EnsureCapacity(ctx, req.SectionID); err != nil {
		return nil, err
	}

	p := &model.StudentProfile{
		ActorID:       target.ID,
		SchoolID:      *target.SchoolID,
		StudentNumber: req.StudentNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ClassID:       req.ClassID,
		SectionID:     req.SectionID,
		AdmissionDate: req.AdmissionDate,
	}
	if err := s.profileRepo.CreateStudent(ctx, p); err != nil {
		return nil, err
	}
	s.contextSvc.Invalidate(ctx, target.ID)
	return p, nil
}

// UpdateStudent moves or renames a student. A section move re-checks
// placement and capacity.
func (s *ProfileService) UpdateStudent(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateStudentProfileRequest) (*model.StudentProfile, error) {
	if !policy.Can(actor.Role, policy.ResourceProfiles, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	p, err := s.profileRepo.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.Role != model.RoleDeveloper && (actor.SchoolID == nil || *actor.SchoolID != p.SchoolID) {
		return nil, ErrNotFound
	}

	if req.FirstName != "" {
		p.FirstName = req.FirstName
	}
	if req.LastName != "" {
		p.LastName = req.LastName
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	classID, sectionID := p.ClassID, p.SectionID
	if req.ClassID != nil {
		classID = *req.ClassID
	}
	if req.SectionID != nil {
		sectionID = *req.SectionID
	}
	if classID != p.ClassID || sectionID != p.SectionID {
		if err := s.validatePlacement(ctx, p.SchoolID, classID, sectionID); err != nil {
			return nil, err
		}
		if sectionID != p.SectionID {
			if err := s.classSvc.EnsureCapacity(ctx, sectionID); err != nil {
				return nil, err
			}
		}
		p.ClassID, p.SectionID = classID, sectionID
	}

	if err := s.profileRepo.UpdateStudent(ctx, p); err != nil {
		return nil, err
	}
	s.contextSvc.Invalidate(ctx, p.ActorID)
	return p, nil
}

// validatePlacement checks the class belongs to the school and the section
// belongs to the class.
func (s *ProfileService) validatePlacement(ctx context.Context, schoolID, classID, sectionID uuid.UUID) error {
	classSchool, err := s.classRepo.SchoolIDForClass(ctx, classID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if classSchool != schoolID {
		return ErrCrossSchool
	}
	ok, err := s.classRepo.SectionBelongsToClass(ctx, sectionID, classID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSectionMismatch
	}
	return nil
}

// CreateParent attaches a parent profile with its child links. Every linked
// child must be a student of the same school.
func (s *ProfileService) CreateParent(ctx context.Context, actor *policy.Actor, req *model.CreateParentProfileRequest) (*model.ParentProfile, error) {
	if !policy.Can(actor.Role, policy.ResourceProfiles, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	target, err := s.targetActor(ctx, actor, req.ActorID, model.RoleParent)
	if err != nil {
		return nil, err
	}

	for _, link := range req.Children {
		child, err := s.profileRepo.GetStudentByID(ctx, link.StudentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if child.SchoolID != *target.SchoolID {
			return nil, ErrCrossSchool
		}
	}

	p := &model.ParentProfile{
		ActorID:    target.ID,
		SchoolID:   *target.SchoolID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Occupation: req.Occupation,
		Children:   req.Children,
	}
	if err := s.profileRepo.CreateParent(ctx, p); err != nil {
		return nil, err
	}
	s.contextSvc.Invalidate(ctx, target.ID)
	return p, nil
}

// CreatePrincipal attaches a principal profile to a principal actor.
func (s *ProfileService) CreatePrincipal(ctx context.Context, actor *policy.Actor, req *model.CreatePrincipalProfileRequest) (*model.PrincipalProfile, error) {
	if !policy.Can(actor.Role, policy.ResourceProfiles, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	target, err := s.targetActor(ctx, actor, req.ActorID, model.RolePrincipal)
	if err != nil {
		return nil, err
	}

	p := &model.PrincipalProfile{
		ActorID:    target.ID,
		SchoolID:   *target.SchoolID,
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	}
	if err := s.profileRepo.CreatePrincipal(ctx, p); err != nil {
		return nil, err
	}
	s.contextSvc.Invalidate(ctx, target.ID)
	return p, nil
}
