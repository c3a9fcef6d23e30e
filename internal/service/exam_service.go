package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
	"github.com/edustack/campus-backend/internal/repository"
)

// ExamService handles exam scheduling and mark recording.
type ExamService struct {
	examRepo    *repository.ExamRepository
	classRepo   *repository.ClassRepository
	profileRepo *repository.ProfileRepository
}

// NewExamService creates a new ExamService.
func NewExamService(examRepo *repository.ExamRepository, classRepo *repository.ClassRepository, profileRepo *repository.ProfileRepository) *ExamService {
	return &ExamService{examRepo: examRepo, classRepo: classRepo, profileRepo: profileRepo}
}

// GetByID retrieves one exam visible to the actor.
func (s *ExamService) GetByID(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*model.Exam, error) {
	if !policy.Can(actor.Role, policy.ResourceExams, policy.ActionRead) {
		return nil, ErrForbidden
	}
	exam, err := s.examRepo.GetByID(ctx, policy.Scope(actor, policy.ResourceExams), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return exam, nil
}

// List retrieves exams visible to the actor.
func (s *ExamService) List(ctx context.Context, actor *policy.Actor, classID, subjectID *uuid.UUID, limit, offset int) ([]model.Exam, int, error) {
	if !policy.Can(actor.Role, policy.ResourceExams, policy.ActionRead) {
		return nil, 0, ErrForbidden
	}
	return s.examRepo.List(ctx, policy.Scope(actor, policy.ResourceExams), classID, subjectID, limit, offset)
}

// Create schedules an exam. Teachers may only schedule within their own
// teaching bindings; the section must belong to the class and everything must
// stay inside one school.
func (s *ExamService) Create(ctx context.Context, actor *policy.Actor, req *model.CreateExamRequest) (*model.Exam, error) {
	if !policy.Can(actor.Role, policy.ResourceExams, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	if actor.SchoolID == nil {
		return nil, ErrCrossSchool
	}

	classSchool, err := s.classRepo.SchoolIDForClass(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if classSchool != *actor.SchoolID {
		return nil, ErrCrossSchool
	}
	ok, err := s.classRepo.SectionBelongsToClass(ctx, req.SectionID, req.ClassID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSectionMismatch
	}

	if actor.Role == model.RoleTeacher && !s.teacherCovers(actor, req.SubjectID, req.SectionID) {
		return nil, ErrForbidden
	}

	exam := &model.Exam{
		SchoolID:  *actor.SchoolID,
		Name:      req.Name,
		ExamType:  req.ExamType,
		ClassID:   req.ClassID,
		SectionID: req.SectionID,
		SubjectID: req.SubjectID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		MaxMarks:  req.MaxMarks,
		CreatedBy: actor.ID,
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// teacherCovers reports whether a teacher's bindings reach the exam: they
// teach the subject or are assigned the section.
func (s *ExamService) teacherCovers(actor *policy.Actor, subjectID, sectionID uuid.UUID) bool {
	for _, id := range actor.SubjectIDs {
		if id == subjectID {
			return true
		}
	}
	for _, id := range actor.SectionIDs {
		if id == sectionID {
			return true
		}
	}
	return false
}

// Update reschedules or renames an exam visible to the actor.
func (s *ExamService) Update(ctx context.Context, actor *policy.Actor, id uuid.UUID, req *model.UpdateExamRequest) (*model.Exam, error) {
	if !policy.Can(actor.Role, policy.ResourceExams, policy.ActionUpdate) {
		return nil, ErrForbidden
	}
	exam, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		exam.Name = req.Name
	}
	if req.Date != nil {
		exam.Date = *req.Date
	}
	if req.StartTime != "" {
		exam.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		exam.EndTime = req.EndTime
	}
	if req.MaxMarks != nil {
		exam.MaxMarks = *req.MaxMarks
	}

	if err := s.examRepo.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// Delete removes an exam and its marks.
func (s *ExamService) Delete(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	if !policy.Can(actor.Role, policy.ResourceExams, policy.ActionDelete) {
		return ErrForbidden
	}
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}
	return s.examRepo.Delete(ctx, id)
}

// RecordMark grades one student on an exam. Percentage and grade letter are
// derived, and re-grading the same (student, exam) updates in place. The
// student must sit in the exam's section.
func (s *ExamService) RecordMark(ctx context.Context, actor *policy.Actor, examID uuid.UUID, req *model.RecordMarkRequest) (*model.Mark, error) {
	if !policy.Can(actor.Role, policy.ResourceMarks, policy.ActionCreate) {
		return nil, ErrForbidden
	}
	exam, err := s.GetByID(ctx, actor, examID)
	if err != nil {
		return nil, err
	}
	if req.MarksObtained > exam.MaxMarks {
		return nil, ErrMarksOutOfRange
	}

	student, err := s.profileRepo.GetStudentByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if student.SectionID != exam.SectionID {
		return nil, ErrSectionMismatch
	}

	percentage := math.Round(req.MarksObtained/exam.MaxMarks*10000) / 100
	mark := &model.Mark{
		StudentID:     req.StudentID,
		ExamID:        examID,
		MarksObtained: req.MarksObtained,
		Percentage:    percentage,
		GradeLetter:   model.LetterGrade(percentage),
		Remarks:       req.Remarks,
		GradedBy:      actor.ID,
	}
	if err := s.examRepo.UpsertMark(ctx, mark); err != nil {
		return nil, err
	}
	return mark, nil
}

// ListMarksByExam retrieves the marks of one exam visible to the actor.
func (s *ExamService) ListMarksByExam(ctx context.Context, actor *policy.Actor, examID uuid.UUID) ([]model.Mark, error) {
	if !policy.Can(actor.Role, policy.ResourceMarks, policy.ActionRead) {
		return nil, ErrForbidden
	}
	return s.examRepo.ListMarksByExam(ctx, policy.Scope(actor, policy.ResourceMarks), examID)
}

// ListMarksByStudent retrieves one student's marks visible to the actor.
func (s *ExamService) ListMarksByStudent(ctx context.Context, actor *policy.Actor, studentID uuid.UUID) ([]model.Mark, error) {
	if !policy.Can(actor.Role, policy.ResourceMarks, policy.ActionRead) {
		return nil, ErrForbidden
	}
	return s.examRepo.ListMarksByStudent(ctx, policy.Scope(actor, policy.ResourceMarks), studentID)
}
