package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// AssignmentRepository handles assignment and submission data access.
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

const assignmentColumns = `asg.id, asg.school_id, asg.title, asg.description, asg.class_id, asg.section_id, asg.subject_id, asg.teacher_id, asg.assigned_date, asg.due_date, asg.max_marks, asg.status, asg.instructions, asg.attachment, asg.created_at, asg.updated_at`

func scanAssignment(row interface{ Scan(...interface{}) error }) (*model.Assignment, error) {
	a := &model.Assignment{}
	var attachment []byte
	err := row.Scan(&a.ID, &a.SchoolID, &a.Title, &a.Description, &a.ClassID, &a.SectionID, &a.SubjectID,
		&a.TeacherID, &a.AssignedDate, &a.DueDate, &a.MaxMarks, &a.Status, &a.Instructions,
		&attachment, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(attachment) > 0 {
		if err := json.Unmarshal(attachment, &a.Attachment); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func attachmentJSON(att *model.Attachment) (interface{}, error) {
	if att == nil {
		return nil, nil
	}
	return json.Marshal(att)
}

// GetByID retrieves an assignment by ID within the given scope.
func (r *AssignmentRepository) GetByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.Assignment, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("asg.id = ?", id)
	return scanAssignment(r.pool.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM assignments asg`+w.clause(), w.args...))
}

// List retrieves assignments within the given scope, newest due first.
func (r *AssignmentRepository) List(ctx context.Context, scope *policy.Predicate, subjectID *uuid.UUID, status *model.AssignmentStatus, limit, offset int) ([]model.Assignment, int, error) {
	w := newWhere()
	w.addScope(scope)
	if subjectID != nil {
		w.add("asg.subject_id = ?", *subjectID)
	}
	if status != nil {
		w.add("asg.status = ?", *status)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM assignments asg`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+assignmentColumns+` FROM assignments asg`+w.clause()+
			` ORDER BY asg.due_date DESC LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, 0, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, total, rows.Err()
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	att, err := attachmentJSON(a.Attachment)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO assignments (school_id, title, description, class_id, section_id, subject_id, teacher_id, assigned_date, due_date, max_marks, status, instructions, attachment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		a.SchoolID, a.Title, a.Description, a.ClassID, a.SectionID, a.SubjectID, a.TeacherID,
		a.AssignedDate, a.DueDate, a.MaxMarks, a.Status, a.Instructions, att,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// Update modifies an assignment.
func (r *AssignmentRepository) Update(ctx context.Context, a *model.Assignment) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE assignments
		 SET title = $1, description = $2, due_date = $3, max_marks = $4, status = $5,
		     instructions = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		a.Title, a.Description, a.DueDate, a.MaxMarks, a.Status, a.Instructions, a.ID,
	)
	return err
}

const submissionColumns = `sm.id, sm.assignment_id, sm.student_id, sm.submission_text, sm.attachment, sm.submitted_at, sm.status, sm.is_late, sm.marks_obtained, sm.teacher_feedback, sm.graded_at, sm.graded_by`

func scanSubmission(row interface{ Scan(...interface{}) error }) (*model.AssignmentSubmission, error) {
	s := &model.AssignmentSubmission{}
	var attachment []byte
	err := row.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.SubmissionText, &attachment,
		&s.SubmittedAt, &s.Status, &s.IsLate, &s.MarksObtained, &s.Feedback, &s.GradedAt, &s.GradedBy)
	if err != nil {
		return nil, err
	}
	if len(attachment) > 0 {
		if err := json.Unmarshal(attachment, &s.Attachment); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// GetSubmission retrieves one student's submission for an assignment.
func (r *AssignmentRepository) GetSubmission(ctx context.Context, assignmentID, studentID uuid.UUID) (*model.AssignmentSubmission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM assignment_submissions sm
		 WHERE sm.assignment_id = $1 AND sm.student_id = $2`, assignmentID, studentID))
}

// GetSubmissionByID retrieves a submission within the given scope.
func (r *AssignmentRepository) GetSubmissionByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.AssignmentSubmission, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("sm.id = ?", id)
	return scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM assignment_submissions sm
		 JOIN assignments asg ON asg.id = sm.assignment_id`+w.clause(), w.args...))
}

// UpsertSubmission writes a student's submission. Re-submitting before
// grading replaces text, attachment and timing in place.
func (r *AssignmentRepository) UpsertSubmission(ctx context.Context, s *model.AssignmentSubmission) error {
	att, err := attachmentJSON(s.Attachment)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO assignment_submissions (assignment_id, student_id, submission_text, attachment, submitted_at, status, is_late)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (assignment_id, student_id) DO UPDATE
		 SET submission_text = EXCLUDED.submission_text,
		     attachment = EXCLUDED.attachment,
		     submitted_at = EXCLUDED.submitted_at,
		     status = EXCLUDED.status,
		     is_late = EXCLUDED.is_late
		 RETURNING id`,
		s.AssignmentID, s.StudentID, s.SubmissionText, att, s.SubmittedAt, s.Status, s.IsLate,
	).Scan(&s.ID)
}

// GradeSubmission records marks and feedback on a submission.
func (r *AssignmentRepository) GradeSubmission(ctx context.Context, s *model.AssignmentSubmission) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE assignment_submissions
		 SET status = $1, marks_obtained = $2, teacher_feedback = $3, graded_at = CURRENT_TIMESTAMP, graded_by = $4
		 WHERE id = $5`,
		s.Status, s.MarksObtained, s.Feedback, s.GradedBy, s.ID,
	)
	return err
}

// ListSubmissions retrieves all submissions for an assignment.
func (r *AssignmentRepository) ListSubmissions(ctx context.Context, assignmentID uuid.UUID) ([]model.AssignmentSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+submissionColumns+` FROM assignment_submissions sm
		 WHERE sm.assignment_id = $1 ORDER BY sm.submitted_at`, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []model.AssignmentSubmission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *s)
	}
	return submissions, rows.Err()
}

// Stats computes submission and grading counts for an assignment against its
// section roster.
func (r *AssignmentRepository) Stats(ctx context.Context, assignmentID uuid.UUID) (*model.AssignmentStats, error) {
	s := &model.AssignmentStats{AssignmentID: assignmentID}
	err := r.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM student_profiles st
		    JOIN assignments asg ON asg.section_id = st.section_id
		    WHERE asg.id = $1 AND st.is_active),
		   COUNT(sm.id),
		   COUNT(sm.id) FILTER (WHERE sm.status = 'graded')
		 FROM assignment_submissions sm WHERE sm.assignment_id = $1`,
		assignmentID,
	).Scan(&s.TotalStudents, &s.SubmittedCount, &s.GradedCount)
	if err != nil {
		return nil, err
	}
	if s.TotalStudents > 0 {
		s.SubmissionRate = float64(s.SubmittedCount) / float64(s.TotalStudents) * 100
	}
	if s.SubmittedCount > 0 {
		s.GradedRate = float64(s.GradedCount) / float64(s.SubmittedCount) * 100
	}
	return s, nil
}

// SubmissionReport lists every student of the assignment's section with their
// submission state. Students without a submission appear with Submitted=false.
func (r *AssignmentRepository) SubmissionReport(ctx context.Context, assignmentID uuid.UUID) ([]model.SubmissionReportRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT st.id, st.first_name || ' ' || st.last_name,
		        sm.id IS NOT NULL, COALESCE(sm.is_late, FALSE),
		        COALESCE(sm.status::text, ''), sm.marks_obtained, sm.submitted_at
		 FROM assignments asg
		 JOIN student_profiles st ON st.section_id = asg.section_id AND st.is_active
		 LEFT JOIN assignment_submissions sm ON sm.assignment_id = asg.id AND sm.student_id = st.id
		 WHERE asg.id = $1
		 ORDER BY st.last_name, st.first_name`, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []model.SubmissionReportRow
	for rows.Next() {
		var row model.SubmissionReportRow
		if err := rows.Scan(&row.StudentID, &row.StudentName, &row.Submitted, &row.IsLate,
			&row.Status, &row.MarksObtained, &row.SubmittedAt); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
