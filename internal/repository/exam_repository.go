package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
)

// ExamRepository handles exam and mark data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `e.id, e.school_id, e.name, e.exam_type, e.class_id, e.section_id, e.subject_id, e.date, e.start_time, e.end_time, e.max_marks, e.created_by, e.created_at`

func scanExam(row interface{ Scan(...interface{}) error }) (*model.Exam, error) {
	e := &model.Exam{}
	err := row.Scan(&e.ID, &e.SchoolID, &e.Name, &e.ExamType, &e.ClassID, &e.SectionID, &e.SubjectID,
		&e.Date, &e.StartTime, &e.EndTime, &e.MaxMarks, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetByID retrieves an exam by ID within the given scope.
func (r *ExamRepository) GetByID(ctx context.Context, scope *policy.Predicate, id uuid.UUID) (*model.Exam, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("e.id = ?", id)
	return scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams e`+w.clause(), w.args...))
}

// List retrieves exams within the given scope with optional filters.
func (r *ExamRepository) List(ctx context.Context, scope *policy.Predicate, classID, subjectID *uuid.UUID, limit, offset int) ([]model.Exam, int, error) {
	w := newWhere()
	w.addScope(scope)
	if classID != nil {
		w.add("e.class_id = ?", *classID)
	}
	if subjectID != nil {
		w.add("e.subject_id = ?", *subjectID)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exams e`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limPh, offPh := w.bind(limit), w.bind(offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+` FROM exams e`+w.clause()+
			` ORDER BY e.date DESC, e.start_time LIMIT `+limPh+` OFFSET `+offPh, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, 0, err
		}
		exams = append(exams, *e)
	}
	return exams, total, rows.Err()
}

// Create inserts a new exam.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (school_id, name, exam_type, class_id, section_id, subject_id, date, start_time, end_time, max_marks, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		e.SchoolID, e.Name, e.ExamType, e.ClassID, e.SectionID, e.SubjectID,
		e.Date, e.StartTime, e.EndTime, e.MaxMarks, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt)
}

// Update modifies an exam's schedule fields.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams SET name = $1, date = $2, start_time = $3, end_time = $4, max_marks = $5 WHERE id = $6`,
		e.Name, e.Date, e.StartTime, e.EndTime, e.MaxMarks, e.ID,
	)
	return err
}

// Delete removes an exam and cascades to its marks.
func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	return err
}

const markColumns = `m.id, m.student_id, m.exam_id, m.marks_obtained, m.percentage, m.grade_letter, m.remarks, m.graded_by, m.graded_at`

func scanMark(row interface{ Scan(...interface{}) error }) (*model.Mark, error) {
	m := &model.Mark{}
	err := row.Scan(&m.ID, &m.StudentID, &m.ExamID, &m.MarksObtained, &m.Percentage, &m.GradeLetter,
		&m.Remarks, &m.GradedBy, &m.GradedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UpsertMark records a student's result for an exam. Grading the same
// (student, exam) again replaces the previous mark in place.
func (r *ExamRepository) UpsertMark(ctx context.Context, m *model.Mark) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO marks (student_id, exam_id, marks_obtained, percentage, grade_letter, remarks, graded_by, graded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		 ON CONFLICT (student_id, exam_id) DO UPDATE
		 SET marks_obtained = EXCLUDED.marks_obtained,
		     percentage = EXCLUDED.percentage,
		     grade_letter = EXCLUDED.grade_letter,
		     remarks = EXCLUDED.remarks,
		     graded_by = EXCLUDED.graded_by,
		     graded_at = CURRENT_TIMESTAMP
		 RETURNING id, graded_at`,
		m.StudentID, m.ExamID, m.MarksObtained, m.Percentage, m.GradeLetter, m.Remarks, m.GradedBy,
	).Scan(&m.ID, &m.GradedAt)
}

// ListMarksByExam retrieves all marks recorded for an exam within scope.
func (r *ExamRepository) ListMarksByExam(ctx context.Context, scope *policy.Predicate, examID uuid.UUID) ([]model.Mark, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("m.exam_id = ?", examID)

	rows, err := r.pool.Query(ctx,
		`SELECT `+markColumns+` FROM marks m JOIN exams e ON e.id = m.exam_id`+w.clause()+
			` ORDER BY m.graded_at`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMarks(rows)
}

// ListMarksByStudent retrieves a student's marks within scope.
func (r *ExamRepository) ListMarksByStudent(ctx context.Context, scope *policy.Predicate, studentID uuid.UUID) ([]model.Mark, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("m.student_id = ?", studentID)

	rows, err := r.pool.Query(ctx,
		`SELECT `+markColumns+` FROM marks m JOIN exams e ON e.id = m.exam_id`+w.clause()+
			` ORDER BY e.date DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMarks(rows)
}

// StudentPerformance groups a student's marks by subject within scope, with
// per-subject averages. Subjects without marks are absent.
func (r *ExamRepository) StudentPerformance(ctx context.Context, scope *policy.Predicate, studentID uuid.UUID) (*model.StudentPerformance, error) {
	w := newWhere()
	w.addScope(scope)
	w.add("m.student_id = ?", studentID)

	rows, err := r.pool.Query(ctx,
		`SELECT sub.id, sub.name, `+markColumns+`
		 FROM marks m
		 JOIN exams e ON e.id = m.exam_id
		 JOIN subjects sub ON sub.id = e.subject_id`+w.clause()+
			` ORDER BY sub.name, e.date`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perf := &model.StudentPerformance{StudentID: studentID}
	for rows.Next() {
		var subjectID uuid.UUID
		var subjectName string
		m := model.Mark{}
		if err := rows.Scan(&subjectID, &subjectName, &m.ID, &m.StudentID, &m.ExamID,
			&m.MarksObtained, &m.Percentage, &m.GradeLetter, &m.Remarks, &m.GradedBy, &m.GradedAt); err != nil {
			return nil, err
		}
		n := len(perf.Subjects)
		if n == 0 || perf.Subjects[n-1].SubjectID != subjectID {
			perf.Subjects = append(perf.Subjects, model.SubjectPerformance{
				SubjectID:   subjectID,
				SubjectName: subjectName,
			})
			n++
		}
		perf.Subjects[n-1].Marks = append(perf.Subjects[n-1].Marks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range perf.Subjects {
		sp := &perf.Subjects[i]
		sp.ExamCount = len(sp.Marks)
		var sum float64
		for _, m := range sp.Marks {
			sum += m.Percentage
		}
		if sp.ExamCount > 0 {
			sp.AveragePercentage = sum / float64(sp.ExamCount)
			sp.GradeLetter = model.LetterGrade(sp.AveragePercentage)
		}
	}
	return perf, nil
}

func collectMarks(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}) ([]model.Mark, error) {
	var marks []model.Mark
	for rows.Next() {
		m, err := scanMark(rows)
		if err != nil {
			return nil, err
		}
		marks = append(marks, *m)
	}
	return marks, rows.Err()
}
