package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/edustack/campus-backend/internal/config"
	"github.com/edustack/campus-backend/internal/database"
	"github.com/edustack/campus-backend/internal/logger"
	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/repository"
)

// seed-demo provisions one demo school with classes, sections, subjects and
// a small roster so a fresh install has something to look at. Every account
// gets the password "password123".
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	schoolRepo := repository.NewSchoolRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	actorRepo := repository.NewActorRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash seed password")
	}
	passwordHash := string(hash)

	fmt.Println("=== Seeding Demo School ===")

	school := &model.School{
		Name:    "Riverdale High School",
		Address: "12 Riverside Avenue",
		Phone:   "+1-555-0100",
		Email:   "office@riverdale.example",
		Website: "https://riverdale.example",
	}
	if err := schoolRepo.Create(ctx, school); err != nil {
		log.Fatal().Err(err).Msg("Failed to create school")
	}
	fmt.Printf("School: %s (%s)\n", school.Name, school.ID)

	// Classes with two sections each.
	var sections []model.Section
	var classes []model.Class
	for grade := 9; grade <= 10; grade++ {
		class := &model.Class{
			SchoolID:   school.ID,
			Name:       fmt.Sprintf("Grade %d", grade),
			GradeLevel: grade,
		}
		if err := classRepo.Create(ctx, class); err != nil {
			log.Fatal().Err(err).Msg("Failed to create class")
		}
		classes = append(classes, *class)

		for _, name := range []string{"A", "B"} {
			section := &model.Section{
				ClassID:     class.ID,
				Name:        name,
				MaxCapacity: 40,
			}
			if err := classRepo.CreateSection(ctx, section); err != nil {
				log.Fatal().Err(err).Msg("Failed to create section")
			}
			sections = append(sections, *section)
		}
	}
	fmt.Printf("Classes: %d, Sections: %d\n", len(classes), len(sections))

	// Subjects.
	var subjects []model.Subject
	for _, s := range []struct{ name, code string }{
		{"Mathematics", "MATH"},
		{"English", "ENG"},
		{"Science", "SCI"},
		{"History", "HIST"},
	} {
		subject := &model.Subject{
			SchoolID: school.ID,
			Name:     s.name,
			Code:     s.code,
		}
		if err := subjectRepo.Create(ctx, subject); err != nil {
			log.Fatal().Err(err).Msg("Failed to create subject")
		}
		subjects = append(subjects, *subject)
	}
	fmt.Printf("Subjects: %d\n", len(subjects))

	// Principal.
	principalActor := newActor(ctx, log, actorRepo, "principal@riverdale.example", model.RolePrincipal, school.ID, passwordHash)
	if err := profileRepo.CreatePrincipal(ctx, &model.PrincipalProfile{
		ActorID:    principalActor.ID,
		SchoolID:   school.ID,
		EmployeeID: "EMP-001",
		FirstName:  "Helen",
		LastName:   "Cooper",
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to create principal profile")
	}

	// Teachers, one per subject, covering the first two sections.
	teacherNames := []string{"Alan Turing", "Grace Hopper", "Rosalind Franklin", "Edwin Hubble"}
	for i, subject := range subjects {
		first, last := splitName(teacherNames[i])
		email := fmt.Sprintf("%s.%s@riverdale.example", strings.ToLower(first), strings.ToLower(last))
		actor := newActor(ctx, log, actorRepo, email, model.RoleTeacher, school.ID, passwordHash)
		if err := profileRepo.CreateTeacher(ctx, &model.TeacherProfile{
			ActorID:    actor.ID,
			SchoolID:   school.ID,
			EmployeeID: fmt.Sprintf("EMP-%03d", i+2),
			FirstName:  first,
			LastName:   last,
			SubjectIDs: []uuid.UUID{subject.ID},
			SectionIDs: []uuid.UUID{sections[0].ID, sections[1].ID},
		}); err != nil {
			log.Fatal().Err(err).Msg("Failed to create teacher profile")
		}
	}

	// Students spread across the sections.
	studentNames := []string{
		"Ada Byron", "Charles Babbage", "Mary Somerville", "John Snow",
		"Emmy Noether", "Paul Erdos", "Sofia Kovalevskaya", "Leonhard Euler",
	}
	students := make([]model.StudentProfile, 0, len(studentNames))
	for i, name := range studentNames {
		first, last := splitName(name)
		section := sections[i%len(sections)]
		email := fmt.Sprintf("student%d@riverdale.example", i+1)
		actor := newActor(ctx, log, actorRepo, email, model.RoleStudent, school.ID, passwordHash)
		student := &model.StudentProfile{
			ActorID:       actor.ID,
			SchoolID:      school.ID,
			StudentNumber: fmt.Sprintf("STU-%04d", i+1),
			FirstName:     first,
			LastName:      last,
			ClassID:       section.ClassID,
			SectionID:     section.ID,
			AdmissionDate: time.Now().UTC().AddDate(0, -6, 0),
		}
		if err := profileRepo.CreateStudent(ctx, student); err != nil {
			log.Fatal().Err(err).Msg("Failed to create student profile")
		}
		students = append(students, *student)
	}
	fmt.Printf("Students: %d\n", len(students))

	// One parent per pair of students, primary guardian for both.
	parents := 0
	for i := 0; i+1 < len(students); i += 2 {
		email := fmt.Sprintf("parent%d@riverdale.example", parents+1)
		actor := newActor(ctx, log, actorRepo, email, model.RoleParent, school.ID, passwordHash)
		if err := profileRepo.CreateParent(ctx, &model.ParentProfile{
			ActorID:   actor.ID,
			SchoolID:  school.ID,
			FirstName: "Guardian",
			LastName:  fmt.Sprintf("Family%d", parents+1),
			Children: []model.ParentLink{
				{StudentID: students[i].ID, IsPrimary: true},
				{StudentID: students[i+1].ID, IsPrimary: true},
			},
		}); err != nil {
			log.Fatal().Err(err).Msg("Failed to create parent profile")
		}
		parents++
	}
	fmt.Printf("Parents: %d\n", parents)

	fmt.Println("Done. All accounts use password \"password123\".")
}

func newActor(ctx context.Context, log zerolog.Logger, repo *repository.ActorRepository, email string, role model.Role, schoolID uuid.UUID, hash string) *model.Actor {
	actor := &model.Actor{
		Email:        email,
		Role:         role,
		SchoolID:     &schoolID,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := repo.Create(ctx, actor); err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("Failed to create actor")
	}
	return actor
}

func splitName(full string) (string, string) {
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
