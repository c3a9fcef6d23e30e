package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/edustack/campus-backend/internal/config"
	"github.com/edustack/campus-backend/internal/handler"
	"github.com/edustack/campus-backend/internal/middleware"
	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/repository"
	"github.com/edustack/campus-backend/internal/response"
	"github.com/edustack/campus-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Actor      *handler.ActorHandler
	School     *handler.SchoolHandler
	Class      *handler.ClassHandler
	Subject    *handler.SubjectHandler
	Profile    *handler.ProfileHandler
	Exam       *handler.ExamHandler
	Timetable  *handler.TimetableHandler
	Attendance *handler.AttendanceHandler
	Assignment *handler.AssignmentHandler
	Fee        *handler.FeeHandler
	Notice     *handler.NoticeHandler
	Resource   *handler.ResourceHandler
	Behavior   *handler.BehaviorHandler
	Message    *handler.MessageHandler
	Report     *handler.ReportHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// Role guards here only short-circuit the obvious cases; the policy tables in
// the services remain the authority on every request.
func SetupRouter(
	authService *service.AuthService,
	contextService *service.ContextService,
	actorRepo *repository.ActorRepository,
	rdb *redis.Client,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(authService, actorRepo, contextService)
	staffOnly := middleware.RequireRole(model.RoleDeveloper, model.RolePrincipal, model.RoleTeacher)
	adminOnly := middleware.RequireRole(model.RoleDeveloper, model.RolePrincipal)

	// ─── Auth (public, rate limited) ───────────────────────────────────
	authLimiter := middleware.NewRateLimiter(rdb, 30, time.Minute)

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.POST("/logout", requireAuth, handlers.Auth.Logout)
		auth.GET("/me", requireAuth, handlers.Auth.Me)
	}

	// ─── WebSocket ─────────────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(requireAuth)
	{
		ws.GET("/inbox", handlers.WS.InboxStream)
	}

	// ─── API ───────────────────────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(requireAuth)
	{
		// Accounts
		api.GET("/actors", adminOnly, handlers.Actor.List)
		api.GET("/actors/:id", handlers.Actor.Get)
		api.POST("/actors", adminOnly, handlers.Actor.Create)
		api.PUT("/actors/:id", adminOnly, handlers.Actor.Update)
		api.DELETE("/actors/:id", adminOnly, handlers.Actor.Deactivate)

		// Schools
		api.GET("/schools", handlers.School.List)
		api.GET("/schools/:id", handlers.School.Get)
		api.POST("/schools", middleware.RequireRole(model.RoleDeveloper), handlers.School.Create)
		api.PUT("/schools/:id", adminOnly, handlers.School.Update)
		api.DELETE("/schools/:id", middleware.RequireRole(model.RoleDeveloper), handlers.School.Deactivate)

		// Classes and sections
		api.GET("/classes", handlers.Class.List)
		api.GET("/classes/:id", handlers.Class.Get)
		api.POST("/classes", adminOnly, handlers.Class.Create)
		api.PUT("/classes/:id", adminOnly, handlers.Class.Update)
		api.GET("/classes/:id/sections", handlers.Class.ListSections)
		api.POST("/classes/:id/sections", adminOnly, handlers.Class.CreateSection)
		api.PUT("/sections/:id", adminOnly, handlers.Class.UpdateSection)

		// Subjects
		api.GET("/subjects", handlers.Subject.List)
		api.GET("/subjects/:id", handlers.Subject.Get)
		api.POST("/subjects", adminOnly, handlers.Subject.Create)
		api.PUT("/subjects/:id", adminOnly, handlers.Subject.Update)

		// Profiles
		api.POST("/profiles/teachers", adminOnly, handlers.Profile.CreateTeacher)
		api.PUT("/profiles/teachers/:id", adminOnly, handlers.Profile.UpdateTeacher)
		api.POST("/profiles/students", adminOnly, handlers.Profile.CreateStudent)
		api.PUT("/profiles/students/:id", adminOnly, handlers.Profile.UpdateStudent)
		api.POST("/profiles/parents", adminOnly, handlers.Profile.CreateParent)
		api.POST("/profiles/principals", middleware.RequireRole(model.RoleDeveloper), handlers.Profile.CreatePrincipal)

		// Exams and marks
		api.GET("/exams", handlers.Exam.List)
		api.GET("/exams/:id", handlers.Exam.Get)
		api.POST("/exams", staffOnly, handlers.Exam.Create)
		api.PUT("/exams/:id", staffOnly, handlers.Exam.Update)
		api.DELETE("/exams/:id", staffOnly, handlers.Exam.Delete)
		api.POST("/exams/:id/marks", staffOnly, handlers.Exam.RecordMark)
		api.GET("/exams/:id/marks", handlers.Exam.ListMarks)
		api.GET("/students/:id/marks", handlers.Exam.StudentMarks)

		// Timetable
		api.GET("/timetable", handlers.Timetable.List)
		api.GET("/timetable/my-schedule", middleware.RequireRole(model.RoleTeacher), handlers.Timetable.MySchedule)
		api.POST("/timetable", adminOnly, handlers.Timetable.Create)
		api.PUT("/timetable/:id", adminOnly, handlers.Timetable.Update)
		api.DELETE("/timetable/:id", adminOnly, handlers.Timetable.Delete)

		// Attendance
		api.GET("/attendance", handlers.Attendance.List)
		api.POST("/attendance/bulk", staffOnly, handlers.Attendance.MarkBulk)
		api.GET("/attendance/summary/:student_id", handlers.Attendance.Summary)
		api.GET("/attendance/report/:class_id", staffOnly, handlers.Attendance.ClassReport)

		// Assignments
		api.GET("/assignments", handlers.Assignment.List)
		api.GET("/assignments/:id", handlers.Assignment.Get)
		api.POST("/assignments", middleware.RequireRole(model.RoleTeacher), handlers.Assignment.Create)
		api.PUT("/assignments/:id", staffOnly, handlers.Assignment.Update)
		api.POST("/assignments/:id/submit", middleware.RequireRole(model.RoleStudent), handlers.Assignment.Submit)
		api.GET("/assignments/:id/submissions", staffOnly, handlers.Assignment.ListSubmissions)
		api.GET("/assignments/:id/my-submission", middleware.RequireRole(model.RoleStudent), handlers.Assignment.MySubmission)
		api.POST("/submissions/:id/grade", staffOnly, handlers.Assignment.Grade)

		// Fees
		api.POST("/fees/structures", adminOnly, handlers.Fee.CreateStructure)
		api.GET("/fees/structures", handlers.Fee.ListStructures)
		api.POST("/fees/records", adminOnly, handlers.Fee.CreateRecord)
		api.GET("/fees/records", handlers.Fee.ListRecords)
		api.GET("/fees/records/:id", handlers.Fee.GetRecord)
		api.POST("/fees/records/:id/payments", adminOnly, handlers.Fee.MakePayment)
		api.GET("/fees/outstanding/:student_id", handlers.Fee.OutstandingSummary)

		// Notices
		api.GET("/notices", handlers.Notice.List)
		api.GET("/notices/:id", handlers.Notice.Get)
		api.POST("/notices", staffOnly, handlers.Notice.Create)
		api.PUT("/notices/:id", staffOnly, handlers.Notice.Update)
		api.DELETE("/notices/:id", staffOnly, handlers.Notice.Deactivate)

		// Learning resources
		api.GET("/resources", handlers.Resource.List)
		api.GET("/resources/:id", handlers.Resource.Get)
		api.POST("/resources", staffOnly, handlers.Resource.Create)
		api.PUT("/resources/:id", staffOnly, handlers.Resource.Update)
		api.DELETE("/resources/:id", staffOnly, handlers.Resource.Delete)

		// Behavior
		api.GET("/behavior/categories", handlers.Behavior.ListCategories)
		api.POST("/behavior/categories", adminOnly, handlers.Behavior.CreateCategory)
		api.GET("/behavior/logs", handlers.Behavior.ListLogs)
		api.GET("/behavior/logs/:id", handlers.Behavior.GetLog)
		api.POST("/behavior/logs", staffOnly, handlers.Behavior.CreateLog)
		api.PUT("/behavior/logs/:id", staffOnly, handlers.Behavior.UpdateLog)
		api.GET("/behavior/points/:student_id", handlers.Behavior.PointTotal)

		// Messaging
		api.POST("/messages", handlers.Message.Send)
		api.GET("/messages/inbox", handlers.Message.Inbox)
		api.GET("/messages/sent", handlers.Message.Sent)
		api.GET("/messages/:id", handlers.Message.Get)
		api.POST("/messages/:id/read", handlers.Message.MarkRead)

		// Reports
		api.GET("/reports/performance/:student_id", handlers.Report.StudentPerformance)
		api.GET("/reports/assignments/:id/stats", staffOnly, handlers.Report.AssignmentStats)
		api.GET("/reports/assignments/:id/submissions", staffOnly, handlers.Report.SubmissionReport)
	}

	return router
}
