package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/scholarspoint/coaching-admin/docs"
	"github.com/scholarspoint/coaching-admin/internal/api/handler"
	"github.com/scholarspoint/coaching-admin/internal/api/middleware"
	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
	"github.com/scholarspoint/coaching-admin/internal/core/service"
	"github.com/scholarspoint/coaching-admin/internal/core/session"
	mongodb "github.com/scholarspoint/coaching-admin/internal/infrastructure/db/mongo"
)

// Options carries everything the router needs beyond its databases.
type Options struct {
	JWTSecret       string
	SessionTTL      time.Duration
	InstitutionName string
	Logger          zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered. The session
// manager is returned alongside so main can rehydrate it and start its
// background expiry check.
func NewRouter(db *mongo.Database, rdb *redis.Client, store ports.SessionStore, opts Options) (*echo.Echo, *session.Manager) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("coaching"))

	// --- Dependencies ---
	sessions := session.NewManager(store, opts.Logger)

	authRepo := mongodb.NewAuthRepository(db)
	studentRepo := mongodb.NewStudentRepository(db)
	challanRepo := mongodb.NewChallanRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	visitRepo := mongodb.NewVisitRepository(db)
	templateRepo := mongodb.NewTemplateRepository(db)

	authService := service.NewAuthService(authRepo, sessions, opts.JWTSecret, opts.SessionTTL)
	challanService := service.NewChallanService(challanRepo, opts.Logger)
	studentService := service.NewStudentService(studentRepo, visitRepo, opts.Logger)
	paymentService := service.NewPaymentService(paymentRepo, studentRepo, opts.Logger)
	templateService := service.NewTemplateService(templateRepo, opts.Logger)
	documentService := service.NewDocumentService(paymentRepo, studentRepo, opts.InstitutionName, opts.Logger)

	authHandler := handler.NewAuthHandler(authService)
	challanHandler := handler.NewChallanHandler(challanService)
	studentHandler := handler.NewStudentHandler(studentService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	templateHandler := handler.NewTemplateHandler(templateService)
	documentHandler := handler.NewDocumentHandler(documentService)

	authMiddleware := middleware.Auth(authService)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.POST("/auth/register", authHandler.Register, authMiddleware, middleware.Guard(domain.RoleAdmin))

	// --- Dashboard routes (any authenticated role) ---
	v1 := e.Group("/v1", authMiddleware, middleware.Guard())

	v1.GET("/students", studentHandler.List)
	v1.POST("/students", studentHandler.Register)
	v1.GET("/visits", studentHandler.ListVisits)
	v1.POST("/visits", studentHandler.RecordVisit)
	v1.GET("/payments", paymentHandler.List)
	v1.POST("/payments", paymentHandler.Record)
	v1.GET("/documents/receipts/:id", documentHandler.Receipt)
	v1.GET("/documents/hall-tickets/:id", documentHandler.HallTicket)

	// --- Inventory routes (challan dispatch) ---
	v1.GET("/challans", challanHandler.List)
	v1.POST("/challans", challanHandler.Create, middleware.Guard(domain.RoleAdmin))
	v1.POST("/challans/:id/given", challanHandler.MarkGiven)
	v1.POST("/challans/:id/received", challanHandler.MarkReceived)

	// --- Template management (admin only) ---
	templates := e.Group("/v1/templates", authMiddleware, middleware.Guard(domain.RoleAdmin))
	templates.GET("", templateHandler.List)
	templates.POST("", templateHandler.Create)
	templates.PUT("/:id", templateHandler.Update)
	templates.DELETE("/:id", templateHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, sessions
}
