package api

import (
	"net/http"
	"time"

	"codetrail/internal/api/handler"
	"codetrail/internal/app/service"
	"codetrail/internal/common/security"
	"codetrail/internal/domain/curriculum"
	"codetrail/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	catalog curriculum.Catalog,
	userRepo repository.UserRepository,
	authService *service.AuthService,
	progressService *service.ProgressService,
	submissionService *service.SubmissionService,
	unsubmitService *service.UnsubmitService,
	teamService *service.TeamService,
	reviewService *service.ReviewService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// JWT verification for the token-protected surfaces (auth, teams). The
	// assignment API authenticates with the per-user key instead.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(authService)
	r.Route("/auth", authHandler.RegisterRoutes)

	// Public exercise content
	assignmentHandler := handler.NewAssignmentHandler(catalog)
	r.Route("/assignments", assignmentHandler.RegisterRoutes)

	// Per-user assignment surface (key-authenticated)
	userAssignmentHandler := handler.NewUserAssignmentHandler(progressService, submissionService, unsubmitService, userRepo)
	r.Route("/user/assignments", userAssignmentHandler.RegisterRoutes)

	// Team management (JWT-authenticated)
	teamHandler := handler.NewTeamHandler(teamService)
	r.Route("/teams", teamHandler.RegisterRoutes)

	// Reviewer webhook (public, but should be secured)
	reviewHandler := handler.NewReviewHandler(reviewService)
	r.Route("/webhook", reviewHandler.RegisterRoutes)

	return r
}
