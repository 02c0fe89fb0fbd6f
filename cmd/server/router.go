package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tally-api/internal/api"
	apiMiddleware "github.com/phrazzld/tally-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.jwtService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	planHandler := api.NewPlanHandler(app.logger)
	exerciseHandler := api.NewExerciseHandler(app.exerciseService, app.logger)
	homeworkHandler := api.NewHomeworkHandler(app.homeworkService, app.logger)
	leaderboardHandler := api.NewLeaderboardHandler(app.leaderboardService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/token", authHandler.IssueToken)
		r.Get("/plans/{operation}", planHandler.GetPlan)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/exercises", exerciseHandler.StartExercise)
			r.Get("/exercises/{id}", exerciseHandler.GetExercise)
			r.Post("/exercises/{id}/input", exerciseHandler.SubmitInput)
			r.Post("/exercises/{id}/action", exerciseHandler.PerformAction)
			r.Post("/exercises/{id}/reset", exerciseHandler.ResetExercise)

			r.Get("/leaderboard", leaderboardHandler.GetLeaderboard)
			r.Get("/results", leaderboardHandler.GetHistory)

			r.Post("/homework", homeworkHandler.CreateHomework)
			r.Get("/homework/{id}", homeworkHandler.GetHomework)
			r.Get("/homework/{id}/report", homeworkHandler.GetReport)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
