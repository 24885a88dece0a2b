// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authfeature "github.com/dalemusser/surveyhub/internal/app/features/authapi"
	filesfeature "github.com/dalemusser/surveyhub/internal/app/features/files"
	healthfeature "github.com/dalemusser/surveyhub/internal/app/features/health"
	municipalitiesfeature "github.com/dalemusser/surveyhub/internal/app/features/municipalities"
	questionnairesfeature "github.com/dalemusser/surveyhub/internal/app/features/questionnaires"
	responsesfeature "github.com/dalemusser/surveyhub/internal/app/features/responses"
	teamsfeature "github.com/dalemusser/surveyhub/internal/app/features/teams"
	usersfeature "github.com/dalemusser/surveyhub/internal/app/features/users"
	"github.com/dalemusser/surveyhub/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. SurveyHub creates the token manager,
// applies the principal-loading middleware globally, and mounts one
// feature router per API area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.SurveyHubMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads the Principal into context when a
	// valid bearer token is presented. Role gates live in each feature's
	// Routes.
	r.Use(tokens.LoadPrincipal)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.SurveyHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	authHandler := authfeature.NewHandler(db, logger, tokens)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// User and team management
	usersHandler := usersfeature.NewHandler(db, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	teamsHandler := teamsfeature.NewHandler(db, logger)
	r.Mount("/teams", teamsfeature.Routes(teamsHandler))

	// Surveys
	questionnairesHandler := questionnairesfeature.NewHandler(db, logger)
	r.Mount("/questionnaires", questionnairesfeature.Routes(questionnairesHandler))

	responsesHandler := responsesfeature.NewHandler(db, logger)
	r.Mount("/responses", responsesfeature.Routes(responsesHandler))

	municipalitiesHandler := municipalitiesfeature.NewHandler(db, logger)
	r.Mount("/municipalities", municipalitiesfeature.Routes(municipalitiesHandler))

	// File attachments
	filesHandler := filesfeature.NewHandler(db, logger, appCfg.UploadsOriginalsDir, appCfg.UploadsOptimizedDir)
	filesHandler.OptimizeUploads = appCfg.OptimizeUploads
	r.Mount("/files", filesfeature.Routes(filesHandler))

	return r, nil
}
