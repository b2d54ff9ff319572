// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	authfeature "github.com/dalemusser/trainhub/internal/app/features/auth"
	challengesfeature "github.com/dalemusser/trainhub/internal/app/features/challenges"
	galleryfeature "github.com/dalemusser/trainhub/internal/app/features/gallery"
	healthfeature "github.com/dalemusser/trainhub/internal/app/features/health"
	lifegoalsfeature "github.com/dalemusser/trainhub/internal/app/features/lifegoals"
	plansfeature "github.com/dalemusser/trainhub/internal/app/features/plans"
	profilefeature "github.com/dalemusser/trainhub/internal/app/features/profile"
	progressfeature "github.com/dalemusser/trainhub/internal/app/features/progress"
	todosfeature "github.com/dalemusser/trainhub/internal/app/features/todos"
	"github.com/dalemusser/trainhub/internal/app/system/mailer"
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// TrainHub is a pure JSON API: every feature router speaks the shared
// response envelope, and the token middleware guards everything except
// signup, login, verification, and health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := token.NewManager(appCfg.JWTSecret, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	store, err := buildStorage(appCfg, logger)
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}

	mail := mailer.NewSMTPSender(
		appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName,
		logger,
	)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication (public)
	authHandler := authfeature.NewHandler(deps.MongoDB, tokens, mail, appCfg.OTPExpiry, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Workout plan catalog
	plansHandler := plansfeature.NewHandler(deps.MongoDB, logger)
	r.Mount("/plans", plansfeature.Routes(plansHandler, tokens))
	r.Mount("/catalog", plansfeature.CatalogRoutes(plansHandler, tokens))

	// Per-user plan progress
	progressHandler := progressfeature.NewHandler(deps.MongoDB, logger)
	r.Mount("/progress", progressfeature.Routes(progressHandler, tokens))

	// Challenges and daily tasks
	challengesHandler := challengesfeature.NewHandler(deps.MongoDB, logger)
	r.Mount("/challenges", challengesfeature.Routes(challengesHandler, tokens))

	// Personal lists
	todosHandler := todosfeature.NewHandler(deps.MongoDB, logger)
	r.Mount("/todos", todosfeature.Routes(todosHandler, tokens))

	goalsHandler := lifegoalsfeature.NewHandler(deps.MongoDB, logger)
	r.Mount("/life-goals", lifegoalsfeature.Routes(goalsHandler, tokens))

	// Photo gallery
	galleryHandler := galleryfeature.NewHandler(deps.MongoDB, store, logger)
	r.Mount("/gallery", galleryfeature.Routes(galleryHandler, tokens))

	// Account and fitness profile
	profileHandler := profilefeature.NewHandler(deps.MongoDB, store, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, tokens))

	// Serve locally stored uploads when running with local storage.
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	return r, nil
}

// buildStorage constructs the object store backing uploads.
func buildStorage(appCfg AppConfig, logger *zap.Logger) (storage.Store, error) {
	switch appCfg.StorageType {
	case "s3":
		return storage.NewS3(context.Background(), storage.S3Config{
			Region: appCfg.StorageS3Region,
			Bucket: appCfg.StorageS3Bucket,
			Prefix: appCfg.StorageS3Prefix,
		})
	default:
		logger.Info("using local file storage",
			zap.String("path", appCfg.StorageLocalPath),
			zap.String("url", appCfg.StorageLocalURL))
		return storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
	}
}
