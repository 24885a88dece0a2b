// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/authutil"
	"github.com/dalemusser/surveyhub/internal/app/system/normalize"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// SurveyHub creates the upload directories and seeds the bootstrap
// admin when one is configured.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	for _, dir := range []string{appCfg.UploadsOriginalsDir, appCfg.UploadsOptimizedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}

	if appCfg.BootstrapAdminEmail != "" {
		admin := bootstrapAdmin{
			Email:    appCfg.BootstrapAdminEmail,
			Password: appCfg.BootstrapAdminPassword,
			Name:     appCfg.BootstrapAdminName,
		}
		if err := ensureBootstrapAdmin(ctx, deps, admin, logger); err != nil {
			return fmt.Errorf("ensure bootstrap admin: %w", err)
		}
	}

	return nil
}

type bootstrapAdmin struct {
	Email    string
	Password string
	Name     string
}

// ensureBootstrapAdmin guarantees an admin account exists for the
// configured email. An existing user with that email is promoted to
// admin; otherwise the account is created with the configured
// credentials. The password of an existing account is never touched.
func ensureBootstrapAdmin(ctx context.Context, deps DBDeps, admin bootstrapAdmin, logger *zap.Logger) error {
	store := userstore.New(deps.SurveyHubMongoDatabase)
	email := normalize.Email(admin.Email)

	existing, err := store.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			logger.Info("bootstrap admin already present", zap.String("email", email))
			return nil
		}
		existing.Role = models.RoleAdmin
		if err := store.Update(ctx, existing.ID, existing); err != nil {
			return err
		}
		logger.Info("promoted existing user to admin", zap.String("email", email))
		return nil

	case errors.Is(err, mongo.ErrNoDocuments):
		hash, err := authutil.HashPassword(admin.Password)
		if err != nil {
			return err
		}
		created, err := store.Create(ctx, models.User{
			Email:        email,
			Name:         normalize.Name(admin.Name),
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		})
		if err != nil {
			return err
		}
		logger.Info("created bootstrap admin",
			zap.String("email", email), zap.String("user_id", created.ID.Hex()))
		return nil

	default:
		return err
	}
}
