// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/system/authutil"
)

// appConfigKeys defines the configuration keys for SurveyHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: SURVEYHUB_MONGO_URI, SURVEYHUB_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "survey_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Access tokens
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Access-token signing secret (must be strong in production)"},
	{Name: "jwt_ttl", Default: "24h", Desc: "Access-token lifetime (e.g., 24h, 8h, 90m)"},

	// Upload storage
	{Name: "uploads_originals_dir", Default: "./uploads/originals", Desc: "Directory for uploaded originals"},
	{Name: "uploads_optimized_dir", Default: "./uploads/optimized", Desc: "Directory for optimized derivatives"},
	{Name: "optimize_uploads", Default: true, Desc: "Build optimized derivatives for uploaded images"},

	// Bootstrap admin (created on startup when email and password are set)
	{Name: "bootstrap_admin_email", Default: "", Desc: "Email of the admin to seed on startup"},
	{Name: "bootstrap_admin_password", Default: "", Desc: "Password of the admin to seed on startup"},
	{Name: "bootstrap_admin_name", Default: "Administrator", Desc: "Display name of the admin to seed on startup"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, SURVEYHUB_* for app), and
// command-line flags, merged with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SURVEYHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTTTL:    appValues.Duration("jwt_ttl", 24*time.Hour),

		UploadsOriginalsDir: appValues.String("uploads_originals_dir"),
		UploadsOptimizedDir: appValues.String("uploads_optimized_dir"),
		OptimizeUploads:     appValues.Bool("optimize_uploads"),

		BootstrapAdminEmail:    appValues.String("bootstrap_admin_email"),
		BootstrapAdminPassword: appValues.String("bootstrap_admin_password"),
		BootstrapAdminName:     appValues.String("bootstrap_admin_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// SurveyHub validates the MongoDB URI format and the token settings to
// catch configuration errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret must not be empty")
	}
	if appCfg.JWTTTL <= 0 {
		return fmt.Errorf("jwt_ttl must be positive, got %s", appCfg.JWTTTL)
	}

	// A seeded admin needs both credentials and a real password.
	if appCfg.BootstrapAdminEmail != "" && len(appCfg.BootstrapAdminPassword) < authutil.MinPasswordLength {
		return fmt.Errorf("bootstrap_admin_password must be at least %d characters when bootstrap_admin_email is set", authutil.MinPasswordLength)
	}

	return nil
}
