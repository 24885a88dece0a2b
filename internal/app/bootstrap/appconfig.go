// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, timeouts); AppConfig is everything specific to
// SurveyHub: the Mongo connection, token signing, upload storage, and
// the optional bootstrap admin seeded on first startup.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Access-token configuration
	JWTSecret string        // HS256 signing secret (must be strong in production)
	JWTTTL    time.Duration // Access-token lifetime

	// Upload storage configuration
	UploadsOriginalsDir string // Directory for uploaded originals ({id}{ext})
	UploadsOptimizedDir string // Directory for derivatives ({id}.jpg)
	OptimizeUploads     bool   // Build derivatives on upload

	// Bootstrap admin seeded on startup when email and password are set.
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
	BootstrapAdminName     string
}
