// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging,
// CORS, body limits); AppConfig is everything specific to ShelfHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: shelfhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Google OAuth configuration
	GoogleClientID     string // OAuth2 client ID; also the audience tokens are checked against
	GoogleClientSecret string // OAuth2 client secret

	// Base URL of the public site, used for the OAuth redirect
	BaseURL string // e.g., "https://shelfhub.example.com" or "http://localhost:3000"

	// Catalog configuration
	LatestItemsLimit int // How many items the index page shows, newest first

	// Seed data: when SeedDir is set, CSV files in it are loaded at startup.
	// SeedReset additionally wipes items from earlier seed runs first.
	SeedDir   string
	SeedReset bool
}
