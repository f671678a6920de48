// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/shelfhub/internal/app/catalog"
	apifeature "github.com/dalemusser/shelfhub/internal/app/features/api"
	authgooglefeature "github.com/dalemusser/shelfhub/internal/app/features/authgoogle"
	healthfeature "github.com/dalemusser/shelfhub/internal/app/features/health"
	homefeature "github.com/dalemusser/shelfhub/internal/app/features/home"
	itemsfeature "github.com/dalemusser/shelfhub/internal/app/features/items"
	categorystore "github.com/dalemusser/shelfhub/internal/app/store/categories"
	itemstore "github.com/dalemusser/shelfhub/internal/app/store/items"
	userstore "github.com/dalemusser/shelfhub/internal/app/store/users"
	"github.com/dalemusser/shelfhub/internal/app/system/auth"
	"github.com/dalemusser/shelfhub/internal/app/system/gauth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. ShelfHub initializes the template
// engine, applies session middleware, and mounts the catalog, item, and
// sign-in routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	db := deps.ShelfHubMongoDatabase
	svc := catalog.NewService(itemstore.New(db), categorystore.New(db), logger)
	svc.LatestLimit = int64(appCfg.LatestItemsLimit)

	provider := gauth.NewGoogle(appCfg.GoogleClientID, appCfg.GoogleClientSecret, "postmessage")

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ShelfHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	apiHandler := apifeature.NewHandler(svc, logger)
	r.Mount("/json", apifeature.Routes(apiHandler))

	homeHandler := homefeature.NewHandler(svc, logger)
	r.Mount("/", homefeature.Routes(homeHandler))
	r.Mount("/categories", homefeature.CategoryRoutes(homeHandler, apiHandler))

	itemsHandler := itemsfeature.NewHandler(svc, logger)
	r.Mount("/items", itemsfeature.Routes(itemsHandler, apiHandler))

	// Authentication
	authHandler := authgooglefeature.NewHandler(userstore.New(db), sessionMgr, provider, appCfg.GoogleClientID, logger)
	r.Mount("/login", authgooglefeature.Routes(authHandler))
	r.Post("/gconnect", authHandler.ServeConnect)
	r.Get("/gdisconnect", authHandler.ServeDisconnect)

	return r, nil
}
