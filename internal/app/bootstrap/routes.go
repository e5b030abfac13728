// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	auditlogfeature "github.com/dalemusser/clubhub/internal/app/features/auditlog"
	authgooglefeature "github.com/dalemusser/clubhub/internal/app/features/authgoogle"
	blogsfeature "github.com/dalemusser/clubhub/internal/app/features/blogs"
	cartfeature "github.com/dalemusser/clubhub/internal/app/features/cart"
	chatfeature "github.com/dalemusser/clubhub/internal/app/features/chat"
	checkoutfeature "github.com/dalemusser/clubhub/internal/app/features/checkout"
	engagementfeature "github.com/dalemusser/clubhub/internal/app/features/engagement"
	errorsfeature "github.com/dalemusser/clubhub/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/clubhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/clubhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/clubhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/clubhub/internal/app/features/logout"
	membersfeature "github.com/dalemusser/clubhub/internal/app/features/members"
	merchandisefeature "github.com/dalemusser/clubhub/internal/app/features/merchandise"
	messagesfeature "github.com/dalemusser/clubhub/internal/app/features/messages"
	ordersfeature "github.com/dalemusser/clubhub/internal/app/features/orders"
	projectsfeature "github.com/dalemusser/clubhub/internal/app/features/projects"
	rolesfeature "github.com/dalemusser/clubhub/internal/app/features/roles"
	searchfeature "github.com/dalemusser/clubhub/internal/app/features/search"
	uploadfeature "github.com/dalemusser/clubhub/internal/app/features/upload"
	userinfofeature "github.com/dalemusser/clubhub/internal/app/features/userinfo"
	auditstore "github.com/dalemusser/clubhub/internal/app/store/audit"
	blogstore "github.com/dalemusser/clubhub/internal/app/store/blogs"
	eventstore "github.com/dalemusser/clubhub/internal/app/store/events"
	merchstore "github.com/dalemusser/clubhub/internal/app/store/merchandise"
	"github.com/dalemusser/clubhub/internal/app/store/oauthstate"
	orderstore "github.com/dalemusser/clubhub/internal/app/store/orders"
	projectstore "github.com/dalemusser/clubhub/internal/app/store/projects"
	rolestore "github.com/dalemusser/clubhub/internal/app/store/roles"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/cart"
	"github.com/dalemusser/clubhub/internal/app/system/rolegate"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/app/system/visitor"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Secure cookies are enabled in
// production mode.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	return buildRouter(appCfg, deps, coreCfg.Env == "prod", logger)
}

// buildRouter mounts every feature. It is separate from BuildHandler so
// tests can build the full router without a CoreConfig.
func buildRouter(appCfg AppConfig, deps DBDeps, secure bool, logger *zap.Logger) (http.Handler, error) {
	db := deps.ClubHubMongoDatabase

	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	var bearer *auth.BearerVerifier
	if appCfg.AuthJWTSecret != "" {
		bearer, err = auth.NewBearerVerifier(appCfg.AuthJWTSecret, appCfg.AuthJWTIssuer)
		if err != nil {
			logger.Error("bearer verifier init failed", zap.Error(err))
			return nil, err
		}
		sessionMgr.UseBearer(bearer)
	}

	cartCodec, err := cart.NewCodec([]byte(appCfg.CartHashKey), []byte(appCfg.CartBlockKey), secure)
	if err != nil {
		logger.Error("cart codec init failed", zap.Error(err))
		return nil, err
	}
	visitors := visitor.New([]byte(appCfg.CartHashKey), secure)

	errLog := errorsfeature.NewErrorLogger(logger)
	auditLog := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	gate := rolegate.New(rolestore.New(db), logger)
	requireAdmin := gate.RequireAdmin
	limit := deps.Limiter.Middleware(logger)

	// Shared with the cart and checkout; both read the live catalog.
	merch := merchstore.New(db, deps.Cache)
	outbound := &http.Client{Timeout: timeouts.External()}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Global auth middleware: loads the principal (cookie or Bearer) into
	// context. Handlers read it via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ClubHubMongoClient, deps.Storage, deps.Cache, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Locally stored uploads
	if appCfg.StorageType == "local" {
		prefix := "/" + strings.Trim(appCfg.StorageLocalURL, "/")
		r.Handle(prefix+"/*", fileserver.Handler(prefix, appCfg.StorageLocalPath))
	}

	// Authentication
	googleHandler := authgooglefeature.NewHandler(sessionMgr, auditLog, oauthstate.New(db),
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLog, logger)
	r.Mount("/auth/logout", logoutfeature.Routes(logoutHandler))

	if appCfg.DevLogin {
		loginHandler := loginfeature.NewHandler(sessionMgr, bearer, errLog, auditLog, logger)
		r.Mount("/auth/dev-login", loginfeature.Routes(loginHandler))
		logger.Warn("dev login mounted at /auth/dev-login")
	}

	userinfofeature.MountRoutes(r, userinfofeature.NewHandler(gate))

	// Content with likes and comments
	engagementHandler := engagementfeature.NewHandler(db, deps.Cache, visitors, errLog, logger)

	eventsHandler := eventsfeature.NewHandler(db, deps.Cache, auditLog, errLog, logger)
	r.Route("/api/events", func(r chi.Router) {
		eventsHandler.MountRoutes(r, requireAdmin)
		engagementHandler.MountRoutes(r, "events", limit)
	})

	projectsHandler := projectsfeature.NewHandler(db, deps.Cache, auditLog, errLog, logger)
	r.Route("/api/projects", func(r chi.Router) {
		projectsHandler.MountRoutes(r, requireAdmin)
		engagementHandler.MountRoutes(r, "projects", limit)
	})

	blogsHandler := blogsfeature.NewHandler(db, deps.Cache, auditLog, errLog, logger)
	r.Route("/api/blogs", func(r chi.Router) {
		blogsHandler.MountRoutes(r, requireAdmin)
		engagementHandler.MountRoutes(r, "blogs", limit)
	})

	// Members
	membersHandler := membersfeature.NewHandler(db, deps.Cache, gate, errLog, auditLog, logger)
	r.Route("/api/members", func(r chi.Router) {
		membersHandler.MountRoutes(r, limit)
	})

	// Shop: catalog, cart, checkout, orders
	merchHandler := merchandisefeature.NewHandler(db, deps.Cache, auditLog, errLog, logger)
	r.Route("/api/merchandise", func(r chi.Router) {
		merchHandler.MountRoutes(r, requireAdmin)
	})

	cartHandler := cartfeature.NewHandler(cartCodec, merch, errLog, logger)
	r.Mount("/api/cart", cartfeature.Routes(cartHandler))

	orders := orderstore.New(db)
	checkoutHandler := checkoutfeature.NewHandler(checkoutfeature.NewService(merch, orders), cartCodec, errLog, logger)
	ordersHandler := ordersfeature.NewHandler(orders, errLog, auditLog, logger)
	r.Route("/api/orders", func(r chi.Router) {
		r.With(limit).Post("/", checkoutHandler.Checkout)
		ordersHandler.MountRoutes(r, requireAdmin)
	})

	// Contact messages
	messagesHandler := messagesfeature.NewHandler(db, errLog, auditLog, logger)
	r.Route("/api/messages", func(r chi.Router) {
		messagesHandler.MountRoutes(r, limit, requireAdmin)
	})

	// Roles
	rolesHandler := rolesfeature.NewHandler(gate, errLog, auditLog, logger)
	r.Mount("/api/roles", rolesfeature.Routes(rolesHandler))

	// Audit log
	auditHandler := auditlogfeature.NewHandler(db, errLog, logger)
	r.Route("/api/audit", func(r chi.Router) {
		auditHandler.MountRoutes(r, requireAdmin)
	})

	// Uploads
	uploadHandler := uploadfeature.NewHandler(deps.Files, errLog, auditLog, logger)
	r.Mount("/api/upload", uploadfeature.Routes(uploadHandler, requireAdmin))

	// Chat and search, with local fallbacks
	chatHandler := chatfeature.NewHandler(appCfg.ChatResponderURL, outbound, errLog, logger)
	r.Route("/api/chat", func(r chi.Router) {
		chatHandler.MountRoutes(r, limit)
	})

	searchHandler := searchfeature.NewHandler(appCfg.SearchSummaryURL, outbound, searchfeature.StoreIndex{
		Events:   eventstore.New(db, deps.Cache),
		Projects: projectstore.New(db, deps.Cache),
		Blogs:    blogstore.New(db, deps.Cache),
	}, errLog, logger)
	r.Route("/api/search", func(r chi.Router) {
		searchHandler.MountRoutes(r, limit)
	})

	return r, nil
}
