package router

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	docs "github.com/spendwise/backend/api"
	"github.com/spendwise/backend/internal/controllers"
	"github.com/spendwise/backend/internal/controllers/healthz"
	"github.com/spendwise/backend/internal/httputil"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Version returns the version of the backend.
func Version() string {
	return version
}

// Options configure the optional parts of the router.
type Options struct {
	// AllowOrigins enables CORS for the origins if not empty.
	AllowOrigins []string

	// Pprof registers the pprof performance profile endpoints.
	Pprof bool
}

// Config creates the router and configures its middlewares.
//
// The returned function unregisters the Prometheus metrics and must
// be called when the router is not used anymore.
func Config(url *url.URL, opts Options) (*gin.Engine, func(), error) {
	// Money is serialized as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(httputil.URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httputil.HTTPError{Detail: "this HTTP method is not allowed for the endpoint you called"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httputil.HTTPError{Detail: "there is no endpoint at this path"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithSkipPath([]string{"/metrics"}),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(opts.AllowOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", opts.AllowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "spendwise"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "Turns bank notification messages into categorized transactions, tracks monthly budgets and raises alerts when they are exceeded."

	if err := registerPrometheusMetrics(); err != nil {
		return nil, func() {}, err
	}

	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Warn().Msg("could not unregister all Prometheus metrics")
		}
	}

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in
// Separating this from Config() allows us to attach it to different
// paths for different use cases, e.g. the standalone version.
func AttachRoutes(co controllers.Controller, group *gin.RouterGroup, opts Options) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	if opts.Pprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	healthz.RegisterRoutes(group.Group("/health"))
	co.RegisterRoutes(group)
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs         string `json:"docs" example:"https://example.com/api/docs/index.html"`       // Swagger API documentation
	Health       string `json:"health" example:"https://example.com/api/health"`              // Database health check
	Version      string `json:"version" example:"https://example.com/api/version"`            // Endpoint returning the version of the backend
	Metrics      string `json:"metrics" example:"https://example.com/api/metrics"`            // Prometheus metrics
	ProcessSMS   string `json:"process_sms" example:"https://example.com/api/process-sms"`    // Submit a message
	Transactions string `json:"transactions" example:"https://example.com/api/transactions"`  // Transaction list
	Alerts       string `json:"alerts" example:"https://example.com/api/alerts"`              // Alert list
	Budgets      string `json:"budgets" example:"https://example.com/api/budgets"`            // Budget list
	MatchRules   string `json:"match_rules" example:"https://example.com/api/match-rules"`    // Match rule list
	Summary      string `json:"summary" example:"https://example.com/api/summary"`            // Spend of the month by category
	Stats        string `json:"stats" example:"https://example.com/api/stats"`                // Statistics of the month
	Events       string `json:"events" example:"https://example.com/api/events"`              // Pipeline stage event stream
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:         httputil.URL(c, "/docs/index.html"),
			Health:       httputil.URL(c, "/health"),
			Version:      httputil.URL(c, "/version"),
			Metrics:      httputil.URL(c, "/metrics"),
			ProcessSMS:   httputil.URL(c, "/process-sms"),
			Transactions: httputil.URL(c, "/transactions"),
			Alerts:       httputil.URL(c, "/alerts"),
			Budgets:      httputil.URL(c, "/budgets"),
			MatchRules:   httputil.URL(c, "/match-rules"),
			Summary:      httputil.URL(c, "/summary"),
			Stats:        httputil.URL(c, "/stats"),
			Events:       httputil.URL(c, "/events"),
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}
