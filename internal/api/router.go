package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/staffhub/employee-api/docs"
	"github.com/staffhub/employee-api/internal/api/handler"
	"github.com/staffhub/employee-api/internal/api/middleware"
	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

const defaultAuthRateLimit = 20

// Deps is everything the router needs. Services are passed in already wired.
type Deps struct {
	Log       zerolog.Logger
	Auth      ports.AuthService
	Tokens    ports.TokenVerifier
	Employees ports.EmployeeService
	Health    map[string]handler.Check

	CORSAllowedOrigins []string
	// AuthRateLimit is requests per second per client IP on /api/auth.
	AuthRateLimit float64
	// Registerer receives the HTTP metrics. Nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.IPExtractor = echo.ExtractIPDirect()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "employee_api",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	employeeHandler := handler.NewEmployeeHandler(d.Employees)
	healthHandler := handler.NewHealthHandler(d.Health)
	authenticate := middleware.Authenticate(d.Tokens, d.Auth)
	limitAuth := authRateLimiter(d.AuthRateLimit)

	// --- Operational routes (no auth required) ---
	e.GET("/", healthHandler.Index)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", metricsHandler(d.Registerer))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup, limitAuth)
	auth.POST("/login", authHandler.Login, limitAuth)
	auth.GET("/me", authHandler.Me, authenticate)

	// --- Employee routes (ADMIN only) ---
	employees := e.Group("/api/employees", authenticate, middleware.Authorize(domain.RoleAdmin))
	employees.POST("/addEmployee", employeeHandler.Create)
	employees.GET("/getEmployees", employeeHandler.List)
	employees.GET("/getEmployeeById/:id", employeeHandler.Get)
	employees.PATCH("/updateEmployeeById/:id", employeeHandler.Update)
	employees.DELETE("/deleteEmployeeById/:id", employeeHandler.Delete)

	return e
}

// requestLogger writes one zerolog event per request. Bodies and headers are
// never logged.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				event = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				event = log.Warn()
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// authRateLimiter caps signup and login attempts per client IP. The IP is the
// peer address; forwarding headers are ignored.
func authRateLimiter(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = defaultAuthRateLimit
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     max(1, int(perSecond)),
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
		},
	})
}

func metricsHandler(reg prometheus.Registerer) echo.HandlerFunc {
	if g, ok := reg.(prometheus.Gatherer); ok {
		return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: g})
	}
	return echoprometheus.NewHandler()
}
