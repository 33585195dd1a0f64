package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"cafeteria/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"golang.org/x/time/rate"
)

const apiPrefix = "/orders"

// RouterConfig holds the knobs of the HTTP surface.
type RouterConfig struct {
	// RateLimitRPS is the sustained request rate allowed per client IP. Zero disables limiting.
	RateLimitRPS float64
	Logger       *slog.Logger
}

// swaggerDoc serves the embedded OpenAPI document to the Swagger UI.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	return string(servers.RawSpec())
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}

// NewRouter builds the echo instance serving the orders API, /health and the Swagger UI.
func NewRouter(server *Server, config RouterConfig) (*echo.Echo, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc, outsideAPI)
	if err != nil {
		return nil, fmt.Errorf("create request validator: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(logger)))
	if config.RateLimitRPS > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(config.RateLimitRPS))))
	}
	e.Use(Identity(IdentityConfig{Skipper: outsideAPI}))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}

// outsideAPI skips identity and validation for routes that are not part of the orders API,
// including unmatched paths, which echo then answers with 404.
func outsideAPI(c echo.Context) bool {
	return !strings.HasPrefix(c.Path(), apiPrefix)
}

func requestLoggerConfig(logger *slog.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				level = slog.LevelWarn
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}
}
