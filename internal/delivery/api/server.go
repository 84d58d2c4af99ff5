// Package api serves the storefront HTTP API.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"brewhouse/config"
	"brewhouse/internal/delivery"
	apimiddleware "brewhouse/internal/delivery/api/middleware"
	"brewhouse/internal/delivery/api/router"
	"brewhouse/internal/delivery/api/validator"
	"brewhouse/internal/delivery/middleware"
	"brewhouse/internal/domain/lifecycle"
	"brewhouse/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type apiServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	RouterParams router.RouterParams
}

// NewServer builds the echo instance and registers its shutdown hook.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer := NewEcho(params.Cfg, params.Logger, params.RouterParams)

	srv := &apiServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// NewEcho assembles the middleware chain and routes.
func NewEcho(cfg *config.Config, logger *slog.Logger, routerParams router.RouterParams) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Server.ReadTimeout = cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = cfg.HTTP.Timeouts.IdleTimeout

	// 1. Recover middleware first (to catch panics early)
	echoServer.Use(echomiddleware.Recover())

	// 2. Request ID middleware (must be before logger to include in logs)
	requestIDMiddleware := middleware.NewRequestIDMiddleware(logger)
	echoServer.Use(requestIDMiddleware.Process)

	// 3. Logger middleware
	loggerMiddleware := middleware.NewLoggerMiddleware(logger, cfg)
	echoServer.Use(loggerMiddleware.Handle)

	// 4. CORS middleware
	echoServer.Use(echomiddleware.CORS())

	// 5. Request body size limit
	if cfg.HTTP.MaxRequestBodySize != "" {
		echoServer.Use(echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize))
	}

	errorMiddleware := apimiddleware.NewErrorMiddleware(logger)
	echoServer.HTTPErrorHandler = errorMiddleware.HandleHTTPError

	echoServer.Validator = validator.New()

	r := router.NewRouter(routerParams)
	r.RegisterRoutes(echoServer)

	return echoServer
}

func (s *apiServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting API HTTP server", slog.String("host_port", hostPort))
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *apiServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down API HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
