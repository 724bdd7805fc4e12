package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ammkeeper "github.com/Mustafa6066/Osool-sub002/x/amm/keeper"
	assetskeeper "github.com/Mustafa6066/Osool-sub002/x/assets/keeper"
	settlementkeeper "github.com/Mustafa6066/Osool-sub002/x/settlement/keeper"
)

// Server is the read-only HTTP query surface over the exchange engine.
// All state changes go through the keepers directly; the API never
// mutates.
type Server struct {
	router     *gin.Engine
	config     *Config
	amm        *ammkeeper.Keeper
	settlement *settlementkeeper.Keeper
	assets     *assetskeeper.Keeper
	logger     log.Logger
}

// Config holds server configuration
type Config struct {
	Host            string
	Port            string
	CORSOrigins     []string
	RateLimitRPS    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            "5000",
		CORSOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		RateLimitRPS:    100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// NewServer creates a new API server instance
func NewServer(
	config *Config,
	amm *ammkeeper.Keeper,
	settlement *settlementkeeper.Keeper,
	assets *assetskeeper.Keeper,
	logger log.Logger,
) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	server := &Server{
		config:     config,
		amm:        amm,
		settlement: settlement,
		assets:     assets,
		logger:     logger.With("module", "api"),
	}
	server.setupRouter()
	return server
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	// Order matters: recovery first, then tracing, logging, CORS, and
	// rate limiting before any handler runs.
	s.router.Use(gin.Recovery())
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(CORSMiddleware(s.config.CORSOrigins))
	s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))

	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1")
	{
		v1.GET("/pools", s.handleListPools)
		v1.GET("/pools/:asset", s.handleGetPool)
		v1.GET("/pools/:asset/quote", s.handleQuote)
		v1.GET("/pools/:asset/spot", s.handleSpotPrice)
		v1.GET("/pools/:asset/twap", s.handleTWAP)
		v1.GET("/pools/:asset/positions", s.handleListPositions)
		v1.GET("/pools/:asset/positions/:owner", s.handleGetPosition)

		v1.GET("/settlement/supply", s.handleSettlementSupply)
		v1.GET("/settlement/accounts/:address", s.handleSettlementAccount)

		v1.GET("/assets/:asset", s.handleGetAsset)
		v1.GET("/assets/:asset/balances/:address", s.handleAssetBalance)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:        s.router,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
