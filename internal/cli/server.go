package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/codelancer/api/internal/analysis"
	"github.com/codelancer/api/internal/config"
	"github.com/codelancer/api/internal/eventbus"
	"github.com/codelancer/api/internal/handlers"
	"github.com/codelancer/api/internal/metrics"
	"github.com/codelancer/api/internal/server"
	"github.com/codelancer/api/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serverHost   string
	serverPort   int
	serverReload bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start API server",
	Long: `Start the HTTP API.

Host and port default to the HOST and PORT environment variables
(0.0.0.0:8000 when unset). Flags take precedence.

Optional integrations:
  NATS_URL                      publish analyzed/generated/corrected events
  OTEL_EXPORTER_OTLP_ENDPOINT   export traces over OTLP/gRPC`,
	Args: cobra.NoArgs,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&serverHost, "host", "0.0.0.0", "Address to bind")
	serverCmd.Flags().IntVar(&serverPort, "port", 8000, "Port to listen on")
	serverCmd.Flags().BoolVar(&serverReload, "reload", false, "Development mode: debug routing and logs")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cmd.Flags().Changed("host") {
		cfg.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = serverPort
	}
	if serverReload {
		cfg.Environment = "development"
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("CODELANCER API starting...",
		zap.String("version", handlers.Version),
		zap.String("environment", cfg.Environment),
	)
	if serverReload {
		logger.Warn("--reload enables development mode only; restart the process to pick up changes")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		// Tracing is optional; keep serving without it
		logger.Error("failed to initialize telemetry", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTelemetry(context.Background()); err != nil {
				logger.Error("failed to shutdown telemetry", zap.Error(err))
			}
		}()
	}

	var publisher eventbus.Publisher = eventbus.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := eventbus.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			logger.Error("failed to connect to NATS", zap.Error(err))
		} else {
			breakerCfg := eventbus.DefaultBreakerConfig()
			breakerCfg.OnStateChange = func(from, to eventbus.BreakerState) {
				logger.Warn("event publisher circuit changed",
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			}
			publisher = eventbus.NewBreakerPublisher(natsPublisher, breakerCfg)
			logger.Info("connected to NATS", zap.String("url", cfg.NATSURL))
		}
	}
	defer publisher.Close()

	checker, err := analysis.NewPythonChecker()
	if err != nil {
		return fmt.Errorf("failed to initialize python checker: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := server.NewRouter(server.Dependencies{
		Logger:    logger,
		Metrics:   metrics.New(),
		Publisher: publisher,
		Analyzer:  analysis.NewAnalyzer(checker),
		Generator: generator,
		Corrector: corrector,
	})

	return server.Run(ctx, cfg.Addr(), router, logger)
}

// newLogger builds a production logger writing to stdout, or a development
// logger outside production
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if !cfg.IsProduction() {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	return zapConfig.Build()
}
