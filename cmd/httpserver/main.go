package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nhdewitt/httpcore/internal/config"
	"github.com/nhdewitt/httpcore/internal/log"
	"github.com/nhdewitt/httpcore/internal/response"
	"github.com/nhdewitt/httpcore/internal/server"
)

var (
	configFile string
	host       string
	port       int
	verbose    bool
	jsonLogs   bool
)

var rootCmd = &cobra.Command{
	Use:   "httpserver",
	Short: "Serve HTTP/1.1 requests, one connection at a time.",
	Long: `httpserver accepts a connection, reads one request, answers it from the
registered routes (or with a 404) and closes the connection before accepting
the next one.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var lOpts []log.Option
		if verbose {
			lOpts = append(lOpts, log.WithDevMode())
		} else {
			lOpts = append(lOpts, log.WithLevelString(cfg.LogLevel))
		}
		if cfg.JSONLogs {
			lOpts = append(lOpts, log.WithJSON())
		}
		logger := log.Init(lOpts...)

		srv := newServer(cfg, logger)
		for _, rt := range srv.Router().Routes() {
			log.Debugf("Route %s %s", rt.Method, rt.Path)
		}

		if err := srv.ListenAndServe(cmd.Context(), cfg.Addr()); err != nil {
			return err
		}
		log.Infof("Server gracefully stopped")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (YAML).")
	rootCmd.PersistentFlags().StringVar(&host, "host", config.DefaultHost, "Host to listen on.")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output.")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Log in JSON format.")
}

// loadConfig reads the config file and applies any flags set on the
// command line on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = host
	}
	if flags.Changed("port") {
		cfg.Port = port
	}
	if flags.Changed("json-logs") {
		cfg.JSONLogs = jsonLogs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newServer(cfg *config.Config, logger *slog.Logger) *server.Server {
	srv := server.New(
		server.WithLogger(logger),
		server.WithNotFound(response.NewString(response.StatusNotFound, cfg.NotFoundBody)),
		server.WithBadRequest(response.NewString(response.StatusBadRequest, cfg.BadRequestBody)),
		server.WithRespondOnParseError(!cfg.SilentParseErrors),
	)
	registerRoutes(srv)
	return srv
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
