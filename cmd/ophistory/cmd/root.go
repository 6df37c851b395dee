package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"operation-history/internal/config"
	"operation-history/internal/logging"
	"operation-history/ophistory"
	"operation-history/retry"
	"operation-history/utils"
)

var (
	cfgFile  string
	endpoint string
	auth     string
	dump     bool
	metrics  bool
)

// registry collects the retry counters of the running command.
var registry *prometheus.Registry

var rootCmd = &cobra.Command{
	Use:   "ophistory",
	Short: "Parcel operation history client",
	Long: `ophistory queries and updates the operation history of tracked postal items.

Settings come from the --config YAML file and OPHISTORY_<SECTION>_<KEY>
environment variables, e.g. OPHISTORY_SERVICE_LOGIN or OPHISTORY_RETRY_DELAY.`,
	SilenceUsage: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if !metrics || registry == nil {
			return nil
		}

		return writeMetrics(cmd.ErrOrStderr())
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "service endpoint, overrides the config")
	rootCmd.PersistentFlags().StringVar(&auth, "auth", "", "credentials as login:password, override the config")
	rootCmd.PersistentFlags().BoolVar(&dump, "dump", false, "print results as Go values instead of YAML")
	rootCmd.PersistentFlags().BoolVar(&metrics, "metrics", false, "print retry counters to stderr on exit")
}

type session struct {
	cfg    *config.Config
	logger *zap.Logger
	client *ophistory.Client
}

func newSession() (*session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if endpoint != "" {
		cfg.Service.Endpoint = endpoint
	}

	if auth != "" {
		cfg.Service.Login, cfg.Service.Password = utils.Unpack2(strings.SplitN(auth, ":", 2))
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	registry = prometheus.NewRegistry()

	opts := []ophistory.Option{
		ophistory.WithEndpoint(cfg.Service.Endpoint),
		ophistory.WithNamespace(cfg.Service.Namespace),
		ophistory.WithTimeout(cfg.Service.Timeout),
		ophistory.WithLogger(logger),
		ophistory.WithRetry(
			retry.WithMaxAttempts(cfg.Retry.MaxAttempts),
			retry.WithDelay(cfg.Retry.Delay),
			retry.WithMetrics(retry.NewMetrics(registry)),
		),
		ophistory.WithHydration(cfg.HydrationOptions()...),
	}

	if cfg.Service.Login != "" {
		opts = append(opts, ophistory.WithCredentials(cfg.Service.Login, cfg.Service.Password))
	}

	return &session{cfg: cfg, logger: logger, client: ophistory.New(opts...)}, nil
}

func writeMetrics(w io.Writer) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}

func printResult(w io.Writer, v any) error {
	if dump {
		spew.Fdump(w, v)
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	return enc.Close()
}
