package main

import (
	"fmt"
	"runtime"

	"github.com/NethermindEth/flatconv/document"
	"github.com/NethermindEth/flatconv/metrics"
	"github.com/NethermindEth/flatconv/utils"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var Version string

const (
	configF      = "config"
	verbosityF   = "verbosity"
	colourF      = "colour"
	formatF      = "format"
	dbPathF      = "db-path"
	metricsFileF = "metrics-file"
	workersF     = "workers"

	defaultConfig      = ""
	defaultVerbosity   = utils.INFO
	defaultColour      = true
	defaultFormat      = document.YAML
	defaultDBPath      = ""
	defaultMetricsFile = ""

	configFlagUsage  = "The yaml configuration file."
	verbosityUsage   = "Verbosity of the logs. Options: debug, info, warn, error."
	colourUsage      = "Uses --colour=false command to disable colourized outputs (ANSI Escape Codes)."
	formatUsage      = "Document format of decoded graphs. Options: yaml, json, cbor."
	dbPathUsage      = "Location of the database files."
	metricsFileUsage = "Node exporter textfile (*.prom) the collected metrics are written to on exit."
	workersUsage     = "Maximum number of files or graphs decoded concurrently."
)

// Config is the configuration shared by every command. Flags take precedence over the
// config file, which takes precedence over defaults.
type Config struct {
	Verbosity   utils.LogLevel  `mapstructure:"verbosity" yaml:"verbosity" validate:"gte=0,lte=3"`
	Colour      bool            `mapstructure:"colour" yaml:"colour"`
	Format      document.Format `mapstructure:"format" yaml:"format" validate:"gte=0,lte=2"`
	DBPath      string          `mapstructure:"db-path" yaml:"db-path"`
	MetricsFile string          `mapstructure:"metrics-file" yaml:"metrics-file" validate:"omitempty,endswith=.prom"`
	Workers     int             `mapstructure:"workers" yaml:"workers" validate:"min=1,max=1024"`
}

// app holds what the commands share once the configuration is loaded.
type app struct {
	cfg      *Config
	log      utils.Logger
	registry *prometheus.Registry
	factory  metrics.Factory
	graphs   metrics.Vec[metrics.Counter]
}

func NewCmd() *cobra.Command {
	var (
		cfgFile   string
		verbosity = defaultVerbosity
		format    = defaultFormat
	)
	a := &app{cfg: new(Config)}

	cmd := &cobra.Command{
		Use:           "flatconv",
		Short:         "Converts graph documents to and from FlatBuffers.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd, cfgFile)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.flushMetrics()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	flags.Var(&verbosity, verbosityF, verbosityUsage)
	flags.Bool(colourF, defaultColour, colourUsage)
	flags.Var(&format, formatF, formatUsage)
	flags.String(dbPathF, defaultDBPath, dbPathUsage)
	flags.String(metricsFileF, defaultMetricsFile, metricsFileUsage)
	flags.Int(workersF, runtime.GOMAXPROCS(0), workersUsage)

	cmd.AddCommand(
		ConfigCmd(a),
		EncodeCmd(a),
		DecodeCmd(a),
		InspectCmd(a),
		DBCmd(a),
	)
	return cmd
}

func (a *app) load(cmd *cobra.Command, cfgFile string) error {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrap(err, "read config")
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(a.cfg, decodeHook); err != nil {
		return errors.Wrap(err, "parse config")
	}
	if err := validator.New().Struct(a.cfg); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	log, err := utils.NewZapLogger(a.cfg.Verbosity, a.cfg.Colour)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	a.log = log

	if a.cfg.MetricsFile != "" {
		metrics.Enable()
	}
	a.registry = metrics.PrometheusRegistry()
	a.factory = metrics.PrometheusFactory(a.registry)
	a.graphs = a.factory.NewCounterVec(metrics.CounterOpts{
		Namespace: "flatconv",
		Subsystem: "cli",
		Name:      "graphs_total",
		Help:      "Graphs processed by command",
	}, []string{"command"})

	a.log.Debugw("Loaded config", "config", a.cfg)
	return nil
}

func (a *app) flushMetrics() error {
	if a.cfg.MetricsFile == "" {
		return nil
	}
	return errors.Wrap(metrics.WriteTextfile(a.cfg.MetricsFile, a.registry), "write metrics")
}

func ConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := yaml.Marshal(a.cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}
