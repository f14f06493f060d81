// Command arenademo exercises an arena the way a phase-based program would:
// it fills a long lived array, interns a string, then grows and drops a large
// scratch region with Mark and Release.
package main

import (
	"encoding"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/pavanmanishd/arena/v2"
	"github.com/pavanmanishd/arena/v2/arenametrics"
)

// textValue adapts encoding.Text(Un)Marshaler types to kingpin.Value.
type textValue struct {
	v interface {
		encoding.TextMarshaler
		encoding.TextUnmarshaler
	}
}

func (t textValue) Set(s string) error { return t.v.UnmarshalText([]byte(s)) }

func (t textValue) String() string {
	b, _ := t.v.MarshalText()
	return string(b)
}

func main() {
	var (
		cfg  = arena.DefaultConfig()
		opts options
	)

	app := kingpin.New("arenademo", "Run an allocation scenario against a bump arena.")
	app.HelpFlag.Short('h')
	configFile := app.Flag("config.file", "YAML arena configuration. Overrides the arena flags below.").String()
	app.Flag("arena.block-size", "Default block size.").Default("64KB").SetValue(textValue{&cfg.BlockSize})
	app.Flag("arena.max-block-size", "Largest default block size reached by doubling growth.").Default("64MB").SetValue(textValue{&cfg.MaxBlockSize})
	app.Flag("arena.growth", "Block growth policy (fixed or doubling).").Default("fixed").SetValue(textValue{&cfg.Growth})
	app.Flag("arena.max-bytes", "Limit on reserved bytes, 0 for none.").Default("0").SetValue(textValue{&cfg.MaxBytes})
	app.Flag("arena.pool", "Recycle block buffers through a pool.").BoolVar(&cfg.Pool.Enabled)
	app.Flag("integers", "Number of integers in the long lived array.").Default("1000").IntVar(&opts.integers)
	app.Flag("scratch", "Number of float64 in the scratch region.").Default("1048576").IntVar(&opts.scratch)
	app.Flag("name", "String to intern in the arena.").Default("blah blah blah").StringVar(&opts.name)
	app.Flag("metrics", "Print the arena metrics in Prometheus text format.").BoolVar(&opts.metrics)
	logLevel := app.Flag("log.level", "Only log messages with the given severity or above.").Default("info").Enum("debug", "info", "warn", "error")
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, level.Allow(level.ParseDefault(*logLevel, level.InfoValue())))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	if *configFile != "" {
		var err error
		if cfg, err = loadConfig(*configFile); err != nil {
			exitWithErr(logger, err)
		}
	}

	reg := prometheus.NewRegistry()
	if err := run(logger, cfg, opts, arenametrics.NewMetrics(reg, "demo"), os.Stdout); err != nil {
		exitWithErr(logger, err)
	}

	if opts.metrics {
		mfs, err := reg.Gather()
		if err != nil {
			exitWithErr(logger, errors.Wrap(err, "failed to gather metrics"))
		}
		for _, mf := range mfs {
			if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
				exitWithErr(logger, err)
			}
		}
	}
}

// loadConfig reads a YAML arena configuration from path.
func loadConfig(path string) (arena.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return arena.Config{}, errors.Wrap(err, "failed to read config")
	}
	cfg, err := arena.ParseConfig(data)
	if err != nil {
		return arena.Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func exitWithErr(logger log.Logger, err error) {
	level.Error(logger).Log("msg", "arenademo failed", "err", err)
	os.Exit(1)
}
