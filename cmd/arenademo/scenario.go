package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/pavanmanishd/arena/v2"
	"github.com/pavanmanishd/arena/v2/arenametrics"
)

type options struct {
	integers int
	scratch  int
	name     string
	metrics  bool
}

// result is what the scenario observed, kept for tests.
type result struct {
	before, afterScratch, afterRelease arena.Stats
}

func run(logger log.Logger, cfg arena.Config, opts options, m *arenametrics.Metrics, w io.Writer) error {
	res, err := scenario(logger, cfg, opts, m)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Fprintln(w, "Arena:")
	fmt.Fprintf(w, "\tbefore scratch: %s used / %s reserved\n",
		humanize.IBytes(uint64(res.before.BytesUsed)), humanize.IBytes(uint64(res.before.BytesReserved)))
	fmt.Fprintf(w, "\twith scratch:   %s used / %s reserved, %d blocks\n",
		humanize.IBytes(uint64(res.afterScratch.BytesUsed)), humanize.IBytes(uint64(res.afterScratch.BytesReserved)), res.afterScratch.NumBlocks)
	fmt.Fprintf(w, "\tafter release:  %s used / %s reserved\n",
		humanize.IBytes(uint64(res.afterRelease.BytesUsed)), humanize.IBytes(uint64(res.afterRelease.BytesReserved)))
	return nil
}

func scenario(logger log.Logger, cfg arena.Config, opts options, m *arenametrics.Metrics) (result, error) {
	var res result

	a, err := arena.NewFromConfig(cfg)
	if err != nil {
		return res, errors.Wrap(err, "creating arena")
	}
	defer a.Destroy()
	level.Debug(logger).Log("msg", "arena created", "block_size", cfg.BlockSize.HR(), "growth", cfg.Growth)

	xs, err := arena.AllocSlice[int](a, opts.integers)
	if err != nil {
		return res, errors.Wrap(err, "allocating integers")
	}
	for i := range xs {
		xs[i] = i
	}

	name, err := a.DupString(opts.name)
	if err != nil {
		return res, errors.Wrap(err, "interning name")
	}
	level.Debug(logger).Log("msg", "interned", "name", name)

	mark := a.Mark()
	res.before = a.Stats()
	m.Observe(res.before)

	scratch, err := arena.AllocSliceZeroed[float64](a, opts.scratch)
	if err != nil {
		return res, errors.Wrap(err, "allocating scratch")
	}
	for i := range scratch {
		scratch[i] = float64(i) / 2
	}
	res.afterScratch = a.Stats()
	m.Observe(res.afterScratch)

	if err := a.Release(mark); err != nil {
		return res, errors.Wrap(err, "releasing scratch")
	}
	res.afterRelease = a.Stats()
	m.Observe(res.afterRelease)

	if len(xs) > 0 && xs[len(xs)-1] != len(xs)-1 {
		return res, errors.New("long lived array was overwritten")
	}
	level.Info(logger).Log(
		"msg", "scenario done",
		"used", humanize.IBytes(uint64(res.afterRelease.BytesUsed)),
		"reserved", humanize.IBytes(uint64(res.afterRelease.BytesReserved)),
		"blocks_freed", res.afterRelease.BlocksFreed,
	)
	return res, nil
}
