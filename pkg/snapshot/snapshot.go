// Package snapshot reads point-in-time host resource metrics: CPU ticks,
// per-core CPU ticks, memory counters, uptime with load averages and the
// logical core count.
//
// Every call rereads the kernel sources; nothing is cached between calls.
// By default a missing source or a missing required line terminates the
// process. WithTolerance(true) turns those conditions into returned errors.
package snapshot

import (
	"context"

	"hostsnap/internal/collector/procline"
	"hostsnap/internal/config"
	"hostsnap/internal/logger"
	"hostsnap/internal/metrics"
	"hostsnap/pkg/types"
)

// Logger is satisfied by *slog.Logger.
type Logger = logger.Logger

type Reader struct {
	sampler *metrics.Sampler
}

type options struct {
	dotenv    bool
	envFiles  []string
	overrides []func(*config.Config)
	log       Logger
	exit      func(int)
}

type Option func(*options)

// WithProcRoot points the reader at a procfs mount other than /proc.
func WithProcRoot(path string) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, func(c *config.Config) { c.ProcRoot = path })
	}
}

// WithSysRoot points the reader at a sysfs mount other than /sys.
func WithSysRoot(path string) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, func(c *config.Config) { c.SysRoot = path })
	}
}

func WithTolerance(tolerant bool) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, func(c *config.Config) { c.Tolerant = tolerant })
	}
}

// WithDotEnv loads filenames (".env" when none are given) into the process
// environment before the configuration is read. Without it New only reads
// variables that are already set.
func WithDotEnv(filenames ...string) Option {
	return func(o *options) {
		o.dotenv = true
		o.envFiles = filenames
	}
}

func WithLogger(log Logger) Option {
	return func(o *options) { o.log = log }
}

// WithExit replaces os.Exit on the fatal path.
func WithExit(exit func(code int)) Option {
	return func(o *options) { o.exit = exit }
}

// New reads the HOSTSNAP_* and LOG_* environment variables and applies opts
// on top.
func New(opts ...Option) *Reader {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var cfg *config.Config
	if o.dotenv {
		cfg = config.Load(o.envFiles...)
	} else {
		cfg = config.FromEnv()
	}
	for _, override := range o.overrides {
		override(cfg)
	}

	if o.log == nil {
		o.log = logger.New(cfg)
	}

	var lineOpts []procline.Option
	if o.exit != nil {
		lineOpts = append(lineOpts, procline.WithExit(o.exit))
	}

	return &Reader{sampler: metrics.NewSampler(cfg, o.log, lineOpts...)}
}

func (r *Reader) TotalCPUUsage() (types.CPUUsage, error) {
	return r.sampler.TotalCPU(context.Background())
}

// PerCPUUsage returns one entry per logical core. Pass the error to
// types.StatusCode for a C-style status; a core count whose labels would not
// fit yields -ENOMEM.
func (r *Reader) PerCPUUsage() ([]types.CPUUsage, error) {
	return r.sampler.PerCPU(context.Background())
}

func (r *Reader) MemUsage() (types.MemUsage, error) {
	return r.sampler.Memory(context.Background())
}

func (r *Reader) Uptime() (types.UptimeInfo, error) {
	return r.sampler.Uptime(context.Background())
}

func (r *Reader) CPUCount() int {
	return r.sampler.Cores()
}

// Collect reads everything once into a single Snapshot.
func (r *Reader) Collect(ctx context.Context) (types.Snapshot, error) {
	return r.sampler.Collect(ctx)
}
