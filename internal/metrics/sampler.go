// Package metrics
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"hostsnap/internal/collector/cpu"
	"hostsnap/internal/collector/memory"
	"hostsnap/internal/collector/procline"
	"hostsnap/internal/collector/uptime"
	"hostsnap/internal/config"
	"hostsnap/internal/logger"
	"hostsnap/pkg/types"
)

type Sampler struct {
	cpu    *cpu.Collector
	memory *memory.Collector
	uptime *uptime.Collector
	log    logger.Logger
}

// NewSampler wires the collectors to cfg. lineOpts are applied after the
// policy derived from cfg.Tolerant.
func NewSampler(cfg *config.Config, log logger.Logger, lineOpts ...procline.Option) *Sampler {
	policy := procline.PolicyFatal
	if cfg.Tolerant {
		policy = procline.PolicyTolerant
	}
	lines := procline.NewReader(log, append([]procline.Option{procline.WithPolicy(policy)}, lineOpts...)...)

	return &Sampler{
		cpu:    cpu.NewCollector(log, lines, cfg.ProcRoot, cfg.SysRoot),
		memory: memory.NewCollector(log, lines, cfg.ProcRoot),
		uptime: uptime.NewCollector(log),
		log:    log,
	}
}

func (s *Sampler) TotalCPU(ctx context.Context) (types.CPUUsage, error) {
	return s.cpu.Collect(ctx)
}

func (s *Sampler) PerCPU(ctx context.Context) ([]types.CPUUsage, error) {
	return s.cpu.CollectPerCore(ctx)
}

func (s *Sampler) Memory(ctx context.Context) (types.MemUsage, error) {
	return s.memory.Collect(ctx)
}

func (s *Sampler) Uptime(ctx context.Context) (types.UptimeInfo, error) {
	return s.uptime.Collect(ctx)
}

func (s *Sampler) Cores() int {
	return s.cpu.Count()
}

// Collect runs every collector once. Failures are logged and aggregated; the
// snapshot holds whatever was read.
func (s *Sampler) Collect(ctx context.Context) (types.Snapshot, error) {
	snap := types.Snapshot{RecordedAt: time.Now().UTC()}

	steps := []struct {
		name string
		run  func() error
	}{
		{"cpu", func() (err error) { snap.CPU, err = s.cpu.Collect(ctx); return }},
		{"per_cpu", func() (err error) { snap.PerCPU, err = s.cpu.CollectPerCore(ctx); return }},
		{"memory", func() (err error) { snap.Memory, err = s.memory.Collect(ctx); return }},
		{"uptime", func() (err error) { snap.Uptime, err = s.uptime.Collect(ctx); return }},
		{"cores", func() error { snap.Cores = s.cpu.Count(); return nil }},
	}

	var result *multierror.Error
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			result = multierror.Append(result, err)
			break
		}

		if err := step.run(); err != nil {
			s.log.Error("collector", "name", step.name, "error", err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", step.name, err))
		}
	}

	return snap, result.ErrorOrNil()
}
