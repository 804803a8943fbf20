// Package uptime reads uptime and load averages from sysinfo(2).
package uptime

import (
	"context"
	"errors"

	"hostsnap/internal/logger"
	"hostsnap/pkg/types"
)

var ErrUnsupported = errors.New("sysinfo is not supported on this platform")

type Collector struct {
	log     logger.Logger
	sysinfo sysinfoFunc
}

type UptimeInfo = types.UptimeInfo

func NewCollector(log logger.Logger) *Collector {
	return &Collector{log: log, sysinfo: readSysinfo}
}

// Collect returns seconds since boot and the 1, 5 and 15 minute loads exactly
// as sysinfo reports them, in fixed point. See UptimeInfo.ScaledLoads.
func (c *Collector) Collect(ctx context.Context) (UptimeInfo, error) {
	if err := ctx.Err(); err != nil {
		return UptimeInfo{}, err
	}

	info, err := c.sysinfo()
	if err != nil {
		c.log.Error("sysinfo failed", "error", err)
		return UptimeInfo{}, err
	}

	return UptimeInfo{
		UptimeTicks: info.uptime,
		Load1m:      float64(info.loads[0]),
		Load5m:      float64(info.loads[1]),
		Load15m:     float64(info.loads[2]),
	}, nil
}

type rawInfo struct {
	uptime uint64
	loads  [3]uint64
}

type sysinfoFunc func() (rawInfo, error)
