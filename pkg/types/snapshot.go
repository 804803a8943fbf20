package types

import (
	"errors"
	"syscall"
	"time"
)

// CPUUsage holds cumulative tick counters since boot. Callers difference two
// readings to obtain rates.
type CPUUsage struct {
	UserTicks   uint64 `json:"user_ticks"`
	SystemTicks uint64 `json:"system_ticks"`
	IdleTicks   uint64 `json:"idle_ticks"`
	NiceTicks   uint64 `json:"nice_ticks"`
}

// MemUsage values are in kilobytes.
type MemUsage struct {
	Total     uint64 `json:"total"`
	Free      uint64 `json:"free"`
	Available uint64 `json:"available"`
	Cached    uint64 `json:"cached"`
	Active    uint64 `json:"active"`
	Inactive  uint64 `json:"inactive"`
	Swapins   uint64 `json:"swapins"`
	Swapouts  uint64 `json:"swapouts"`
	Wirecount uint64 `json:"wirecount"`
}

// LoadScale is 1 << SI_LOAD_SHIFT, the fixed-point base of sysinfo loads.
const LoadScale = 1 << 16

// UptimeInfo carries the load averages in the kernel's fixed-point form, as
// sysinfo(2) returns them. Divide by LoadScale, or use ScaledLoads, for the
// values shown in /proc/loadavg.
type UptimeInfo struct {
	UptimeTicks uint64  `json:"uptime_ticks"`
	Load1m      float64 `json:"load_1m"`
	Load5m      float64 `json:"load_5m"`
	Load15m     float64 `json:"load_15m"`
}

func (u UptimeInfo) ScaledLoads() (load1m, load5m, load15m float64) {
	return u.Load1m / LoadScale, u.Load5m / LoadScale, u.Load15m / LoadScale
}

type Snapshot struct {
	CPU        CPUUsage   `json:"cpu"`
	PerCPU     []CPUUsage `json:"per_cpu"`
	Memory     MemUsage   `json:"memory"`
	Uptime     UptimeInfo `json:"uptime"`
	Cores      int        `json:"cores"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// StatusCode maps err to a C-style status: 0 for nil, the negated errno when
// err wraps one, -EIO otherwise.
func StatusCode(err error) int {
	if err == nil {
		return 0
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return -int(errno)
	}

	return -int(syscall.EIO)
}
