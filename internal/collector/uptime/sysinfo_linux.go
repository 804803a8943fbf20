//go:build linux

package uptime

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func readSysinfo() (rawInfo, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return rawInfo{}, fmt.Errorf("sysinfo: %w", err)
	}

	raw := rawInfo{uptime: uint64(info.Uptime)}
	for i := range raw.loads {
		raw.loads[i] = uint64(info.Loads[i])
	}
	return raw, nil
}
