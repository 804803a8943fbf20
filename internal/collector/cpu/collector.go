// Package cpu reads aggregate and per-core tick counters from /proc/stat and
// the logical core count from sysfs.
package cpu

import (
	"path/filepath"

	"hostsnap/internal/collector/procline"
	"hostsnap/internal/logger"
)

func NewCollector(log logger.Logger, lines *procline.Reader, procRoot, sysRoot string) *Collector {
	return &Collector{
		log:        log,
		lines:      lines,
		statPath:   filepath.Join(procRoot, "stat"),
		onlinePath: filepath.Join(sysRoot, "devices", "system", "cpu", "online"),
	}
}
