package cpu

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Count returns the number of online logical processors. It reads the range
// list in devices/system/cpu/online and falls back to runtime.NumCPU.
func (c *Collector) Count() int {
	data, err := os.ReadFile(c.onlinePath)
	if err != nil {
		c.log.Debug("cpu online list unavailable", "path", c.onlinePath, "error", err)
		return runtime.NumCPU()
	}

	n, err := parseOnline(string(data))
	if err != nil || n == 0 {
		c.log.Warn("failed to parse cpu online list", "path", c.onlinePath, "error", err)
		return runtime.NumCPU()
	}

	return n
}

// parseOnline counts the processors in a list such as "0-3,6,8-9".
func parseOnline(list string) (int, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return 0, nil
	}

	count := 0
	for _, part := range strings.Split(list, ",") {
		lo, hi, isRange := strings.Cut(part, "-")

		first, err := strconv.Atoi(lo)
		if err != nil {
			return 0, fmt.Errorf("invalid cpu %q: %w", part, err)
		}

		last := first
		if isRange {
			if last, err = strconv.Atoi(hi); err != nil {
				return 0, fmt.Errorf("invalid cpu range %q: %w", part, err)
			}
		}

		if first < 0 || last < first {
			return 0, fmt.Errorf("invalid cpu range %q", part)
		}
		if last >= maxOnlineCPUs {
			return 0, fmt.Errorf("cpu range %q exceeds %d", part, maxOnlineCPUs)
		}

		count += last - first + 1
		if count > maxOnlineCPUs {
			return 0, fmt.Errorf("cpu list exceeds %d entries", maxOnlineCPUs)
		}
	}

	return count, nil
}
