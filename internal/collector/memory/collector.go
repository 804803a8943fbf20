// Package memory reads the kilobyte counters of /proc/meminfo.
package memory

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"hostsnap/internal/collector/procline"
	"hostsnap/internal/logger"
)

func NewCollector(log logger.Logger, lines *procline.Reader, procRoot string) *Collector {
	return &Collector{
		log:         log,
		lines:       lines,
		meminfoPath: filepath.Join(procRoot, "meminfo"),
	}
}

// Collect looks every field up with its own pass over meminfo. Under a
// tolerant reader all fields are attempted and the failures are returned
// together with whatever was read.
func (c *Collector) Collect(ctx context.Context) (MemUsage, error) {
	var usage MemUsage
	fields := []struct {
		label string
		dst   *uint64
	}{
		{"MemTotal:", &usage.Total},
		{"MemFree:", &usage.Free},
		{"MemAvailable:", &usage.Available},
		{"Cached:", &usage.Cached},
		{"Active:", &usage.Active},
		{"Inactive:", &usage.Inactive},
		{"Swapins:", &usage.Swapins},
		{"Swapouts:", &usage.Swapouts},
		{"Wirecount:", &usage.Wirecount},
	}

	var result *multierror.Error
	for _, f := range fields {
		if err := ctx.Err(); err != nil {
			return usage, multierror.Append(result, err).ErrorOrNil()
		}

		v, err := c.readField(f.label)
		if err != nil {
			c.log.Warn("failed to read meminfo field", "field", f.label, "error", err)
			result = multierror.Append(result, err)
			continue
		}
		*f.dst = v
	}

	return usage, result.ErrorOrNil()
}

func (c *Collector) readField(label string) (uint64, error) {
	line, err := c.lines.Find(c.meminfoPath, label)
	if err != nil {
		return 0, err
	}

	return parseKB(line, label)
}

// parseKB reads "Label: N kB". The unit is optional.
func parseKB(line, label string) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("%w: %s: missing value", ErrMalformed, label)
	}

	if len(fields) > 2 && fields[2] != "kB" {
		return 0, fmt.Errorf("%w: %s: unexpected unit %q", ErrMalformed, label, fields[2])
	}

	v, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %w", ErrMalformed, label, fields[1], err)
	}

	return v, nil
}
