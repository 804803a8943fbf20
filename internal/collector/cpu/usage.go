package cpu

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Collect reads the aggregate "cpu" row.
func (c *Collector) Collect(ctx context.Context) (CPUUsage, error) {
	if err := ctx.Err(); err != nil {
		return CPUUsage{}, err
	}

	line, err := c.lines.Find(c.statPath, "cpu")
	if err != nil {
		return CPUUsage{}, err
	}

	return parseTicks(line, "cpu")
}

// CollectPerCore reads one "cpuN" row per logical core. The returned slice is a
// fresh allocation owned by the caller.
func (c *Collector) CollectPerCore(ctx context.Context) ([]CPUUsage, error) {
	return c.perCore(ctx, c.Count())
}

func (c *Collector) perCore(ctx context.Context, count int) ([]CPUUsage, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrCoreCount, count)
	}

	if last := label(count - 1); len(last) > MaxLabelLen {
		c.log.Warn("refusing per-core read", "cores", count, "label", last)
		return nil, fmt.Errorf("%w: %s", ErrLabelOverflow, last)
	}

	usage := make([]CPUUsage, count)
	for i := range usage {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := label(i)

		line, err := c.lines.Find(c.statPath, name)
		if err != nil {
			return nil, err
		}

		if usage[i], err = parseTicks(line, name); err != nil {
			return nil, err
		}
	}

	c.log.Debug("per-core usage read", "cores", count)
	return usage, nil
}

func label(i int) string {
	return "cpu" + strconv.Itoa(i)
}

// parseTicks reads the four counters after the label in the fixed order user,
// system, idle, nice. Counters parsed before a failure are kept.
func parseTicks(line, name string) (CPUUsage, error) {
	var usage CPUUsage

	fields := strings.Fields(line)
	targets := []struct {
		field string
		dst   *uint64
	}{
		{"user", &usage.UserTicks},
		{"system", &usage.SystemTicks},
		{"idle", &usage.IdleTicks},
		{"nice", &usage.NiceTicks},
	}

	for i, t := range targets {
		pos := i + 1
		if pos >= len(fields) {
			return usage, fmt.Errorf("%w: %s: missing %s", ErrMalformed, name, t.field)
		}

		v, err := strconv.ParseUint(fields[pos], 10, 64)
		if err != nil {
			return usage, fmt.Errorf("%w: %s: %s %q: %w", ErrMalformed, name, t.field, fields[pos], err)
		}
		*t.dst = v
	}

	return usage, nil
}
