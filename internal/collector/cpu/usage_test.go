package cpu

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostsnap/internal/collector/procline"
	"hostsnap/internal/logger"
	"hostsnap/pkg/types"
)

type fixture struct {
	procRoot string
	sysRoot  string
}

func newFixture(t *testing.T, stat, online string) fixture {
	t.Helper()

	f := fixture{procRoot: t.TempDir(), sysRoot: t.TempDir()}
	require.NoError(t, os.WriteFile(filepath.Join(f.procRoot, "stat"), []byte(stat), 0o644))

	if online != "" {
		dir := filepath.Join(f.sysRoot, "devices", "system", "cpu")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "online"), []byte(online), 0o644))
	}

	return f
}

func (f fixture) collector(opts ...procline.Option) *Collector {
	log := logger.Discard()
	return NewCollector(log, procline.NewReader(log, opts...), f.procRoot, f.sysRoot)
}

func TestCollect(t *testing.T) {
	f := newFixture(t, "cpu 100 200 300 400\ncpu0 1 2 3 4\n", "0")

	usage, err := f.collector().Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CPUUsage{UserTicks: 100, SystemTicks: 200, IdleTicks: 300, NiceTicks: 400}, usage)
}

func TestCollectIgnoresExtraColumns(t *testing.T) {
	f := newFixture(t, "cpu  5 6 7 8 9 10 11 0 0 0\n", "0")

	usage, err := f.collector().Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CPUUsage{UserTicks: 5, SystemTicks: 6, IdleTicks: 7, NiceTicks: 8}, usage)
}

func TestCollectMalformed(t *testing.T) {
	f := newFixture(t, "cpu 100 200 x 400\n", "0")

	usage, err := f.collector().Collect(context.Background())
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "idle")
	assert.Equal(t, CPUUsage{UserTicks: 100, SystemTicks: 200}, usage)
}

func TestCollectTooFewColumns(t *testing.T) {
	f := newFixture(t, "cpu 1 2\n", "0")

	_, err := f.collector().Collect(context.Background())
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "missing idle")
}

func TestCollectMissingLineTolerant(t *testing.T) {
	f := newFixture(t, "cpu0 1 2 3 4\n", "0")

	_, err := f.collector(procline.WithPolicy(procline.PolicyTolerant)).Collect(context.Background())
	assert.ErrorIs(t, err, procline.ErrNotFound)
}

func TestCollectMissingLineFatal(t *testing.T) {
	f := newFixture(t, "cpu0 1 2 3 4\n", "0")

	code := 0
	_, err := f.collector(procline.WithExit(func(c int) { code = c })).Collect(context.Background())
	assert.Equal(t, 1, code)
	assert.Error(t, err)
}

func TestCollectPerCore(t *testing.T) {
	f := newFixture(t, "cpu 1 1 1 1\ncpu0 10 20 30 40\ncpu1 11 21 31 41\n", "0-1\n")

	usage, err := f.collector().CollectPerCore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, types.StatusCode(err))
	assert.Equal(t, []CPUUsage{
		{UserTicks: 10, SystemTicks: 20, IdleTicks: 30, NiceTicks: 40},
		{UserTicks: 11, SystemTicks: 21, IdleTicks: 31, NiceTicks: 41},
	}, usage)
}

func TestCollectPerCoreReturnsFreshSlice(t *testing.T) {
	f := newFixture(t, "cpu 1 1 1 1\ncpu0 10 20 30 40\n", "0\n")
	c := f.collector()

	first, err := c.CollectPerCore(context.Background())
	require.NoError(t, err)
	first[0].UserTicks = 999

	second, err := c.CollectPerCore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(10), second[0].UserTicks)
}

func TestCollectPerCoreLabelOverflow(t *testing.T) {
	// No cpuN rows at all: the bound must be rejected before any lookup.
	f := newFixture(t, "cpu 1 1 1 1\n", "0-10000\n")

	exited := false
	usage, err := f.collector(procline.WithExit(func(int) { exited = true })).CollectPerCore(context.Background())

	assert.Nil(t, usage)
	assert.False(t, exited)
	assert.ErrorIs(t, err, ErrLabelOverflow)
	assert.ErrorIs(t, err, syscall.ENOMEM)
	assert.Equal(t, -int(syscall.ENOMEM), types.StatusCode(err))
	assert.Less(t, types.StatusCode(err), 0)
}

func TestCollectPerCoreHugeOnlineRangeFallsBack(t *testing.T) {
	stat := "cpu 1 1 1 1\n"
	for i := 0; i < runtime.NumCPU(); i++ {
		stat += label(i) + " 1 2 3 4\n"
	}
	f := newFixture(t, stat, "0-9223372036854775807\n")
	c := f.collector()

	assert.Equal(t, runtime.NumCPU(), c.Count())

	var usage []CPUUsage
	var err error
	require.NotPanics(t, func() { usage, err = c.CollectPerCore(context.Background()) })
	require.NoError(t, err)
	assert.Len(t, usage, runtime.NumCPU())
}

func TestCollectPerCoreRejectsNonPositiveCount(t *testing.T) {
	f := newFixture(t, "cpu 1 1 1 1\ncpu0 1 2 3 4\n", "0")
	c := f.collector()

	for _, count := range []int{0, -1, math.MinInt} {
		usage, err := c.perCore(context.Background(), count)
		assert.Nil(t, usage)
		assert.ErrorIs(t, err, ErrCoreCount, "count %d", count)
		assert.Negative(t, types.StatusCode(err))
	}
}

func TestCollectCancelled(t *testing.T) {
	f := newFixture(t, "cpu 1 2 3 4\ncpu0 5 6 7 8\n", "0")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.collector().Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	usage, err := f.collector().CollectPerCore(ctx)
	assert.Nil(t, usage)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectPerCoreLargestAcceptedLabel(t *testing.T) {
	assert.Len(t, label(9999), MaxLabelLen)
	assert.Greater(t, len(label(10000)), MaxLabelLen)
}

func TestCollectPerCoreMissingCoreTolerant(t *testing.T) {
	f := newFixture(t, "cpu 1 1 1 1\ncpu0 10 20 30 40\n", "0-1\n")

	usage, err := f.collector(procline.WithPolicy(procline.PolicyTolerant)).CollectPerCore(context.Background())
	assert.Nil(t, usage)
	assert.ErrorIs(t, err, procline.ErrNotFound)
}

func TestReadsAreIdempotent(t *testing.T) {
	f := newFixture(t, "cpu 1 2 3 4\ncpu0 5 6 7 8\n", "0")
	c := f.collector()

	a, err := c.Collect(context.Background())
	require.NoError(t, err)
	b, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	pa, err := c.CollectPerCore(context.Background())
	require.NoError(t, err)
	pb, err := c.CollectPerCore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestCountFallsBackToRuntime(t *testing.T) {
	f := newFixture(t, "cpu 1 1 1 1\n", "")

	assert.Equal(t, runtime.NumCPU(), f.collector().Count())
}

func TestCountMalformedFallsBack(t *testing.T) {
	f := newFixture(t, "cpu 1 1 1 1\n", "zero-three\n")

	assert.Equal(t, runtime.NumCPU(), f.collector().Count())
}

func TestParseOnline(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0\n", 1, false},
		{"0-3", 4, false},
		{"0-3,6,8-9\n", 7, false},
		{"", 0, false},
		{"3-1", 0, true},
		{"a", 0, true},
		{"0-b", 0, true},
		{"0-9223372036854775807", 0, true},
		{"0-1048575", 1 << 20, false},
		{"0-1048576", 0, true},
		{"0-524287,524288-1048575,0", 0, true},
	}

	for _, tt := range tests {
		got, err := parseOnline(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "parseOnline(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "parseOnline(%q)", tt.in)
		assert.Equal(t, tt.want, got, "parseOnline(%q)", tt.in)
	}
}
