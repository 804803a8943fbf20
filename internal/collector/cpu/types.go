package cpu

import (
	"errors"
	"fmt"
	"syscall"

	"hostsnap/internal/collector/procline"
	"hostsnap/internal/logger"
	"hostsnap/pkg/types"
)

const (
	// MaxLabelLen is the longest per-core label accepted, "cpu" plus four digits.
	MaxLabelLen = 7
	// maxOnlineCPUs bounds the parsed online list so the count cannot wrap.
	maxOnlineCPUs = 1 << 20
)

var (
	ErrMalformed     = errors.New("malformed cpu line")
	ErrCoreCount     = errors.New("invalid core count")
	ErrLabelOverflow = fmt.Errorf("cpu label longer than %d bytes: %w", MaxLabelLen, syscall.ENOMEM)
)

type Collector struct {
	log        logger.Logger
	lines      *procline.Reader
	statPath   string
	onlinePath string
}

type CPUUsage = types.CPUUsage
