package memory

import (
	"errors"

	"hostsnap/internal/collector/procline"
	"hostsnap/internal/logger"
	"hostsnap/pkg/types"
)

var ErrMalformed = errors.New("malformed meminfo line")

type Collector struct {
	log         logger.Logger
	lines       *procline.Reader
	meminfoPath string
}

type MemUsage = types.MemUsage
