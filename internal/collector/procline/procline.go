// Package procline finds labelled rows in line-oriented kernel tables such as
// /proc/stat and /proc/meminfo.
//
// A row matches when it starts with the requested name followed by a single
// space, so "cpu" selects the aggregate row and never "cpu0".
package procline

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"hostsnap/internal/logger"
)

const (
	// InitialLineSize is the starting capacity of the line buffer.
	InitialLineSize = 1234
	// MaxLineSize bounds how far the line buffer may grow.
	MaxLineSize = 64 * 1024

	separator = ' '
)

var (
	ErrOpen        = errors.New("could not open proc file")
	ErrNotFound    = errors.New("could not find proc line")
	ErrLineTooLong = errors.New("proc line exceeds buffer")
)

type Policy int

const (
	// PolicyFatal terminates the process when a source cannot be opened or a
	// required line is absent.
	PolicyFatal Policy = iota
	// PolicyTolerant returns those conditions as errors.
	PolicyTolerant
)

type Reader struct {
	log    logger.Logger
	policy Policy
	exit   func(code int)
}

type Option func(*Reader)

func WithPolicy(p Policy) Option {
	return func(r *Reader) { r.policy = p }
}

// WithExit replaces os.Exit on the fatal path.
func WithExit(exit func(code int)) Option {
	return func(r *Reader) { r.exit = exit }
}

func NewReader(log logger.Logger, opts ...Option) *Reader {
	r := &Reader{
		log:    log,
		policy: PolicyFatal,
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) Policy() Policy {
	return r.policy
}

// Find returns the full line of path whose label is name. Under PolicyFatal an
// open failure or a missing line does not return.
func (r *Reader) Find(path, name string) (string, error) {
	line, err := Find(path, name)
	if err == nil {
		return line, nil
	}

	if r.policy == PolicyFatal && (errors.Is(err, ErrOpen) || errors.Is(err, ErrNotFound)) {
		r.log.Error("fatal proc read", "path", path, "field", name, "error", err)
		r.exit(1)
	}

	return "", err
}

// Find scans path once and returns the first line labelled name, without the
// trailing newline.
func Find(path, name string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, InitialLineSize), MaxLineSize)

	for scanner.Scan() {
		line := scanner.Text()
		if Matches(line, name) {
			return line, nil
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return "", fmt.Errorf("%w: %s", ErrLineTooLong, path)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return "", fmt.Errorf("%w %s in %s", ErrNotFound, name, path)
}

// Matches reports whether line is labelled name.
func Matches(line, name string) bool {
	return strings.HasPrefix(line, name) && len(line) > len(name) && line[len(name)] == separator
}
