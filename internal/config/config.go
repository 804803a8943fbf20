// Package config
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ProcRoot  string
	SysRoot   string
	Tolerant  bool
	LogLevel  string
	LogFormat string
}

const (
	DefaultProcRoot = "/proc"
	DefaultSysRoot  = "/sys"
)

// Load reads filenames (".env" when none are given) into the process
// environment, then returns FromEnv. Variables already set are not replaced.
func Load(filenames ...string) *Config {
	godotenv.Load(filenames...)
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() *Config {
	procRoot := os.Getenv("HOSTSNAP_PROC_ROOT")
	if procRoot == "" {
		procRoot = DefaultProcRoot
	}

	sysRoot := os.Getenv("HOSTSNAP_SYS_ROOT")
	if sysRoot == "" {
		sysRoot = DefaultSysRoot
	}

	tolerant := false
	if raw := os.Getenv("HOSTSNAP_TOLERANT"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			tolerant = parsed
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return &Config{
		ProcRoot:  procRoot,
		SysRoot:   sysRoot,
		Tolerant:  tolerant,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}
}
