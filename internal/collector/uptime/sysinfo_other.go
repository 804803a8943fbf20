//go:build !linux

package uptime

func readSysinfo() (rawInfo, error) {
	return rawInfo{}, ErrUnsupported
}
