//go:build linux || darwin

package system

import (
	"syscall"

	"github.com/charmbracelet/log"
)

// InitResourceLimits raises the open file limit to at least want, capped by
// the hard limit. Each ffmpeg child holds several descriptors.
func InitResourceLimits(logger *log.Logger, want uint64) {
	if logger == nil {
		logger = log.Default()
	}
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn("[!] could not read the open file limit", "err", err)
		return
	}
	if rLimit.Cur >= want {
		return
	}

	rLimit.Cur = want
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn("[!] could not raise the open file limit", "err", err)
		return
	}
	logger.Debug("[*] open file limit raised", "limit", rLimit.Cur)
}
