//go:build !linux && !darwin

package system

import "github.com/charmbracelet/log"

// InitResourceLimits is a no-op where rlimits do not exist.
func InitResourceLimits(logger *log.Logger, want uint64) {}
