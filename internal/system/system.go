package system

import (
	"context"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Приоритеты:
// 1. MacOS (VideoToolbox)
// 2. NVIDIA (NVENC)
// 3. Software (libx264)
var hardwareEncoders = []string{"h264_videotoolbox", "h264_nvenc"}

// SoftwareEncoder is used when no hardware encoder is available.
const SoftwareEncoder = "libx264"

// GetBestH264Encoder asks ffmpeg which encoders it was built with and picks
// the fastest H.264 one. Any probe failure falls back to libx264.
func GetBestH264Encoder(ctx context.Context, ffmpeg string, logger *log.Logger) string {
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	out, err := exec.CommandContext(ctx, ffmpeg, "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		if logger != nil {
			logger.Warn("encoder probe failed", "ffmpeg", ffmpeg, "err", err)
		}
		return SoftwareEncoder
	}
	enc := PickEncoder(string(out))
	if logger != nil {
		logger.Debug("encoder selected", "encoder", enc)
	}
	return enc
}

// PickEncoder chooses an encoder from the output of `ffmpeg -encoders`.
func PickEncoder(listing string) string {
	for _, name := range hardwareEncoders {
		for _, line := range strings.Split(listing, "\n") {
			fields := strings.Fields(line)
			if len(fields) >= 2 && fields[1] == name {
				return name
			}
		}
	}
	return SoftwareEncoder
}

// ValidEncoder reports whether name is one of the encoders the video
// pipeline knows quality settings for.
func ValidEncoder(name string) bool {
	if name == SoftwareEncoder {
		return true
	}
	for _, h := range hardwareEncoders {
		if h == name {
			return true
		}
	}
	return false
}
