package system

import (
	"context"
	"image"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickEncoder(t *testing.T) {
	listing := ` V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC (codec h264)
 V....D h264_nvenc           NVIDIA NVENC H.264 encoder (codec h264)
 V....D h264_videotoolbox    VideoToolbox H.264 Encoder (codec h264)`

	assert.Equal(t, "h264_videotoolbox", PickEncoder(listing))
	assert.Equal(t, "h264_nvenc", PickEncoder(" V....D h264_nvenc  NVIDIA"))
	assert.Equal(t, SoftwareEncoder, PickEncoder(" V....D libx264  libx264"))
	// A mention in a description is not an encoder entry.
	assert.Equal(t, SoftwareEncoder, PickEncoder(" V....D libx264  like h264_nvenc"))
	assert.Equal(t, SoftwareEncoder, PickEncoder(""))
}

func TestGetBestH264EncoderMissingBinary(t *testing.T) {
	enc := GetBestH264Encoder(context.Background(), "/nonexistent/ffmpeg", log.New(io.Discard))
	assert.Equal(t, SoftwareEncoder, enc)
}

func TestValidEncoder(t *testing.T) {
	assert.True(t, ValidEncoder("libx264"))
	assert.True(t, ValidEncoder("h264_nvenc"))
	assert.False(t, ValidEncoder("prores"))
}

func TestImagePool(t *testing.T) {
	p := NewImagePool()
	rect := image.Rect(0, 0, 16, 8)

	img := p.Get(rect)
	require.NotNil(t, img)
	assert.Equal(t, rect, img.Rect)
	assert.EqualValues(t, 1, p.Allocations())

	p.Put(img)
	other := p.Get(image.Rect(0, 0, 4, 4))
	assert.Equal(t, image.Rect(0, 0, 4, 4), other.Rect)

	// Sub-images and nil are dropped.
	p.Put(img.SubImage(image.Rect(1, 1, 4, 4)).(*image.RGBA))
	p.Put(nil)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512B", FormatBytes(512))
	assert.Equal(t, "1.0KiB", FormatBytes(1024))
	assert.Equal(t, "1.5MiB", FormatBytes(1536*1024))
	assert.Equal(t, "2.0GiB", FormatBytes(2<<30))
}

func TestSampleHost(t *testing.T) {
	s, err := SampleHost(context.Background(), 10*time.Millisecond)
	require.NoError(t, err)
	assert.Positive(t, s.LogicalCPUs)
	assert.Positive(t, s.MemTotal)
	assert.Contains(t, s.String(), "CPUs:")
}
