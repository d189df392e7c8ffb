package video

import (
	"bytes"
	"context"
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	args := BuildArgs("out.mp4", StreamParams{Width: 1280, Height: 720, FPS: 30, Encoder: "libx264", Quality: 23})
	assert.Equal(t, []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", "1280x720",
		"-framerate", "30",
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", "libx264",
		"-crf", "23", "-preset", "medium",
		"out.mp4",
	}, args)
}

func TestQualityArgs(t *testing.T) {
	assert.Equal(t, []string{"-b:v", "7500k"}, QualityArgs("h264_videotoolbox", 75))
	assert.Equal(t, []string{"-cq", "28"}, QualityArgs("h264_nvenc", 28))
	assert.Equal(t, []string{"-crf", "18", "-preset", "medium"}, QualityArgs("libx264", 18))
}

func TestFadeFilter(t *testing.T) {
	assert.Equal(t, "", FadeFilter(StreamParams{}))
	assert.Equal(t, "fade=t=in:st=0:d=0.500", FadeFilter(StreamParams{FadeIn: 0.5}))
	assert.Equal(t,
		"fade=t=in:st=0:d=0.500,fade=t=out:st=9.000:d=1.000",
		FadeFilter(StreamParams{FadeIn: 0.5, FadeOut: 1, Duration: 10}))
	assert.Equal(t, "", FadeFilter(StreamParams{FadeOut: 2, Duration: 1}), "fade longer than the video")

	args := BuildArgs("x.mp4", StreamParams{Width: 2, Height: 2, FPS: 1, Encoder: "libx264", FadeIn: 1})
	assert.Contains(t, args, "-vf")
}

func TestWriteRawRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}

	var buf bytes.Buffer
	require.NoError(t, writeRawRGBA(&buf, img, 4, 3))
	assert.Equal(t, img.Pix, buf.Bytes())

	// A sub-image has a wider stride than its width.
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	buf.Reset()
	require.NoError(t, writeRawRGBA(&buf, sub, 2, 2))
	assert.Len(t, buf.Bytes(), 2*2*4)
	assert.Equal(t, img.Pix[img.PixOffset(1, 1):img.PixOffset(1, 1)+8], buf.Bytes()[:8])

	assert.ErrorIs(t, writeRawRGBA(&buf, img, 8, 8), ErrFrameSize)
}

func TestEncodeDrainsOnStartFailure(t *testing.T) {
	frames := make(chan *image.RGBA, 3)
	for i := 0; i < 3; i++ {
		frames <- image.NewRGBA(image.Rect(0, 0, 2, 2))
	}
	close(frames)

	released := 0
	enc := &FFmpegEncoder{
		Binary:  filepath.Join(t.TempDir(), "no-such-ffmpeg"),
		Release: func(*image.RGBA) { released++ },
	}
	err := enc.Encode(context.Background(), frames, "out.mp4", StreamParams{Width: 2, Height: 2, FPS: 1})
	assert.Error(t, err)
	assert.Equal(t, 3, released)
}
