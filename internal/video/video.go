package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"

	"golang.org/x/image/draw"
)

// ErrFrameSize is returned when a frame does not match the stream size.
var ErrFrameSize = errors.New("frame size does not match stream")

// StreamParams describes one encoded stream.
type StreamParams struct {
	Width, Height int
	FPS           int
	Encoder       string // h264_videotoolbox, h264_nvenc or libx264
	Quality       int
	FadeIn        float64 // seconds
	FadeOut       float64 // seconds
	Duration      float64 // total seconds, needed for FadeOut
}

// Encoder turns a stream of frames into a video file.
type Encoder interface {
	Encode(ctx context.Context, frames <-chan *image.RGBA, path string, params StreamParams) error
}

// FFmpegEncoder pipes raw RGBA frames to ffmpeg over stdin.
type FFmpegEncoder struct {
	// Binary is the ffmpeg executable, "ffmpeg" when empty.
	Binary string
	// OnFrame, if set, is called after each frame is written.
	OnFrame func(n int)
	// Release, if set, receives each frame once it has been written.
	Release func(*image.RGBA)
}

func (e *FFmpegEncoder) binary() string {
	if e.Binary == "" {
		return "ffmpeg"
	}
	return e.Binary
}

// Encode consumes frames until the channel is closed. On error the remaining
// frames are drained so producers never block.
func (e *FFmpegEncoder) Encode(ctx context.Context, frames <-chan *image.RGBA, path string, params StreamParams) (err error) {
	defer func() {
		if err != nil {
			for f := range frames {
				e.release(f)
			}
		}
	}()

	cmd := exec.CommandContext(ctx, e.binary(), BuildArgs(path, params)...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	n := 0
	for f := range frames {
		werr := writeRawRGBA(stdin, f, params.Width, params.Height)
		e.release(f)
		if werr != nil {
			stdin.Close()
			cmd.Wait()
			return fmt.Errorf("write frame %d: %w", n, werr)
		}
		n++
		if e.OnFrame != nil {
			e.OnFrame(n)
		}
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w, output: %s", err, out.String())
	}
	return nil
}

func (e *FFmpegEncoder) release(f *image.RGBA) {
	if e.Release != nil {
		e.Release(f)
	}
}

// BuildArgs returns the ffmpeg argument list for one stream.
func BuildArgs(path string, p StreamParams) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", strconv.Itoa(p.FPS),
		"-i", "-",
	}
	if vf := FadeFilter(p); vf != "" {
		args = append(args, "-vf", vf)
	}
	args = append(args, "-pix_fmt", "yuv420p", "-c:v", p.Encoder)
	args = append(args, QualityArgs(p.Encoder, p.Quality)...)
	return append(args, path)
}

// QualityArgs maps a 0-100ish quality knob onto each encoder's own control.
func QualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую на всех версиях. Используем битрейт.
		bitrate := quality * 100 // кбит/с. 75 -> 7.5Мбит/с
		return []string{"-b:v", fmt.Sprintf("%dk", bitrate)}
	case "h264_nvenc":
		return []string{"-cq", strconv.Itoa(quality)}
	default: // libx264
		return []string{"-crf", strconv.Itoa(quality), "-preset", "medium"}
	}
}

// FadeFilter builds the fade in/out filter chain, or "" when neither is set.
func FadeFilter(p StreamParams) string {
	vf := ""
	if p.FadeIn > 0 {
		vf = fmt.Sprintf("fade=t=in:st=0:d=%.3f", p.FadeIn)
	}
	if p.FadeOut > 0 && p.Duration > p.FadeOut {
		if vf != "" {
			vf += ","
		}
		vf += fmt.Sprintf("fade=t=out:st=%.3f:d=%.3f", p.Duration-p.FadeOut, p.FadeOut)
	}
	return vf
}

func writeRawRGBA(w io.Writer, img *image.RGBA, width, height int) error {
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), width, height)
	}
	// Проверяем стандартный шаг (stride), иначе копируем в плотный буфер
	if img.Stride != width*4 || b.Min != (image.Point{}) {
		dense := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(dense, dense.Bounds(), img, b.Min, draw.Src)
		img = dense
	}
	_, err := w.Write(img.Pix)
	return err
}
