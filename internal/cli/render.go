package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/voxarel/showcase/internal/config"
	"github.com/voxarel/showcase/internal/engine"
	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/system"
	"github.com/voxarel/showcase/internal/video"
)

func videoFlags(fs *pflag.FlagSet, cfg *config.Config) {
	sceneFlags(fs, cfg)
	fs.StringVarP(&cfg.OutputVideo, "output", "o", cfg.OutputVideo, "output video file")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second")
	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "parallel render workers")
	fs.Float64VarP(&cfg.Duration, "duration", "d", cfg.Duration, "tour footage in seconds (0 = one full cycle)")
	fs.Float64Var(&cfg.FadeDuration, "fade", cfg.FadeDuration, "fade in/out in seconds")
	fs.BoolVar(&cfg.Smoothing, "smoothing", cfg.Smoothing, "ease the camera toward the tour pose")
	fs.Float64Var(&cfg.EndCard, "end-card", cfg.EndCard, "seconds of closing card (0 disables)")
	fs.StringVar(&cfg.EndCardURL, "end-card-url", cfg.EndCardURL, "URL encoded as a QR code on the end card")
	fs.StringVar(&cfg.FFmpeg, "ffmpeg", cfg.FFmpeg, "ffmpeg executable")
	fs.StringVar(&cfg.VideoEncoder, "encoder", cfg.VideoEncoder, "auto, libx264, h264_nvenc or h264_videotoolbox")
	fs.IntVarP(&cfg.Quality, "quality", "q", cfg.Quality, "CRF/CQ, or bitrate in 100 kbit/s for videotoolbox")
	fs.BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "print a performance report and append to benchmark.log")
}

func (c *CLI) snapshotCommand() *cobra.Command {
	var (
		at     float64
		output string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame of the tour as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, sceneFlags)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			p := engine.NewVideoProject(cfg, layout.NewCache(), nil, logger)
			if err := p.Snapshot(cmd.Context(), at, output); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Snapshot at %.2fs", at)
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}
	bindFlags(cmd, sceneFlags)
	cmd.Flags().Float64Var(&at, "at", 0, "elapsed tour time in seconds")
	cmd.Flags().StringVarP(&output, "output", "o", "frame.png", "output PNG file")
	return cmd
}

func (c *CLI) renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the tour to a video with ffmpeg",
		Long: `Render the tour to a video.

Frames are rasterized in parallel and streamed in order to ffmpeg as raw
RGBA. With --encoder auto the fastest available H.264 encoder is used
(VideoToolbox, NVENC, then libx264). A closing card with a QR code of
--end-card-url follows the tour unless --end-card is 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, videoFlags)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			system.InitResourceLimits(logger, 2048)

			enc := &video.FFmpegEncoder{Binary: cfg.FFmpeg, Release: system.PutImage}
			p := engine.NewVideoProject(cfg, layout.NewCache(), enc, logger)
			p.Out = cmd.OutOrStdout()

			prog := newProgress(logger)
			if err := p.Run(cmd.Context()); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			prog.done("Render complete")
			printFile(cmd.OutOrStdout(), cfg.OutputVideo)
			return nil
		},
	}
	bindFlags(cmd, videoFlags)
	return cmd
}
