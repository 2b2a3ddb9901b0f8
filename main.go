package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ZacxDev/video-toolkit/internal/config"
	"github.com/ZacxDev/video-toolkit/internal/processor"
	"github.com/ZacxDev/video-toolkit/pkg/types"
	"github.com/ZacxDev/video-toolkit/pkg/videoprocessor"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "video-toolkit",
		Short: "Compress, trim and extract audio from videos with ffmpeg",
		Long: `video-toolkit is a command-line tool that wraps ffmpeg and ffprobe.
It compresses a video toward a target file size, cuts a time range out of a
video without re-encoding, and copies the audio track out of a video.

Examples:
  # Compress a video to roughly 8 MB
  video-toolkit compress -s 8 input.mp4

  # Keep seconds 5 to 20
  video-toolkit trim --start 5 --end 20 input.mp4

  # Copy the audio track to input_audio.mp4
  video-toolkit extract-audio input.mp4`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	compressCmd := &cobra.Command{
		Use:   "compress <input>",
		Short: "Re-encode a video to fit a target file size",
		Long: fmt.Sprintf(`Re-encode a video with a bitrate computed from its duration so the output
lands near the target size. Sources taller than 240p are scaled down to the
next standard resolution. The output is written next to the input as
<name>_compressed<ext>.

Supported platforms:
%s
Example:
  video-toolkit compress -t discord input.mp4`,
			formatSupportedPlatforms()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := compressOptions(cmd, args[0])
			if err != nil {
				return err
			}

			result, err := videoprocessor.Compress(opts, newLogger(cmd))
			if result != nil && types.KindOf(err) != types.ErrorKindToolFailed {
				fmt.Fprintf(cmd.OutOrStdout(), "Compressed video saved to %s (%s, %.2f MB)\n",
					result.OutputPath, humanize.IBytes(uint64(result.OutputSize)), result.OutputSizeMB())
			}
			return err
		},
	}

	trimCmd := &cobra.Command{
		Use:   "trim <input>",
		Short: "Cut a time range out of a video without re-encoding",
		Long: `Copy the streams between --start and --end into <name>_trimmed<ext>.
Times may be given as seconds (90, 90.5), clock time (1:30, 00:01:30.250) or
Go durations (1m30s). When neither flag is set the times are read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := trimOptions(cmd, args[0])
			if err != nil {
				return err
			}

			result, err := videoprocessor.Trim(opts, newLogger(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Trimmed video saved to %s (%s)\n",
				result.OutputPath, humanize.IBytes(uint64(result.OutputSize)))
			return nil
		},
	}

	extractAudioCmd := &cobra.Command{
		Use:   "extract-audio <input>",
		Short: "Copy the audio track out of a video",
		Long: `Copy the audio stream of a video, without re-encoding, into
<name>_audio<ext>. ffmpeg asks before overwriting an existing output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := loadDefaults(cmd)
			if err != nil {
				return err
			}
			opts := &videoprocessor.ExtractAudioOptions{
				InputPath: args[0],
				Tools:     tools(cmd, defaults),
			}

			result, err := videoprocessor.ExtractAudio(opts, newLogger(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Audio saved to %s (%s)\n",
				result.OutputPath, humanize.IBytes(uint64(result.OutputSize)))
			if result.Tags != nil {
				fmt.Fprintf(out, "Tags: %s %s, title=%q artist=%q album=%q\n",
					result.Tags.FileType, result.Tags.Format,
					result.Tags.Title, result.Tags.Artist, result.Tags.Album)
			}
			return nil
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info <input>",
		Short: "Show video metadata and the compression plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compress, err := compressOptions(cmd, args[0])
			if err != nil {
				return err
			}
			opts := &videoprocessor.InfoOptions{
				InputPath:        compress.InputPath,
				TargetSizeMB:     compress.TargetSizeMB,
				AudioBitrateKbps: compress.AudioBitrateKbps,
				Tools:            compress.Tools,
			}

			result, err := videoprocessor.Info(opts, newLogger(cmd))
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), opts, result)
			return nil
		},
	}

	platformsCmd := &cobra.Command{
		Use:   "platforms",
		Short: "List the supported target platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range videoprocessor.GetSupportedPlatforms() {
				spec, err := videoprocessor.GetPlatformSpec(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-16s %8s  %s/%s @ %gk audio\n", spec.Name,
					humanize.IBytes(uint64(spec.MaxFileSize)),
					spec.VideoCodec, spec.AudioCodec, spec.AudioBitrateKbps)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "YAML file with default settings")
	rootCmd.PersistentFlags().String("ffmpeg", config.DefaultFFmpeg, "ffmpeg binary")
	rootCmd.PersistentFlags().String("ffprobe", config.DefaultFFprobe, "ffprobe binary")

	// Compress and info share the plan inputs
	for _, cmd := range []*cobra.Command{compressCmd, infoCmd} {
		cmd.Flags().Float64P("target-size", "s", config.DefaultTargetSizeMB, "Target output size in MB")
		cmd.Flags().Float64P("audio-bitrate", "a", config.DefaultAudioBitrateKbps, "Audio bitrate in kbps")
		cmd.Flags().StringP("target-platform", "t", "",
			fmt.Sprintf("Target platform (%s)", strings.Join(videoprocessor.GetSupportedPlatforms(), ", ")))
	}
	compressCmd.Flags().String("preset", config.DefaultPreset, "x264 preset")

	// Trim command flags
	trimCmd.Flags().String("start", "", "Start time (e.g., 90, 1:30, 1m30s)")
	trimCmd.Flags().String("end", "", "End time, empty for the end of the video")

	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(trimCmd)
	rootCmd.AddCommand(extractAudioCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(platformsCmd)

	return rootCmd
}

func formatSupportedPlatforms() string {
	platforms := videoprocessor.GetSupportedPlatforms()
	var sb strings.Builder
	for _, platform := range platforms {
		sb.WriteString(fmt.Sprintf("- %s\n", platform))
	}
	return sb.String()
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

func newLogger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Info
	if isVerbose(cmd) {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "video-toolkit",
		Level:  level,
		Output: cmd.ErrOrStderr(),
		Color:  hclog.AutoColor,
	})
}

func loadDefaults(cmd *cobra.Command) (config.Defaults, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// tools prefers --ffmpeg/--ffprobe when given, then the config file.
func tools(cmd *cobra.Command, defaults config.Defaults) config.Tools {
	t := defaults.Tools
	if cmd.Flags().Changed("ffmpeg") {
		t.FFmpeg, _ = cmd.Flags().GetString("ffmpeg")
	}
	if cmd.Flags().Changed("ffprobe") {
		t.FFprobe, _ = cmd.Flags().GetString("ffprobe")
	}
	return t
}

// compressOptions layers the settings: built-in defaults, the config file,
// the target platform, then flags given on the command line.
func compressOptions(cmd *cobra.Command, inputPath string) (*videoprocessor.CompressOptions, error) {
	defaults, err := loadDefaults(cmd)
	if err != nil {
		return nil, err
	}

	opts := &videoprocessor.CompressOptions{
		InputPath:        inputPath,
		TargetSizeMB:     defaults.TargetSizeMB,
		AudioBitrateKbps: defaults.AudioBitrateKbps,
		TargetPlatform:   defaults.TargetPlatform,
		Preset:           defaults.Preset,
		Tools:            tools(cmd, defaults),
	}

	flags := cmd.Flags()
	if flags.Changed("target-platform") {
		opts.TargetPlatform, _ = flags.GetString("target-platform")
	}
	if opts.TargetPlatform != "" {
		spec, err := videoprocessor.GetPlatformSpec(opts.TargetPlatform)
		if err != nil {
			return nil, err
		}
		opts.TargetSizeMB = spec.MaxFileSizeMB
		opts.AudioBitrateKbps = spec.AudioBitrateKbps
		opts.VideoCodec = spec.VideoCodec
		opts.AudioCodec = spec.AudioCodec
	}

	if flags.Changed("target-size") {
		opts.TargetSizeMB, _ = flags.GetFloat64("target-size")
	}
	if flags.Changed("audio-bitrate") {
		opts.AudioBitrateKbps, _ = flags.GetFloat64("audio-bitrate")
	}
	if flags.Changed("preset") {
		opts.Preset, _ = flags.GetString("preset")
	}

	if opts.TargetSizeMB <= 0 {
		return nil, types.NewError(types.ErrorKindInvalidArgument, "compress", inputPath,
			errors.Errorf("target size must be positive, got %v MB", opts.TargetSizeMB))
	}
	if opts.AudioBitrateKbps < 0 {
		return nil, types.NewError(types.ErrorKindInvalidArgument, "compress", inputPath,
			errors.Errorf("audio bitrate must not be negative, got %v kbps", opts.AudioBitrateKbps))
	}
	return opts, nil
}

func trimOptions(cmd *cobra.Command, inputPath string) (*videoprocessor.TrimOptions, error) {
	defaults, err := loadDefaults(cmd)
	if err != nil {
		return nil, err
	}
	opts := &videoprocessor.TrimOptions{
		InputPath: inputPath,
		Tools:     tools(cmd, defaults),
	}

	flags := cmd.Flags()
	if !flags.Changed("start") && !flags.Changed("end") {
		if err := processor.ReadTrimRange(cmd.InOrStdin(), promptOutput(cmd), opts); err != nil {
			return nil, types.NewError(types.ErrorKindInvalidArgument, "trim", inputPath, err)
		}
		return opts, nil
	}

	if start, _ := flags.GetString("start"); start != "" {
		if opts.Start, err = processor.ParseTimestamp(start); err != nil {
			return nil, types.NewError(types.ErrorKindInvalidArgument, "trim", inputPath,
				errors.Wrap(err, "invalid --start"))
		}
	}
	if end, _ := flags.GetString("end"); end != "" {
		if opts.End, err = processor.ParseTimestamp(end); err != nil {
			return nil, types.NewError(types.ErrorKindInvalidArgument, "trim", inputPath,
				errors.Wrap(err, "invalid --end"))
		}
		opts.HasEnd = true
	}
	return opts, nil
}

// promptOutput hides the trim prompts when stdin is not a terminal.
func promptOutput(cmd *cobra.Command) io.Writer {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return cmd.ErrOrStderr()
	}
	return io.Discard
}

func printInfo(out io.Writer, opts *videoprocessor.InfoOptions, result *videoprocessor.InfoResult) {
	m := result.Metadata
	fmt.Fprintf(out, "File:       %s\n", opts.InputPath)
	if m.FormatName != "" {
		fmt.Fprintf(out, "Format:     %s\n", m.FormatName)
	}
	fmt.Fprintf(out, "Duration:   %s\n", time.Duration(m.Duration*float64(time.Second)).Round(time.Millisecond))
	fmt.Fprintf(out, "Resolution: %dx%d\n", m.Width, m.Height)
	fmt.Fprintf(out, "Codec:      %s\n", m.Codec)
	if m.BitRate > 0 {
		fmt.Fprintf(out, "Bitrate:    %s/s\n", humanize.SI(float64(m.BitRate), "b"))
	}
	if m.Size > 0 {
		fmt.Fprintf(out, "Size:       %s\n", humanize.IBytes(uint64(m.Size)))
	}
	fmt.Fprintf(out, "Audio:      %t\n", m.HasAudio)

	p := result.Plan
	fmt.Fprintf(out, "\nPlan for %v MB with %gk audio:\n", opts.TargetSizeMB, p.AudioBitrateKbps)
	fmt.Fprintf(out, "  video bitrate: %dk", p.RoundedVideoKbps())
	if p.Floored {
		fmt.Fprint(out, " (minimum)")
	}
	fmt.Fprintln(out)
	if p.Scale != nil {
		fmt.Fprintf(out, "  scale to:      %s\n", p.Scale)
	} else {
		fmt.Fprintln(out, "  scale to:      no scaling")
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
