package ffmpeg

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ZacxDev/video-toolkit/internal/config"
	"github.com/ZacxDev/video-toolkit/pkg/types"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Processor runs ffprobe and ffmpeg for one invocation. Calls block until the
// external process exits.
type Processor struct {
	tools  config.Tools
	logger hclog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewProcessor creates a Processor. ffmpeg's own output is passed through to
// the terminal.
func NewProcessor(tools config.Tools, logger hclog.Logger) *Processor {
	if tools.FFmpeg == "" {
		tools.FFmpeg = config.DefaultFFmpeg
	}
	if tools.FFprobe == "" {
		tools.FFprobe = config.DefaultFFprobe
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Processor{
		tools:  tools,
		logger: logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetIO replaces the streams handed to ffmpeg.
func (p *Processor) SetIO(stdin io.Reader, stdout, stderr io.Writer) {
	p.stdin = stdin
	p.stdout = stdout
	p.stderr = stderr
}

// Run executes the ffmpeg command described by stream. op names the
// operation in returned errors.
func (p *Processor) Run(op, inputPath string, stream *ffmpeg.Stream) error {
	bin, err := lookPath(op, p.tools.FFmpeg)
	if err != nil {
		return err
	}

	p.logger.Info("executing command", "command", CommandLine(bin, stream.GetArgs()))

	err = stream.SetFfmpegPath(bin).
		WithInput(p.stdin).
		WithOutput(p.stdout).
		WithErrorOutput(p.stderr).
		Silent(true).
		Run()
	if err != nil {
		return classifyExecError(op, inputPath, p.tools.FFmpeg, err)
	}
	return nil
}

// CommandLine renders a command for logging.
func CommandLine(bin string, args []string) string {
	return strings.Join(append([]string{bin}, args...), " ")
}

func lookPath(op, name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", types.NewError(types.ErrorKindToolMissing, op, "",
			errors.Wrapf(err, "%s not found, please install ffmpeg and ensure it is in PATH", name))
	}
	return path, nil
}

func classifyExecError(op, inputPath, tool string, err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return types.NewError(types.ErrorKindToolMissing, op, inputPath,
			errors.Wrapf(err, "failed to start %s", tool))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return types.NewError(types.ErrorKindToolFailed, op, inputPath,
			errors.Errorf("%s exited with status %d", tool, exitErr.ExitCode()))
	}

	return types.NewError(types.ErrorKindToolFailed, op, inputPath, errors.WithStack(err))
}
