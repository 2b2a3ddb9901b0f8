package processor

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ZacxDev/video-toolkit/internal/config"
	"github.com/pkg/errors"
)

// ReadTrimRange asks for a start and end time on out, reads the answers
// from in and stores them in opts. An empty start means the beginning, an
// empty end means the end of the input.
func ReadTrimRange(in io.Reader, out io.Writer, opts *config.TrimOptions) error {
	scanner := bufio.NewScanner(in)

	startText, err := ask(scanner, out, "Start time (s): ")
	if err != nil {
		return err
	}
	endText, err := ask(scanner, out, "End time (s): ")
	if err != nil {
		return err
	}

	if startText != "" {
		if opts.Start, err = ParseTimestamp(startText); err != nil {
			return err
		}
	}
	if endText != "" {
		if opts.End, err = ParseTimestamp(endText); err != nil {
			return err
		}
		opts.HasEnd = true
	}
	return nil
}

func ask(scanner *bufio.Scanner, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", errors.Wrap(err, "failed to read answer")
		}
		// EOF answers with an empty line
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}
