package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
)

// Prompter collects the user's pick when resolution returns more than one
// plausible candidate. It is the external disambiguation step: the engine
// never guesses on the user's behalf.
type Prompter struct {
	reader *LineReader
	writer io.Writer
}

// NewPrompter creates a prompter over the given streams. Nil defaults to
// stdin/stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// SelectCandidate shows a numbered picklist and returns the chosen
// candidate. Entering nothing or "q" aborts with ErrInputCancelled.
func (p *Prompter) SelectCandidate(ctx context.Context, query string, candidates []model.Candidate) (model.Candidate, error) {
	if len(candidates) == 0 {
		return model.Candidate{}, fmt.Errorf("no candidates to select from")
	}

	fmt.Fprintln(p.writer, TitleStyle.Render(fmt.Sprintf("Multiple funds match %q:", query)))
	for i, candidate := range candidates {
		fmt.Fprintf(p.writer, "  %s %s %s\n",
			IndexStyle.Render(fmt.Sprintf("[%d]", i+1)),
			candidate.DisplayName,
			SubtleStyle.Render(fmt.Sprintf("(%s, %s)", candidate.Ticker, candidate.SourceID)))
	}
	fmt.Fprintf(p.writer, "Select 1-%d (or q to cancel): ", len(candidates))

	for {
		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return model.Candidate{}, err
		}

		if line == "" || line == "q" || line == "Q" {
			return model.Candidate{}, ErrInputCancelled
		}

		choice, err := strconv.Atoi(line)
		if err != nil || choice < 1 || choice > len(candidates) {
			fmt.Fprintf(p.writer, "%s Select 1-%d (or q to cancel): ",
				WarningStyle.Render("Invalid selection."), len(candidates))
			continue
		}

		return candidates[choice-1], nil
	}
}
