package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
)

func testCandidates() []model.Candidate {
	return []model.Candidate{
		{DisplayName: "Axis Bluechip Fund", Ticker: "120465", SourceID: "masterlist"},
		{DisplayName: "Axis Midcap Fund", Ticker: "120505", SourceID: "masterlist"},
	}
}

func TestPrompter_SelectCandidate(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("2\n"), &out)

	choice, err := prompter.SelectCandidate(context.Background(), "axis", testCandidates())

	require.NoError(t, err)
	assert.Equal(t, "120505", choice.Ticker)
	assert.Contains(t, out.String(), "Axis Bluechip Fund")
	assert.Contains(t, out.String(), "Axis Midcap Fund")
}

func TestPrompter_RetriesOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("9\nfoo\n1\n"), &out)

	choice, err := prompter.SelectCandidate(context.Background(), "axis", testCandidates())

	require.NoError(t, err)
	assert.Equal(t, "120465", choice.Ticker)
	assert.Contains(t, out.String(), "Invalid selection")
}

func TestPrompter_CancelWithQ(t *testing.T) {
	prompter := NewPrompter(strings.NewReader("q\n"), &bytes.Buffer{})

	_, err := prompter.SelectCandidate(context.Background(), "axis", testCandidates())

	assert.True(t, errors.Is(err, ErrInputCancelled))
}

func TestPrompter_EmptyLineCancels(t *testing.T) {
	prompter := NewPrompter(strings.NewReader("\n"), &bytes.Buffer{})

	_, err := prompter.SelectCandidate(context.Background(), "axis", testCandidates())

	assert.True(t, errors.Is(err, ErrInputCancelled))
}

func TestPrompter_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never produces a line.
	prompter := NewPrompter(blockedReader{}, &bytes.Buffer{})

	_, err := prompter.SelectCandidate(ctx, "axis", testCandidates())

	assert.True(t, errors.Is(err, ErrInputCancelled))
}

func TestPrompter_NoCandidates(t *testing.T) {
	prompter := NewPrompter(strings.NewReader("1\n"), &bytes.Buffer{})

	_, err := prompter.SelectCandidate(context.Background(), "axis", nil)

	assert.Error(t, err)
}

// blockedReader never yields any input.
type blockedReader struct{}

func (blockedReader) Read(_ []byte) (int, error) {
	select {}
}
