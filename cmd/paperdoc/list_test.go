package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/paperdoc"
	main "github.com/fwojciec/paperdoc/cmd/paperdoc"
	"github.com/fwojciec/paperdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists scrapes with date, publisher, DOI, and title", func(t *testing.T) {
		t.Parallel()

		ledger := &mock.ScrapeLedger{
			ListScrapesFn: func(_ context.Context) ([]*paperdoc.ScrapeRecord, error) {
				return []*paperdoc.ScrapeRecord{
					{
						ID:        "rec-1",
						DOI:       "10.1145/1234567.8901234",
						Title:     "Fast Inference at the Edge",
						Publisher: "acm",
						FetchedAt: time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
					},
					{
						ID:        "rec-2",
						DOI:       "10.1109/TWC.2024.1234567",
						Title:     "Robust Channel Estimation",
						Publisher: "ieee",
						FetchedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Ledger: ledger,
		}

		err := (&main.ListCmd{}).Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "2025-03-02")
		assert.Contains(t, output, "acm")
		assert.Contains(t, output, "10.1145/1234567.8901234")
		assert.Contains(t, output, "Fast Inference at the Edge")
		assert.Contains(t, output, "10.1109/TWC.2024.1234567")
		assert.Contains(t, output, "Robust Channel Estimation")
	})

	t.Run("shows helpful message when ledger is empty", func(t *testing.T) {
		t.Parallel()

		ledger := &mock.ScrapeLedger{
			ListScrapesFn: func(_ context.Context) ([]*paperdoc.ScrapeRecord, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Ledger: ledger,
		}

		err := (&main.ListCmd{}).Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No papers fetched yet")
	})

	t.Run("reports ledger errors", func(t *testing.T) {
		t.Parallel()

		ledger := &mock.ScrapeLedger{
			ListScrapesFn: func(_ context.Context) ([]*paperdoc.ScrapeRecord, error) {
				return nil, paperdoc.Errorf(paperdoc.EINTERNAL, "database locked")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Ledger: ledger,
		}

		err := (&main.ListCmd{}).Run(deps)
		require.Error(t, err)
		assert.NotEmpty(t, stderr.String())
	})
}
