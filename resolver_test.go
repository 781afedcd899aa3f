package paperdoc_test

import (
	"testing"

	"github.com/fwojciec/paperdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDOI(t *testing.T) {
	t.Parallel()

	t.Run("extracts plain DOI", func(t *testing.T) {
		t.Parallel()

		doi, err := paperdoc.ExtractDOI("10.1145/3746059.3747603")

		require.NoError(t, err)
		assert.Equal(t, "10.1145/3746059.3747603", doi)
	})

	t.Run("extracts DOI from doi.org URL", func(t *testing.T) {
		t.Parallel()

		doi, err := paperdoc.ExtractDOI("https://doi.org/10.1109/TC.2023.3248096")

		require.NoError(t, err)
		assert.Equal(t, "10.1109/TC.2023.3248096", doi)
	})

	t.Run("extracts DOI from publisher URL", func(t *testing.T) {
		t.Parallel()

		doi, err := paperdoc.ExtractDOI("https://dl.acm.org/doi/10.1145/3746059.3747603")

		require.NoError(t, err)
		assert.Equal(t, "10.1145/3746059.3747603", doi)
	})

	t.Run("strips trailing punctuation", func(t *testing.T) {
		t.Parallel()

		doi, err := paperdoc.ExtractDOI("see 10.1145/3746059.3747603).")

		require.NoError(t, err)
		assert.Equal(t, "10.1145/3746059.3747603", doi)
	})

	t.Run("returns EINVALID when no DOI pattern present", func(t *testing.T) {
		t.Parallel()

		_, err := paperdoc.ExtractDOI("https://example.com/not-a-doi")

		assert.Equal(t, paperdoc.EINVALID, paperdoc.ErrorCode(err))
	})

	t.Run("rejects short registrant codes", func(t *testing.T) {
		t.Parallel()

		_, err := paperdoc.ExtractDOI("10.123/abc")

		assert.Equal(t, paperdoc.EINVALID, paperdoc.ErrorCode(err))
	})
}

func TestPublisherForDOI(t *testing.T) {
	t.Parallel()

	t.Run("ACM prefix", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "acm", paperdoc.PublisherForDOI("10.1145/3746059.3747603"))
	})

	t.Run("IEEE prefix", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "ieee", paperdoc.PublisherForDOI("10.1109/TC.2023.3248096"))
	})

	t.Run("unknown prefix returns empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, paperdoc.PublisherForDOI("10.9999/whatever"))
	})
}

func TestPublisherForURL(t *testing.T) {
	t.Parallel()

	t.Run("matches domain substring", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "ieee", paperdoc.PublisherForURL("https://ieeexplore.ieee.org/document/123"))
	})

	t.Run("strips www prefix", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "nature", paperdoc.PublisherForURL("https://www.nature.com/articles/s41586"))
	})

	t.Run("unknown domain returns empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, paperdoc.PublisherForURL("https://example.com/paper"))
	})
}
