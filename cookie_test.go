package paperdoc_test

import (
	"testing"

	"github.com/fwojciec/paperdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCookies(t *testing.T) {
	t.Parallel()

	t.Run("parses minimal records", func(t *testing.T) {
		t.Parallel()

		data := []byte(`[{"name":"ezproxy","value":"abc123"}]`)

		cookies, err := paperdoc.ParseCookies(data)

		require.NoError(t, err)
		require.Len(t, cookies, 1)
		assert.Equal(t, "ezproxy", cookies[0].Name)
		assert.Equal(t, "abc123", cookies[0].Value)
	})

	t.Run("tolerates unknown fields", func(t *testing.T) {
		t.Parallel()

		data := []byte(`[{"name":"s","value":"v","hostOnly":true,"storeId":"firefox-default","expirationDate":1767225600}]`)

		cookies, err := paperdoc.ParseCookies(data)

		require.NoError(t, err)
		require.Len(t, cookies, 1)
		assert.Equal(t, float64(1767225600), cookies[0].ExpirationDate)
	})

	t.Run("returns EINVALID for malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := paperdoc.ParseCookies([]byte(`{not json`))

		assert.Equal(t, paperdoc.EINVALID, paperdoc.ErrorCode(err))
	})
}

func TestNormalizeSameSite(t *testing.T) {
	t.Parallel()

	t.Run("is case-insensitive", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, paperdoc.NormalizeSameSite("Lax"), paperdoc.NormalizeSameSite("lax"))
		assert.Equal(t, paperdoc.NormalizeSameSite("NO_RESTRICTION"), paperdoc.NormalizeSameSite("no_restriction"))
	})

	t.Run("maps export values to browser values", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "None", paperdoc.NormalizeSameSite("no_restriction"))
		assert.Equal(t, "Lax", paperdoc.NormalizeSameSite("lax"))
		assert.Equal(t, "Strict", paperdoc.NormalizeSameSite("strict"))
	})

	t.Run("unrecognized values map to Lax", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Lax", paperdoc.NormalizeSameSite("unspecified"))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, paperdoc.NormalizeSameSite(""))
	})
}

func TestExportSameSite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no_restriction", paperdoc.ExportSameSite("None"))
	assert.Equal(t, "lax", paperdoc.ExportSameSite("Lax"))
	assert.Equal(t, "strict", paperdoc.ExportSameSite("Strict"))
	assert.Empty(t, paperdoc.ExportSameSite(""))
}
