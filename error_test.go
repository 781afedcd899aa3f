package paperdoc_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/paperdoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := paperdoc.Errorf(paperdoc.EUNSUPPORTED, "publisher %q not supported", "wiley")

	assert.Equal(t, paperdoc.EUNSUPPORTED, paperdoc.ErrorCode(err))
	assert.Equal(t, "publisher \"wiley\" not supported", paperdoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, paperdoc.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, paperdoc.EINTERNAL, paperdoc.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, paperdoc.ErrorMessage(nil))
}
