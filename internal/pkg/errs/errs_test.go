//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"telemed-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMarkAndIs(t *testing.T) {
	sentinel := errs.New("slot not found")
	cause := errors.New("no rows in result set")

	marked := errs.Mark(cause, sentinel)
	assert.True(t, errs.Is(marked, sentinel))
	assert.True(t, errs.Is(marked, cause))

	wrapped := errs.Wrap(marked, "book slot")
	assert.True(t, errs.Is(wrapped, sentinel))
	assert.Contains(t, wrapped.Error(), "book slot")
}

func TestMark_NilErrReturnsMarker(t *testing.T) {
	sentinel := errs.New("conflict")
	assert.Equal(t, sentinel, errs.Mark(nil, sentinel))
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))
	assert.NoError(t, errs.Wrapf(nil, "ignored %d", 1))
}

func TestExtractStackLines(t *testing.T) {
	err := errs.New("boom")
	lines := errs.ExtractStackLines(err, 2)
	assert.Len(t, lines, 2)
	assert.Nil(t, errs.ExtractStackLines(nil, 2))
}
