package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := NewSourceError("report", "download", underlying)

	assert.Contains(t, err.Error(), "report")
	assert.Contains(t, err.Error(), "download")
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.Equal(t, underlying, errors.Unwrap(err))
}

func TestEmptyResultError(t *testing.T) {
	err := NewEmptyResultError("correlate", "no merge keys matched")

	assert.True(t, errors.Is(err, ErrEmptyResult))
	assert.Contains(t, err.Error(), "correlate")
	assert.Contains(t, err.Error(), "no merge keys matched")

	bare := NewEmptyResultError("fetch", "")
	assert.Equal(t, "fetch produced no rows", bare.Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("start", "not-a-date", "unparsable bound")

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "start")
}

func TestAPIErrorIsSourceUnavailable(t *testing.T) {
	err := &APIError{Source: "report", StatusCode: 503, Message: "service unavailable"}

	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "503")
}

func TestWrapHelpers(t *testing.T) {
	assert.Nil(t, WrapIO("read", "/tmp/x", nil))
	assert.Nil(t, WrapParse("csv", "x.csv", nil))
	assert.Nil(t, WrapSource("portal", "open", nil))

	wrapped := WrapSource("portal", "open", fmt.Errorf("no such file"))
	assert.True(t, IsSourceUnavailable(wrapped))

	var srcErr *SourceError
	assert.True(t, errors.As(wrapped, &srcErr))
	assert.Equal(t, "portal", srcErr.Source)
}

func TestHelperCheckers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
		want    bool
	}{
		{"empty result", NewEmptyResultError("correlate", ""), IsEmptyResult, true},
		{"not empty result", NewValidationError("f", nil, "m"), IsEmptyResult, false},
		{"timeout", &TimeoutError{Operation: "fetch"}, IsTimeout, true},
		{"canceled", fmt.Errorf("wrapped: %w", ErrCanceled), IsCanceled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.checker(tt.err))
		})
	}
}
