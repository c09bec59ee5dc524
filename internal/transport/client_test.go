package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agristack/fieldscope/pkg/errors"
)

func TestFetchBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("LogDate,Bat\n"))
	}))
	defer srv.Close()

	body, err := New(nil, "").FetchBody(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "LogDate,Bat\n", string(body))
}

func TestFetchBodyNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(nil, "").FetchBody(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestAuthenticatorsApplyCredentials(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := New(&BearerAuth{}, "secret").FetchBody(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))

	_, err = New(&HeaderAuth{Header: "X-Api-Key"}, "secret").FetchBody(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Header.Get("X-Api-Key"))

	_, err = New(&QueryAuth{Param: "key"}, "secret").FetchBody(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.URL.Query().Get("key"))
}

func TestNoCredentialsWithoutKey(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := New(&BearerAuth{}, "").FetchBody(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Empty(t, got.Header.Get("Authorization"))
}
