package clerk

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"bodylog/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMergeUserMetadata(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_key", testLogger())
	err := c.MergeUserMetadata(context.Background(), "user_42", map[string]any{"accountId": int64(7)})
	require.NoError(t, err)

	require.Equal(t, http.MethodPatch, gotMethod)
	require.Equal(t, "/v1/users/user_42/metadata", gotPath)
	require.Equal(t, "Bearer sk_test_key", gotAuth)

	meta, ok := gotBody["public_metadata"].(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 7, meta["accountId"])
}

func TestMergeUserMetadataAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unprocessable", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_key", testLogger())
	err := c.MergeUserMetadata(context.Background(), "user_42", map[string]any{"accountId": int64(7)})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
}

func TestMergeUserMetadataConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "sk_test_key", testLogger())
	err := c.MergeUserMetadata(context.Background(), "user_42", nil)
	require.Error(t, err)
}
