package textassist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Disabled(t *testing.T) {
	c := NewClient("", "")
	assert.False(t, c.Enabled())

	_, err := c.Summarize(context.Background(), "some text")
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = c.Translate(context.Background(), "some text", "de")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestClient_Summarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "summarize", req["task"])
		assert.Equal(t, "long text", req["text"])

		_ = json.NewEncoder(w).Encode(map[string]string{"result": "short text"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	result, err := c.Summarize(context.Background(), "long text")
	require.NoError(t, err)
	assert.Equal(t, "short text", result)
}

func TestClient_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "translate", req["task"])
		assert.Equal(t, "fr", req["language"])

		_ = json.NewEncoder(w).Encode(map[string]string{"result": "bonjour"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	result, err := c.Translate(context.Background(), "hello", "fr")
	require.NoError(t, err)
	assert.Equal(t, "bonjour", result)
}

func TestClient_Errors(t *testing.T) {
	t.Run("upstream error field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "model overloaded"})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "")
		_, err := c.Summarize(context.Background(), "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model overloaded")
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "")
		_, err := c.Summarize(context.Background(), "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("invalid json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "")
		_, err := c.Summarize(context.Background(), "text")
		require.Error(t, err)
	})
}
