package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", "gemini-2.0-flash", 2*time.Second)
	c.BaseURL = srv.URL
	return c
}

func TestGenerate(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  A solid bond.  "}]}}]}`))
	})

	text, err := c.Generate(context.Background(), "Describe the bond")
	require.NoError(t, err)
	assert.Equal(t, "A solid bond.", text, "surrounding whitespace is trimmed")
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "Describe the bond", gotBody.Contents[0].Parts[0].Text)
}

func TestGenerateAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted"}}`))
	})

	_, err := c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Resource has been exhausted")
}

func TestGenerateNoCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := c.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestGenerateTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"late"}]}}]}`))
	})
	c.Timeout = 50 * time.Millisecond

	_, err := c.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestGenerateMissingKey(t *testing.T) {
	c := NewClient("", "gemini-2.0-flash", time.Second)

	_, err := c.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestGenerateOrFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
	})

	assert.Equal(t, "fallback", GenerateOrFallback(context.Background(), c, "prompt", "fallback"))
	assert.Equal(t, "fallback", GenerateOrFallback(context.Background(), nil, "prompt", "fallback"))
}
