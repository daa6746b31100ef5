package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestEmbed(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "hello world", req.Prompt)

		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1, 0.2, 0.3}})
	})

	service := NewEmbeddingService(Config{BaseURL: server.URL})

	embedding, err := service.Embed(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, embedding)
}

func TestEmbed_ServerError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	service := NewEmbeddingService(Config{BaseURL: server.URL})

	_, err := service.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestEmbedBatch(t *testing.T) {
	calls := 0
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{float64(calls)}})
	})

	service := NewEmbeddingService(Config{BaseURL: server.URL, RequestRate: 1000})

	embeddings, err := service.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, embeddings, 3)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []float32{1}, embeddings[0])
	assert.Equal(t, []float32{3}, embeddings[2])
}

func TestEmbed_CancelledContext(t *testing.T) {
	service := NewEmbeddingService(Config{BaseURL: "http://localhost:1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Embed(ctx, "hello")
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[]}`))
	})

	service := NewEmbeddingService(Config{BaseURL: server.URL})
	assert.NoError(t, service.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	service := NewEmbeddingService(Config{BaseURL: "http://localhost:1"})
	assert.Error(t, service.Ping(context.Background()))
}

func TestDefaults(t *testing.T) {
	service := NewEmbeddingService(Config{})

	assert.Equal(t, DefaultModel, service.ModelName())
	assert.Equal(t, DefaultDimensions, service.Dimensions())
	assert.NoError(t, service.Close())
}
