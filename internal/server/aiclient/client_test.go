package aiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New("localhost:8000", time.Second)
	require.Error(t, err)
}

func TestCall_GetWithSubjectAndUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/intro", r.URL.Path)
		assert.Equal(t, "History", r.URL.Query().Get("subject"))
		assert.Equal(t, "u-1", r.Header.Get("x-user-id"))
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Welcome to History"})
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", time.Second)
	require.NoError(t, err)

	out, err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/intro", Subject: "History", UserID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to History", out["message"])
}

func TestCall_PostJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "hi", in["message"])
		_, _ = io.WriteString(w, `{"message":"hello"}`)
	}))
	defer srv.Close()

	c, err := New(srv.URL, time.Second)
	require.NoError(t, err)

	out, err := c.Call(context.Background(), Request{Method: http.MethodPost, Path: "chat", Body: map[string]string{"message": "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "hello", out["message"])
}

func TestCall_NonObjectBodies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  map[string]any
	}{
		{"null", `null`, map[string]any{}},
		{"array", `[1,2]`, map[string]any{"data": []any{float64(1), float64(2)}}},
		{"string", `"hi"`, map[string]any{"data": "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.reply)
			}))
			defer srv.Close()

			c, err := New(srv.URL, time.Second)
			require.NoError(t, err)

			out, err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/intro"})
			require.NoError(t, err)
			require.NotNil(t, out)
			assert.Equal(t, tt.want, out)

			out["awarded"] = []string{}
		})
	}
}

func TestCall_NonSuccessIsUpstreamErrorWithoutRetry(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/continue"})
	require.ErrorIs(t, err, common.ErrUpstream)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestCall_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	}))
	defer srv.Close()

	c, _ := New(srv.URL, time.Second)
	_, err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/intro"})
	require.ErrorIs(t, err, common.ErrUpstream)
}

func TestCall_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 50*time.Millisecond)
	_, err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/intro"})
	require.ErrorIs(t, err, common.ErrUpstream)
}

func TestUploadPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pdf/upload", r.URL.Path)
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "notes.pdf", hdr.Filename)
		assert.Equal(t, "%PDF-1.4", string(b))
		_, _ = io.WriteString(w, `{"message":"indexed"}`)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, time.Second)
	out, err := c.UploadPDF(context.Background(), "u-1", "notes.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "indexed", out["message"])
}

func TestHealth_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, time.Second)
	out, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}
