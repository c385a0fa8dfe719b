package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

// staticTokens implements TokenSource for testing.
type staticTokens struct {
	token string
}

func (s *staticTokens) Token() string {
	return s.token
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func TestClient_BearerAttachment(t *testing.T) {
	t.Run("attaches token when present", func(t *testing.T) {
		var got string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		}))
		client.SetTokenSource(&staticTokens{token: "tok-123"})

		_, err := client.ListPages(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok-123", got)
	})

	t.Run("omits header without token", func(t *testing.T) {
		var got string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		}))
		client.SetTokenSource(&staticTokens{})

		_, err := client.ListPages(context.Background(), false)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("picks up token changes between requests", func(t *testing.T) {
		var got []string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = append(got, r.Header.Get("Authorization"))
			w.Write([]byte(`[]`))
		}))
		tokens := &staticTokens{}
		client.SetTokenSource(tokens)

		_, err := client.ListPages(context.Background(), false)
		require.NoError(t, err)

		tokens.token = "fresh"
		_, err = client.ListPages(context.Background(), false)
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.Empty(t, got[0])
		assert.Equal(t, "Bearer fresh", got[1])
	})
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"401 maps to unauthorized", http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`, domain.ErrUnauthorized},
		{"403 maps to forbidden", http.StatusForbidden, `{"detail":"Not authorized"}`, domain.ErrForbidden},
		{"404 maps to not found", http.StatusNotFound, `{"detail":"Page not found"}`, domain.ErrNotFound},
		{"400 maps to validation", http.StatusBadRequest, `{"detail":"access_level must be 'read' or 'write'"}`, domain.ErrValidation},
		{"422 maps to validation", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","title"],"msg":"field required"}]}`, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := client.GetPage(context.Background(), "7")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_ValidationDetailSurfacedVerbatim(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Username already registered"}`))
	}))

	err := client.Register(context.Background(), "dup", "dup@example.com", "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Username already registered")
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token expired"}`))
	}))

	cleared := 0
	client.SetUnauthorizedHandler(func() { cleared++ })

	_, err := client.ListPages(context.Background(), false)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, cleared)

	// Forbidden must not clear the session.
	client2 := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"Not authorized"}`))
	}))
	client2.SetUnauthorizedHandler(func() { cleared++ })

	_, err = client2.GetPage(context.Background(), "1")
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 1, cleared)
}

func TestClient_TransportFailure(t *testing.T) {
	// Point at a server that is already gone.
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url)
	_, err := client.ListPages(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestClient_NoServerConfigured(t *testing.T) {
	client := NewClient("")
	_, err := client.ListPages(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrNoServer)
}

func TestClient_ContextCancellation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.ListPages(ctx, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Login(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req["username"])
		assert.Equal(t, "secret", req["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "jwt-abc",
			"token_type":   "bearer",
			"user_id":      1,
			"username":     "alice",
		})
	}))

	token, err := client.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
}

func TestClient_CurrentUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/me", r.URL.Path)
		w.Write([]byte(`{"id":3,"username":"bob","email":"bob@example.com","role":"admin"}`))
	}))

	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "bob", user.Username)
	assert.True(t, user.IsAdmin())
	assert.True(t, user.IsActive)
}

func TestIsStatusError(t *testing.T) {
	assert.True(t, IsStatusError(domain.ErrNotFound))
	assert.True(t, IsStatusError(domain.ErrValidation))
	assert.False(t, IsStatusError(domain.ErrTransport))
	assert.False(t, IsStatusError(context.Canceled))
}
