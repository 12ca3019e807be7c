package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/models"
)

// failingTokenStore fails every write.
type failingTokenStore struct {
	MemoryTokenStore
}

func (f *failingTokenStore) SaveToken(string) error { return errors.New("keyring locked") }
func (f *failingTokenStore) DeleteToken() error     { return errors.New("keyring locked") }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *MemoryTokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := &MemoryTokenStore{}
	return NewClient(srv.URL, tokens), tokens
}

func TestSignInRequestShape(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, constants.EndpointSignIn, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"user":{"id":"u1","email":"a@b.c","emailVerified":false,"createdAt":"x","updatedAt":"y"},"session":{"id":"s1","userId":"u1","expiresAt":"z","token":"tok-1"}}`)
	})

	resp, err := client.SignIn(context.Background(), "a@b.c", "pw", true)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"email": "a@b.c", "password": "pw", "rememberMe": true}, gotBody)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "tok-1", resp.Session.Token)
}

func TestBearerTokenSentWhenStored(t *testing.T) {
	client, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodGet, r.Method)
		io.WriteString(w, `{"user":{"id":"u1","email":"a@b.c"}}`)
	})
	require.NoError(t, tokens.SaveToken("stored-token"))

	resp, err := client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestSetAuthTokenHeaderReplacesToken(t *testing.T) {
	client, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(constants.HeaderSetAuthToken, "rotated")
		io.WriteString(w, `{"user":null}`)
	})
	require.NoError(t, tokens.SaveToken("old"))

	_, err := client.GetSession(context.Background())
	require.NoError(t, err)

	token, err := tokens.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "rotated", token)
}

func TestSignOutSendsEmptyObjectAndAcceptsEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{}`, string(data))
		assert.Equal(t, constants.EndpointSignOut, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, client.SignOut(context.Background()))
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     error
		wantStatus  int
		wantMessage string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"nope"}`, wantErr: ErrUnauthorized},
		{name: "server message", status: http.StatusUnprocessableEntity, body: `{"message":"User already exists"}`, wantStatus: 422, wantMessage: "User already exists"},
		{name: "no message", status: http.StatusInternalServerError, body: `oops`, wantStatus: 500, wantMessage: "request failed with status 500"},
		{name: "bad json on success", status: http.StatusOK, body: `{"user":`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := client.GetSession(context.Background())
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			var serverErr *ServerError
			require.ErrorAs(t, err, &serverErr)
			assert.Equal(t, tt.wantStatus, serverErr.Status)
			assert.Equal(t, tt.wantMessage, serverErr.Message)
			assert.Equal(t, tt.wantMessage, serverErr.UserMessage())
		})
	}
}

func TestInvalidURL(t *testing.T) {
	client := NewClient("not a url", &MemoryTokenStore{})
	_, err := client.GetSession(context.Background())
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestTransportFailureIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, &MemoryTokenStore{}).GetSession(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestTokenSaveFailureIsKeyringError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(constants.HeaderSetAuthToken, "new")
		io.WriteString(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, &failingTokenStore{}).GetSession(context.Background())
	assert.ErrorIs(t, err, ErrKeyring)
}

func TestMemoryTokenStore(t *testing.T) {
	var store MemoryTokenStore

	_, err := store.GetToken()
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, store.SaveToken("a"))
	got, err := store.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	require.NoError(t, store.DeleteToken())
	_, err = store.GetToken()
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestAuthResponseDecodesOptionalFields(t *testing.T) {
	var out models.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(`{"user":{"id":"u","email":"e","name":null,"image":"i.png","emailVerified":true}}`), &out))
	require.NotNil(t, out.User)
	assert.Nil(t, out.User.Name)
	require.NotNil(t, out.User.Image)
	assert.Equal(t, "i.png", *out.User.Image)
	assert.True(t, out.User.EmailVerified)
	assert.Nil(t, out.Session)
}
