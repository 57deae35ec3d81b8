package bakus

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Nomadcxx/bakus/internal/rename"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("url from config", func(t *testing.T) {
		client := NewClient(Config{URL: "http://bakus:8000", Token: "abc"})
		if client.baseURL != "http://bakus:8000" {
			t.Errorf("expected configured URL, got %s", client.baseURL)
		}
		if !client.LoggedIn() {
			t.Error("expected client with token to be logged in")
		}
		if client.httpClient.Timeout != 30*time.Second {
			t.Errorf("expected default timeout, got %s", client.httpClient.Timeout)
		}
	})

	t.Run("custom timeout", func(t *testing.T) {
		client := NewClient(Config{URL: "http://custom:9999", Timeout: time.Minute})
		if client.httpClient.Timeout != time.Minute {
			t.Errorf("expected custom timeout, got %s", client.httpClient.Timeout)
		}
		if client.LoggedIn() {
			t.Error("expected client without token to be logged out")
		}
	})
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login/" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Empty(t, r.Header.Get("Authorization"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload["username"] != "adam" || payload["password"] != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail":"Unable to log in with provided credentials."}`))
			return
		}
		w.Write([]byte(`{"expiry":"2026-10-24T10:00:00.123456-07:00","token":"tok"}`))
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL})
	result, err := client.Login(context.Background(), "adam", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", result.Token)
	assert.Equal(t, 2026, result.Expiry.Year())

	_, err = client.Login(context.Background(), "adam", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Unable to log in with provided credentials.", apiErr.Detail)
}

func TestAdditions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token tok" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Invalid token."}`))
			return
		}
		if r.URL.Path != "/api/v1/addition/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":"101","state":"CP","name":"The_Thing_(1982)","progress":1.0,
			"files":[{"name":"feature.mp4","file_type":"VID"},{"name":"sub.en.srt","file_type":"SUB"}]}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, Token: "tok"})
	additions, err := client.Additions(context.Background())
	require.NoError(t, err)
	require.Len(t, additions, 1)

	a := additions[0]
	assert.True(t, a.Completed())
	assert.Len(t, a.Videos(), 1)
	assert.Len(t, a.Subtitles(), 1)

	input := a.RenameInput()
	assert.Equal(t, "101", input.ID)
	assert.Equal(t, rename.KindSubtitle, input.Files[1].Kind)

	found, err := client.Addition(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "The_Thing_(1982)", found.Name)

	_, err = client.Addition(context.Background(), "999")
	assert.ErrorIs(t, err, ErrNotFound)

	client.SetToken("bad")
	_, err = client.Additions(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	ok, err := client.Authenticated(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRequiresToken(t *testing.T) {
	client := NewClient(Config{URL: "http://127.0.0.1:1"})
	_, err := client.Additions(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	ok, err := client.Authenticated(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRenameAddition(t *testing.T) {
	var got rename.RenameRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/addition/301/rename/" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	season := 1
	req := rename.RenameRequest{
		AdditionID:      "301",
		NewTitle:        "Show (1988)",
		Season:          &season,
		DeleteUntouched: true,
		Files:           []rename.FileRename{{CurrentName: "a.mkv", NewName: "Show (1988) - s01e01.mkv"}},
	}

	client := NewClient(Config{URL: server.URL, Token: "tok"})
	require.NoError(t, client.RenameAddition(context.Background(), req))
	assert.Equal(t, req, got)
}

func TestRenameAddition_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"boom"}`))
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, Token: "tok"})
	err := client.RenameAddition(context.Background(), rename.RenameRequest{AdditionID: "1"})
	assert.ErrorIs(t, err, ErrServerError)

	err = client.RenameAddition(context.Background(), rename.RenameRequest{})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/logout/" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, Token: "tok"})
	assert.NoError(t, client.Logout(context.Background()))

	_, err := client.Profile(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}
