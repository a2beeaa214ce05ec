package line

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/bot/profile/u123", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(Profile{UserID: "u123", DisplayName: "Alice"})
	}))
	defer srv.Close()

	client := NewClient("token", "secret").WithBaseURL(srv.URL)
	profile, err := client.GetProfile(context.Background(), "u123")
	require.NoError(t, err)

	assert.Equal(t, "u123", profile.UserID)
	assert.Equal(t, "Alice", profile.DisplayName)
}

func TestVerifyIDToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth2/v2.1/verify", r.URL.Path)
		require.NoError(t, r.ParseForm())

		if r.PostForm.Get("id_token") != "good-token" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "liff-id", r.PostForm.Get("client_id"))
		json.NewEncoder(w).Encode(map[string]string{"sub": "u123"})
	}))
	defer srv.Close()

	client := NewClient("token", "secret").WithBaseURL(srv.URL)

	sub, err := client.VerifyIDToken(context.Background(), "good-token", "liff-id")
	require.NoError(t, err)
	assert.Equal(t, "u123", sub)

	_, err = client.VerifyIDToken(context.Background(), "bad-token", "liff-id")
	assert.Error(t, err)
}

func TestReplyAndPushText(t *testing.T) {
	var got struct {
		path string
		body map[string]interface{}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient("token", "secret").WithBaseURL(srv.URL)
	ctx := context.Background()

	require.NoError(t, client.ReplyText(ctx, "rt-1", "hello"))
	assert.Equal(t, "/v2/bot/message/reply", got.path)
	assert.Equal(t, "rt-1", got.body["replyToken"])

	require.NoError(t, client.PushText(ctx, "group-1", "announce"))
	assert.Equal(t, "/v2/bot/message/push", got.path)
	assert.Equal(t, "group-1", got.body["to"])
}
