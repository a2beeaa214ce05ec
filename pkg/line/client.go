// Package line is a minimal client for the pieces of the LINE Messaging
// and OAuth APIs this service touches: profile lookup, reply/push text
// messages, id-token verification and webhook signature checks.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultAPIBase   = "https://api.line.me"
	verifyTokenPath  = "/oauth2/v2.1/verify"
	profilePathFmt   = "/v2/bot/profile/%s"
	replyMessagePath = "/v2/bot/message/reply"
	pushMessagePath  = "/v2/bot/message/push"
)

type Client struct {
	accessToken   string
	channelSecret string
	baseURL       string
	httpClient    *http.Client
}

// Profile is the platform identity attached to an inbound contact.
type Profile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PictureURL  string `json:"pictureUrl,omitempty"`
}

func NewClient(accessToken, channelSecret string) *Client {
	return &Client{
		accessToken:   accessToken,
		channelSecret: channelSecret,
		baseURL:       defaultAPIBase,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL points the client at a different API host, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// GetProfile fetches the platform profile for a user id.
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+fmt.Sprintf(profilePathFmt, userID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("LINE API error: %s", resp.Status)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &profile, nil
}

// ReplyText answers an inbound webhook event via its reply token.
func (c *Client) ReplyText(ctx context.Context, replyToken, text string) error {
	payload := map[string]interface{}{
		"replyToken": replyToken,
		"messages": []map[string]string{
			{"type": "text", "text": text},
		},
	}
	return c.postMessage(ctx, replyMessagePath, payload)
}

// PushText sends a text message to a user or group id.
func (c *Client) PushText(ctx context.Context, to, text string) error {
	payload := map[string]interface{}{
		"to": to,
		"messages": []map[string]string{
			{"type": "text", "text": text},
		},
	}
	return c.postMessage(ctx, pushMessagePath, payload)
}

func (c *Client) postMessage(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("message request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("LINE API error: %s", resp.Status)
	}

	return nil
}

// VerifyIDToken validates a LIFF id token against the LINE verify
// endpoint and returns the subject user id.
func (c *Client) VerifyIDToken(ctx context.Context, idToken, clientID string) (string, error) {
	form := url.Values{}
	form.Set("id_token", idToken)
	form.Set("client_id", clientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+verifyTokenPath, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("verify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("invalid token: %s", resp.Status)
	}

	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return "", fmt.Errorf("failed to decode claims: %w", err)
	}
	if claims.Sub == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return claims.Sub, nil
}
