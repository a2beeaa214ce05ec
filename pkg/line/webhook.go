package line

import "encoding/json"

// Webhook payload shapes, trimmed to the event types this service
// handles.

type WebhookRequest struct {
	Destination string         `json:"destination"`
	Events      []WebhookEvent `json:"events"`
}

type WebhookEvent struct {
	Type       string           `json:"type"`
	ReplyToken string           `json:"replyToken,omitempty"`
	Source     EventSource      `json:"source"`
	Message    *MessagePayload  `json:"message,omitempty"`
	Postback   *PostbackPayload `json:"postback,omitempty"`
}

type EventSource struct {
	Type    string `json:"type"` // user, group, room
	UserID  string `json:"userId"`
	GroupID string `json:"groupId,omitempty"`
}

type MessagePayload struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type PostbackPayload struct {
	Data string `json:"data"`
}

// ParseWebhook decodes a raw webhook body. Signature validation is the
// caller's responsibility and must happen on the raw bytes first.
func ParseWebhook(body []byte) (*WebhookRequest, error) {
	var req WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
