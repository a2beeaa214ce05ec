package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wtchen/clubroll/internal/entity"
	"github.com/wtchen/clubroll/internal/service"
	"github.com/wtchen/clubroll/pkg/line"
)

const adminPromptText = "我是管理員"

// BotClient is the slice of the LINE client the webhook needs.
type BotClient interface {
	GetProfile(ctx context.Context, userID string) (*line.Profile, error)
	ReplyText(ctx context.Context, replyToken, text string) error
}

type WebhookHandler struct {
	bot                 BotClient
	channelSecret       string
	registrationService service.RegistrationService
	attendanceService   service.AttendanceService
}

func NewWebhookHandler(
	bot BotClient,
	channelSecret string,
	registrationService service.RegistrationService,
	attendanceService service.AttendanceService,
) *WebhookHandler {
	return &WebhookHandler{
		bot:                 bot,
		channelSecret:       channelSecret,
		registrationService: registrationService,
		attendanceService:   attendanceService,
	}
}

// Callback is the LINE webhook entry point. The signature is checked on
// the raw body before anything is parsed. Processing failures never
// surface to the chat user; the endpoint answers 200 and failures are
// only logged.
func (h *WebhookHandler) Callback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
		return
	}

	signature := c.GetHeader("X-Line-Signature")
	if !line.ValidateSignature(h.channelSecret, signature, body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	req, err := line.ParseWebhook(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	ctx := c.Request.Context()
	for i := range req.Events {
		event := &req.Events[i]
		switch event.Type {
		case "message":
			h.handleMessage(ctx, event)
		case "postback":
			h.handlePostback(ctx, event)
		}
	}

	c.String(http.StatusOK, "OK")
}

func (h *WebhookHandler) handleMessage(ctx context.Context, event *line.WebhookEvent) {
	if event.Message == nil || event.Message.Type != "text" || event.Source.UserID == "" {
		return
	}
	text := strings.TrimSpace(event.Message.Text)
	userID := event.Source.UserID

	if err := h.registerContact(ctx, userID); err != nil {
		logrus.Errorf("Failed to register member %s: %v", userID, err)
		return
	}

	if text == adminPromptText {
		h.reply(ctx, event.ReplyToken, "請輸入啟動碼：")
		return
	}

	promoted, err := h.registrationService.PromoteIfCodeMatches(ctx, userID, text)
	if err != nil {
		logrus.Errorf("Failed to check admin code for %s: %v", userID, err)
		return
	}
	if promoted {
		h.reply(ctx, event.ReplyToken, "✅ 認證成功！您已成為管理員。")
		return
	}

	// other group chatter is ignored
}

// registerContact upserts the member for any inbound contact, message or
// postback alike, refreshing the platform display name when the profile
// is reachable.
func (h *WebhookHandler) registerContact(ctx context.Context, userID string) error {
	displayName := userID
	if profile, err := h.bot.GetProfile(ctx, userID); err == nil {
		displayName = profile.DisplayName
	} else {
		logrus.Warnf("Failed to fetch profile for %s: %v", userID, err)
	}

	_, err := h.registrationService.RegisterOrRefresh(ctx, userID, displayName)
	return err
}

// handlePostback covers the rsvp buttons on a published event:
// action=rsvp&event=<id>&status=GOING|NOT_GOING.
func (h *WebhookHandler) handlePostback(ctx context.Context, event *line.WebhookEvent) {
	if event.Postback == nil || event.Source.UserID == "" {
		return
	}

	values, err := url.ParseQuery(event.Postback.Data)
	if err != nil {
		logrus.Warnf("Unparseable postback data from %s: %v", event.Source.UserID, err)
		return
	}

	switch values.Get("action") {
	case "rsvp":
		h.handleRSVP(ctx, event, values)
	default:
		logrus.WithFields(logrus.Fields{
			"member_id": event.Source.UserID,
			"data":      event.Postback.Data,
		}).Info("Ignoring unknown postback action")
	}
}

func (h *WebhookHandler) handleRSVP(ctx context.Context, event *line.WebhookEvent, values url.Values) {
	eventID := values.Get("event")
	status := entity.ResponseStatus(values.Get("status"))
	userID := event.Source.UserID

	// a tap on the rsvp button can be a member's very first contact
	if err := h.registerContact(ctx, userID); err != nil {
		logrus.Errorf("Failed to register member %s: %v", userID, err)
		return
	}

	_, err := h.attendanceService.SubmitResponse(ctx, eventID, userID, &service.SubmitResponseRequest{
		Status: status,
	})
	if err != nil {
		// reporting is read-only for the chat user, fail closed
		logrus.Errorf("Failed to record rsvp for %s on event %s: %v", userID, eventID, err)
		return
	}

	if status == entity.ResponseStatusGoing {
		h.reply(ctx, event.ReplyToken, "已登記出席 ✅")
	} else {
		h.reply(ctx, event.ReplyToken, "已登記不克出席")
	}
}

func (h *WebhookHandler) reply(ctx context.Context, replyToken, text string) {
	if replyToken == "" {
		return
	}
	if err := h.bot.ReplyText(ctx, replyToken, text); err != nil {
		logrus.Errorf("Failed to send reply: %v", err)
	}
}
