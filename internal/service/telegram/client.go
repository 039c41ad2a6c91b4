package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"VolSentry/internal/service/ratelimit"
	xhttp "VolSentry/pkg/http"
)

// Bot API flood control: roughly one message per second per chat, with a
// small burst allowance.
const (
	sendBurst     = 5.0
	sendPerSecond = 1.0
)

// Client talks to the Telegram Bot API. It is both the notification sink
// (sendMessage) and the operator command source (getUpdates long-poll).
type Client struct {
	baseURL     string
	chatID      string
	client      *xhttp.Client
	limiter     *ratelimit.Limiter
	pollTimeout time.Duration

	lastUpdateID int64 // only touched by the control loop
}

// New creates a Telegram client for one bot token and chat.
func New(botToken, chatID string, sendTimeout, pollTimeout time.Duration) *Client {
	return &Client{
		baseURL:     "https://api.telegram.org/bot" + botToken,
		chatID:      chatID,
		client:      xhttp.NewClient(xhttp.WithTimeout(sendTimeout)),
		limiter:     ratelimit.New(),
		pollTimeout: pollTimeout,
	}
}

type sendMessageReq struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers an HTML-formatted message to the configured chat. Exceeding
// the local flood limit is reported as an error; callers never retry.
func (c *Client) Send(ctx context.Context, text string) error {
	if !c.limiter.Allow("send", sendBurst, sendPerSecond) {
		return fmt.Errorf("telegram send: flood limit reached")
	}

	var resp apiResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/sendMessage",
		Body: sendMessageReq{
			ChatID:    c.chatID,
			Text:      text,
			ParseMode: "HTML",
		},
	}, &resp)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("telegram send: %s", resp.Description)
	}
	return nil
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
	} `json:"message"`
}

type updatesResponse struct {
	OK     bool     `json:"ok"`
	Result []update `json:"result"`
}

// Poll fetches new operator messages past the last seen update. The offset
// advances over every update, so each line is delivered at most once even
// when a later poll fails.
func (c *Client) Poll(ctx context.Context) ([]string, error) {
	var resp updatesResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/getUpdates",
		QueryParams: map[string][]string{
			"offset":  {strconv.FormatInt(c.lastUpdateID+1, 10)},
			"timeout": {strconv.Itoa(int(c.pollTimeout.Seconds()))},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("telegram poll: %w", err)
	}
	if !resp.OK {
		return nil, fmt.Errorf("telegram poll: api not ok")
	}

	var lines []string
	for _, u := range resp.Result {
		if u.UpdateID > c.lastUpdateID {
			c.lastUpdateID = u.UpdateID
		}
		if u.Message != nil && u.Message.Text != "" {
			lines = append(lines, u.Message.Text)
		}
	}
	return lines, nil
}
