package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"VolSentry/internal/service/ratelimit"
	xhttp "VolSentry/pkg/http"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		chatID:      "42",
		client:      xhttp.NewClient(xhttp.WithTimeout(2 * time.Second)),
		limiter:     ratelimit.New(),
		pollTimeout: time.Second,
	}
}

func TestSend(t *testing.T) {
	var got sendMessageReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.ChatID != "42" || got.Text != "hello" || got.ParseMode != "HTML" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(apiResponse{OK: false, Description: "chat not found"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.Send(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error from api response")
	}
}

func TestPollAdvancesOffset(t *testing.T) {
	offsets := []string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offsets = append(offsets, r.URL.Query().Get("offset"))
		resp := updatesResponse{OK: true}
		if len(offsets) == 1 {
			resp.Result = []update{
				{UpdateID: 10, Message: &struct {
					Text string `json:"text"`
				}{Text: "/status"}},
				{UpdateID: 11}, // no text: offset still advances
				{UpdateID: 12, Message: &struct {
					Text string `json:"text"`
				}{Text: "/z 3.5"}},
			}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	lines, err := c.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(lines) != 2 || lines[0] != "/status" || lines[1] != "/z 3.5" {
		t.Fatalf("unexpected lines: %v", lines)
	}

	if _, err := c.Poll(context.Background()); err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if offsets[0] != "1" || offsets[1] != "13" {
		t.Fatalf("offsets not advanced at-most-once: %v", offsets)
	}
}
