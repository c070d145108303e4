package reminders

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	telegram "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dbrandt/homebot/pkg/config"
	"github.com/dbrandt/homebot/pkg/timeparse"
)

type recordedRequest struct {
	path        string
	method      string
	contentType string
	body        []byte
}

type mockClient struct {
	requests []recordedRequest
	response string
}

func newMockClient() *mockClient {
	return &mockClient{
		response: `{"ok":true,"result":{}}`,
	}
}

func (m *mockClient) Do(req *http.Request) (*http.Response, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if err := req.Body.Close(); err != nil {
		return nil, fmt.Errorf("failed to close request body: %w", err)
	}
	m.requests = append(m.requests, recordedRequest{
		path:        req.URL.Path,
		method:      req.Method,
		contentType: req.Header.Get("Content-Type"),
		body:        body,
	})

	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(m.response)),
		Header:     make(http.Header),
	}
	return resp, nil
}

func (m *mockClient) lastMessageText(t *testing.T) string {
	t.Helper()
	if len(m.requests) == 0 {
		t.Fatalf("expected at least one recorded request")
	}
	req := m.requests[len(m.requests)-1]

	mediaType, params, err := mime.ParseMediaType(req.contentType)
	if err != nil {
		t.Fatalf("failed to parse media type: %v", err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		t.Fatalf("unexpected media type: %s", mediaType)
	}

	reader := multipart.NewReader(bytes.NewReader(req.body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read multipart part: %v", err)
		}
		if part.FormName() == "text" {
			data, err := io.ReadAll(part)
			if err != nil {
				t.Fatalf("failed to read text part: %v", err)
			}
			return string(data)
		}
	}
	t.Fatalf("text field not found in request")
	return ""
}

func newTestTelegramBot(t *testing.T, client *mockClient) *telegram.Bot {
	t.Helper()
	b, err := telegram.New("test-token",
		telegram.WithSkipGetMe(),
		telegram.WithHTTPClient(time.Second, client),
	)
	if err != nil {
		t.Fatalf("failed to create test bot: %v", err)
	}
	return b
}

func newTestUpdate(text string, userID int64) *models.Update {
	return &models.Update{
		Message: &models.Message{
			From: &models.User{
				ID: userID,
			},
			Chat: models.Chat{
				ID: userID,
			},
			Text: text,
		},
	}
}

func newTestCallbackUpdate(data string, userID, chatID int64, messageID int) *models.Update {
	return &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "callback-1",
			From: models.User{ID: userID},
			Data: data,
			Message: models.MaybeInaccessibleMessage{
				Type: models.MaybeInaccessibleMessageTypeMessage,
				Message: &models.Message{
					ID: messageID,
					Chat: models.Chat{
						ID:   chatID,
						Type: models.ChatTypePrivate,
					},
				},
			},
		},
	}
}

// stubParser returns a fixed parse result regardless of input.
type stubParser struct {
	result time.Time
	spec   timeparse.Specificity
}

func (s stubParser) Parse(_ string, _ time.Time) (time.Time, timeparse.Specificity) {
	return s.result, s.spec
}

// failingClient rejects every request, simulating an unreachable API.
type failingClient struct {
	attempts int
}

func (f *failingClient) Do(req *http.Request) (*http.Response, error) {
	f.attempts++
	if req.Body != nil {
		req.Body.Close()
	}
	return nil, fmt.Errorf("connection refused")
}

// recordingCards accepts every user and records who cards are created for.
type recordingCards struct {
	createdFor []int64
}

func (r *recordingCards) CanCreateCards(int64) bool { return true }
func (r *recordingCards) CreateCard(_ context.Context, owner int64, _ string) (string, error) {
	r.createdFor = append(r.createdFor, owner)
	return "card-1", nil
}

// noCards is a CardService that refuses everyone.
type noCards struct{}

func (noCards) CanCreateCards(int64) bool { return false }
func (noCards) CreateCard(context.Context, int64, string) (string, error) {
	return "", fmt.Errorf("cards disabled")
}

func newTestHandler(t *testing.T, store Store, parser TimeParser, now time.Time) *Handler {
	t.Helper()
	h := NewHandler(config.DefaultReminders(), store, parser, noCards{})
	h.clock = func() time.Time { return now }
	return h
}
