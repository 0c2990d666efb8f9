package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivampatadiya-ai-hub/nutrigenie/config"
	in_memory "github.com/shivampatadiya-ai-hub/nutrigenie/internal/storage/in-memory"
)

func newTestWeb(session *fakeSession) *WebUsecase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conversation := NewConversationUsecase(
		ConversationUsecaseDeps{
			Storage: in_memory.NewConversationStorage(),
			Session: session,
			Logger:  logger,
		},
	)
	return NewWebUsecase(config.Server{Port: "0"}, WebUsecaseDeps{Conversation: conversation, Logger: logger})
}

func multipartBody(t *testing.T, text string, filename, mimeType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("text", text))
	if filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="attachment"; filename="`+filename+`"`)
		header.Set("Content-Type", mimeType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestWebUsecase_Health(t *testing.T) {
	web := newTestWeb(&fakeSession{})

	rec := httptest.NewRecorder()
	web.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestWebUsecase_ChatFlow(t *testing.T) {
	session := &fakeSession{reply: "Try **Dal** and Roti."}
	web := newTestWeb(session)

	body, contentType := multipartBody(t, "What should I eat?", "", "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/chat", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	web.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "What should I eat?", resp.UserMessage.Text)
	require.NotNil(t, resp.Reply)
	assert.Equal(t, session.reply, resp.Reply.Text)
	// The reply arrives pre-rendered for display.
	require.NotEmpty(t, resp.Reply.Blocks)
	assert.Equal(t, "Dal", resp.Reply.Blocks[0].Spans[1].Text)
	assert.True(t, resp.Reply.Blocks[0].Spans[1].Bold)

	rec = httptest.NewRecorder()
	web.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/messages", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var state stateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Len(t, state.Messages, 2)
	assert.True(t, state.Started)
	assert.False(t, state.Busy)
}

func TestWebUsecase_ChatWithAttachment(t *testing.T) {
	session := &fakeSession{reply: "Your report looks fine."}
	web := newTestWeb(session)

	body, contentType := multipartBody(t, "", "report.png", "image/png", "pngbytes")
	req := httptest.NewRequest(http.MethodPost, "/api/chat", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	web.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, MessageAttachmentFallback, resp.UserMessage.Text)
	assert.True(t, resp.UserMessage.HasAttachment)
	assert.Equal(t, "report.png", resp.UserMessage.AttachmentName)
	assert.True(t, strings.HasPrefix(session.lastURI, "data:image/png;base64,"))
}

func TestWebUsecase_EmptyChatRejected(t *testing.T) {
	web := newTestWeb(&fakeSession{})

	body, contentType := multipartBody(t, "   ", "", "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/chat", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	web.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebUsecase_PreferenceAndNewChat(t *testing.T) {
	session := &fakeSession{reply: "ok"}
	web := newTestWeb(session)

	req := httptest.NewRequest(http.MethodPut, "/api/preference", strings.NewReader(`{"preference":"Vegetarian"}`))
	rec := httptest.NewRecorder()
	web.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Vegetarian", string(session.Preference()))

	_, err := web.Conversation.Send(context.Background(), "hello", nil)
	require.NoError(t, err)
	require.Len(t, web.Conversation.Messages(), 2)

	rec = httptest.NewRecorder()
	web.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat/new", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, web.Conversation.Messages())
	assert.Equal(t, 1, session.resets)
}

func TestWebUsecase_ExportDownload(t *testing.T) {
	session := &fakeSession{reply: "**Plan**: eat well"}
	web := newTestWeb(session)

	_, err := web.Conversation.Send(context.Background(), "plan please", nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	web.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "NutriGenie-Diet-Plan.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestWebUsecase_IndexServesChatPage(t *testing.T) {
	web := newTestWeb(&fakeSession{})

	rec := httptest.NewRecorder()
	web.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "NutriGenie")
	assert.Contains(t, rec.Body.String(), "Vegetarian")
}
