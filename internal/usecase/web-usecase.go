package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/shivampatadiya-ai-hub/nutrigenie/config"
	"github.com/shivampatadiya-ai-hub/nutrigenie/internal/export"
	"github.com/shivampatadiya-ai-hub/nutrigenie/internal/model"
	"github.com/shivampatadiya-ai-hub/nutrigenie/internal/render"
	"github.com/shivampatadiya-ai-hub/nutrigenie/pkg/attachment"
)

const (
	maxUploadBytes = 20 << 20

	exportFilename = "NutriGenie-Diet-Plan.pdf"

	MessageExportFailed = "Failed to generate PDF. Please try again."
)

type WebUsecaseDeps struct {
	Conversation *ConversationUsecase
	Logger       *slog.Logger
}

// WebUsecase is the HTTP surface of the chat: the embedded page, the JSON
// API the page talks to, and the PDF download.
type WebUsecase struct {
	WebUsecaseDeps
	cfg    config.Server
	router *mux.Router
}

func NewWebUsecase(cfg config.Server, deps WebUsecaseDeps) *WebUsecase {
	u := &WebUsecase{
		WebUsecaseDeps: deps,
		cfg:            cfg,
		router:         mux.NewRouter(),
	}
	u.setupRoutes()
	return u
}

func (u *WebUsecase) setupRoutes() {
	u.router.HandleFunc("/", u.indexHandler).Methods(http.MethodGet)
	u.router.HandleFunc("/health", u.healthHandler).Methods(http.MethodGet)

	api := u.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/messages", u.messagesHandler).Methods(http.MethodGet)
	api.HandleFunc("/chat", u.chatHandler).Methods(http.MethodPost)
	api.HandleFunc("/chat/new", u.newChatHandler).Methods(http.MethodPost)
	api.HandleFunc("/preference", u.preferenceHandler).Methods(http.MethodPut)
	api.HandleFunc("/export", u.exportHandler).Methods(http.MethodGet)
}

func (u *WebUsecase) Run() error {
	allowedOrigins := u.cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(
		cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		},
	)

	addr := ":" + strings.TrimPrefix(u.cfg.Port, ":")
	u.Logger.Info("server listening", "addr", addr)
	return http.ListenAndServe(addr, c.Handler(u.router))
}

// messageView pairs a stored message with its rendered display blocks so the
// page never has to interpret markdown itself.
type messageView struct {
	model.Message
	Blocks []render.Block `json:"blocks"`
}

type stateResponse struct {
	Messages   []messageView           `json:"messages"`
	Busy       bool                    `json:"busy"`
	Started    bool                    `json:"started"`
	Preference model.DietaryPreference `json:"preference"`
}

type chatResponse struct {
	UserMessage messageView  `json:"user_message"`
	Reply       *messageView `json:"reply,omitempty"`
	Superseded  bool         `json:"superseded,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (u *WebUsecase) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, chatPage)
}

func (u *WebUsecase) healthHandler(w http.ResponseWriter, r *http.Request) {
	u.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "nutrigenie"})
}

func (u *WebUsecase) messagesHandler(w http.ResponseWriter, r *http.Request) {
	messages := u.Conversation.Messages()
	views := make([]messageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, newMessageView(msg))
	}
	u.writeJSON(
		w, http.StatusOK, stateResponse{
			Messages:   views,
			Busy:       u.Conversation.Busy(),
			Started:    u.Conversation.Started(),
			Preference: u.Conversation.Preference(),
		},
	)
}

func (u *WebUsecase) chatHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		u.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form data"})
		return
	}
	text := r.FormValue("text")

	var att *attachment.Encoded
	hadAttachment := false
	file, header, err := r.FormFile("attachment")
	switch {
	case err == nil:
		hadAttachment = true
		defer file.Close()
		encoded, encErr := attachment.Encode(header.Filename, header.Header.Get("Content-Type"), file)
		if encErr != nil {
			// The message still goes out text-only; the user is not told.
			u.Logger.Warn("failed to encode attachment, sending text only", "error", encErr)
		} else {
			att = &encoded
		}
	case !errors.Is(err, http.ErrMissingFile):
		hadAttachment = true
		u.Logger.Warn("failed to read attachment, sending text only", "error", err)
	}
	if strings.TrimSpace(text) == "" && hadAttachment && att == nil {
		text = MessageAttachmentFallback
	}

	result, err := u.Conversation.Send(r.Context(), text, att)
	switch {
	case errors.Is(err, ErrEmptyInput):
		u.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "nothing to send"})
		return
	case errors.Is(err, ErrBusy):
		u.writeJSON(w, http.StatusConflict, errorResponse{Error: "a request is already in flight"})
		return
	case err != nil:
		u.Logger.Error("failed to handle chat request", "error", err)
		u.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	resp := chatResponse{UserMessage: newMessageView(result.UserMessage), Superseded: result.Superseded}
	if result.Reply != nil {
		view := newMessageView(*result.Reply)
		resp.Reply = &view
	}
	u.writeJSON(w, http.StatusOK, resp)
}

func (u *WebUsecase) newChatHandler(w http.ResponseWriter, r *http.Request) {
	u.Conversation.Reset()
	u.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (u *WebUsecase) preferenceHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Preference string `json:"preference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		u.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	preference := model.ParseDietaryPreference(req.Preference)
	u.Conversation.SetPreference(preference)
	u.writeJSON(w, http.StatusOK, map[string]model.DietaryPreference{"preference": preference})
}

func (u *WebUsecase) exportHandler(w http.ResponseWriter, r *http.Request) {
	data, err := export.PDF(u.Conversation.Messages(), u.Conversation.Preference(), time.Now())
	if err != nil {
		u.Logger.Error("failed to export conversation", "error", err)
		u.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: MessageExportFailed})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		u.Logger.Warn("failed to write pdf response", "error", err)
	}
}

func (u *WebUsecase) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		u.Logger.Warn("failed to encode response", "error", err)
	}
}

func newMessageView(msg model.Message) messageView {
	return messageView{Message: msg, Blocks: render.Render(msg.Text)}
}
