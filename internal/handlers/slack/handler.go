// Package slack serves the dice pipeline as Slack slash-command webhooks
package slack

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/KirkDiggler/rpg-dice/internal/entities"
	"github.com/KirkDiggler/rpg-dice/internal/errors"
	"github.com/KirkDiggler/rpg-dice/internal/orchestrators/dice"
)

// Slack response types
const (
	ResponseInChannel = "in_channel"
	ResponseEphemeral = "ephemeral"
)

// Form fields sent by Slack with every slash command
const (
	fieldText     = "text"
	fieldUserName = "user_name"
)

// Response is the JSON body Slack renders for a slash command
type Response struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// HandlerConfig holds dependencies for the Slack handler
type HandlerConfig struct {
	DiceService dice.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}

	return vb.Build()
}

// Handler answers /roll, /adv and /dis slash commands
type Handler struct {
	diceService dice.Service
}

// NewHandler creates a new Slack handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{diceService: cfg.DiceService}, nil
}

// Routes returns a mux with every slash command and a health check
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /roll", withLogging(h.command(entities.ModeStandard)))
	mux.HandleFunc("POST /adv", withLogging(h.command(entities.ModeAdvantage)))
	mux.HandleFunc("POST /dis", withLogging(h.command(entities.ModeDisadvantage)))

	return mux
}

// command builds the handler for one display mode.
// Roll failures are answered with HTTP 200 and an ephemeral message so
// Slack shows the explanation only to the caller.
func (h *Handler) command(mode entities.DisplayMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			invalid := errors.InvalidArgument("malformed form body")
			http.Error(w, invalid.Message, invalid.Code.HTTPStatus())
			return
		}

		output, err := h.diceService.Roll(r.Context(), &dice.RollInput{
			Username: r.PostForm.Get(fieldUserName),
			Notation: r.PostForm.Get(fieldText),
			Mode:     mode,
		})
		if err != nil {
			writeJSON(w, Response{
				ResponseType: ResponseEphemeral,
				Text:         errors.GetMessage(err),
			})
			return
		}

		writeJSON(w, Response{
			ResponseType: ResponseInChannel,
			Text:         output.Text,
		})
	}
}

func writeJSON(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode slack response", "error", err)
	}
}

func withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		slog.InfoContext(r.Context(), "Slash command handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
