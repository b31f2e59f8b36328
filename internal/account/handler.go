package account

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/budgetly/budgetly/internal/platform/httpx"
	"github.com/budgetly/budgetly/internal/shared"
	"github.com/budgetly/budgetly/internal/view"
)

// VerifiedPath is where verification links land after consumption.
const VerifiedPath = "/user/verified"

// Handler wires HTTP endpoints for the account lifecycle.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, templates: templates}
}

// MountRoutes registers account routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Get("/verify/{userID}/{token}", h.handleVerify)
	r.Get("/verified", h.showVerified)
	r.Post("/signin", h.handleSignin)
	r.Post("/requestPasswordReset", h.handleRequestReset)
	r.Post("/resetPassword", h.handleResetPassword)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in SignupInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, ErrEmptyFields)
		return
	}
	if err := h.service.Signup(r.Context(), in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Pending(w, "Verification email sent")
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	err := h.service.Verify(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "token"))
	if err == nil {
		http.Redirect(w, r, VerifiedPath, http.StatusFound)
		return
	}
	message := "An internal error occurred"
	var outcome *shared.Error
	if errors.As(err, &outcome) {
		message = outcome.Message
	}
	q := url.Values{}
	q.Set("error", "true")
	q.Set("message", message)
	http.Redirect(w, r, VerifiedPath+"?"+q.Encode(), http.StatusFound)
}

func (h *Handler) showVerified(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := view.TemplateData{
		Title:       "Email verification",
		CurrentPath: r.URL.Path,
		Data: map[string]any{
			"Error":   q.Get("error") == "true",
			"Message": q.Get("message"),
		},
	}
	if err := h.templates.Render(w, http.StatusOK, "pages/verified.html", data); err != nil {
		h.logger.Error("render verified page", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) handleSignin(w http.ResponseWriter, r *http.Request) {
	var in SigninInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, ErrEmptyCredentials)
		return
	}
	user, err := h.service.SignIn(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, 3, "Signin successful", user)
}

func (h *Handler) handleRequestReset(w http.ResponseWriter, r *http.Request) {
	var in ResetRequestInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, ErrEmptyResetRequest)
		return
	}
	if err := h.service.RequestPasswordReset(r.Context(), in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Pending(w, "Password reset email sent")
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var in ResetPasswordInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, ErrEmptyResetFields)
		return
	}
	if err := h.service.ResetPassword(r.Context(), in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, 5, "Password has been reset successfully", nil)
}
