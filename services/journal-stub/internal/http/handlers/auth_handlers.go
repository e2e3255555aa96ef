package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"tripjournal/libs/journal"
	"tripjournal/services/journal-stub/internal/service"
)

// NewRegisterHandler handles POST /register.
func NewRegisterHandler(store *service.JournalService, tokens *service.TokenService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds journal.Credentials
		if err := decodeBody(r, &creds); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
			return
		}

		username, err := store.Register(r.Context(), creds)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		issueToken(w, tokens, logger, username)
	}
}

// NewTokenHandler handles POST /token with form-encoded credentials.
// Failed attempts are counted per username by limiter.
func NewTokenHandler(store *service.JournalService, tokens *service.TokenService, limiter service.LoginLimiter, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "Invalid form body")
			return
		}
		username := service.CanonicalUsername(r.PostForm.Get("username"))
		password := r.PostForm.Get("password")
		if username == "" || password == "" {
			writeDetail(w, http.StatusUnprocessableEntity, "Username and password are required")
			return
		}

		if err := limiter.Check(r.Context(), username); err != nil {
			writeServiceError(w, logger, err)
			return
		}

		owner, err := store.Authenticate(r.Context(), username, password)
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			if ferr := limiter.Failed(r.Context(), username); ferr != nil {
				logger.Warn("failed to record login failure", zap.Error(ferr))
			}
		case err == nil:
			if serr := limiter.Succeeded(r.Context(), username); serr != nil {
				logger.Warn("failed to reset login failures", zap.Error(serr))
			}
		}
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		issueToken(w, tokens, logger, owner)
	}
}

func issueToken(w http.ResponseWriter, tokens *service.TokenService, logger *zap.Logger, username string) {
	access, err := tokens.Issue(username)
	if err != nil {
		writeServiceError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, journal.Token{AccessToken: access, TokenType: service.TokenType})
}
