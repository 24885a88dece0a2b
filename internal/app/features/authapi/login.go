// internal/app/features/authapi/login.go
package authapi

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/authutil"
	"github.com/dalemusser/surveyhub/internal/app/system/inputval"
	"github.com/dalemusser/surveyhub/internal/app/system/normalize"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
)

// invalidCredentials is the single message for both unknown email and
// wrong password, so login probing cannot tell the two apart.
const invalidCredentials = "invalid email or password"

// loginInput defines validation rules for login.
type loginInput struct {
	Email    string `validate:"required,email" label:"Email"`
	Password string `validate:"required" label:"Password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID     string  `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	TeamID *string `json:"team_id,omitempty"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	User        loginUser `json:"user"`
}

// HandleLogin exchanges email/password credentials for a signed token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	email := normalize.Email(req.Email)

	input := loginInput{Email: email, Password: req.Password}
	if result := inputval.Validate(input); result.HasErrors() {
		webjson.Error(w, h.Log, apperr.BadRequest(result.First()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := userstore.New(h.DB).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.Unauthenticated(invalidCredentials))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to look up user", err))
		return
	}

	if !authutil.VerifyPassword(req.Password, user.PasswordHash) {
		webjson.Error(w, h.Log, apperr.Unauthenticated(invalidCredentials))
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to issue token", err))
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))

	resp := loginResponse{
		AccessToken: token,
		User: loginUser{
			ID:    user.ID.Hex(),
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}
	if user.TeamID != nil {
		tid := user.TeamID.Hex()
		resp.User.TeamID = &tid
	}

	webjson.Write(w, http.StatusOK, resp)
}
