// internal/app/features/responses/create.go
package responses

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	municipalitystore "github.com/dalemusser/surveyhub/internal/app/store/municipalities"
	responsestore "github.com/dalemusser/surveyhub/internal/app/store/responses"
	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

type createResponseRequest struct {
	SurveyID       string          `json:"surveyId"`
	Answers        json.RawMessage `json:"answers"`
	Metadata       map[string]any  `json:"metadata"`
	Status         string          `json:"status"`
	MunicipalityID string          `json:"municipalityId"`
	UserID         string          `json:"userId"`
}

// decodeAnswers enforces that answers is a JSON object. An empty object
// is fine; arrays, strings, and null are not.
func decodeAnswers(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, apperr.BadRequest("answers is required")
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, apperr.BadRequest("answers must be a JSON object")
	}
	var answers map[string]any
	if err := json.Unmarshal(trimmed, &answers); err != nil {
		return nil, apperr.BadRequest("answers must be a JSON object")
	}
	return answers, nil
}

// HandleCreate creates a response. Drafts are the default; an explicit
// final status is honored and stamps FinalizedAt. The owner defaults to
// the caller; admins may set any owner and editors anyone on their
// team.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)

	var req createResponseRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	if req.SurveyID == "" {
		webjson.Error(w, h.Log, apperr.BadRequest("surveyId is required"))
		return
	}
	answers, err := decodeAnswers(req.Answers)
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	status := req.Status
	switch status {
	case "", models.StatusDraft:
		status = models.StatusDraft
	case models.StatusFinal:
	default:
		webjson.Error(w, h.Log, apperr.BadRequest("status must be draft or final"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ownerID := p.ID
	if req.UserID != "" {
		target, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			webjson.Error(w, h.Log, apperr.BadRequest("invalid userId"))
			return
		}
		if target != p.ID {
			owner, err := h.resolveOwner(ctx, p, target)
			if err != nil {
				webjson.Error(w, h.Log, err)
				return
			}
			ownerID = owner
		}
	}

	var municipalityID *primitive.ObjectID
	if req.MunicipalityID != "" {
		id, err := h.validateMunicipality(ctx, req.MunicipalityID)
		if err != nil {
			webjson.Error(w, h.Log, err)
			return
		}
		municipalityID = id
	}

	created, err := responsestore.New(h.DB).Create(ctx, models.Response{
		SurveyID:       req.SurveyID,
		Answers:        answers,
		Metadata:       req.Metadata,
		Status:         status,
		UserID:         ownerID,
		MunicipalityID: municipalityID,
		LastModifiedBy: p.ID,
	})
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to create response", err))
		return
	}

	h.Log.Info("response created",
		zap.String("response_id", created.ID.Hex()),
		zap.String("survey_id", created.SurveyID),
		zap.String("status", created.Status),
		zap.String("owner_id", created.UserID.Hex()))

	webjson.Write(w, http.StatusCreated, created)
}

// resolveOwner authorizes assigning a response to another user. Admins
// may pick anyone; editors only members of their own team.
func (h *Handler) resolveOwner(ctx context.Context, p auth.Principal, target primitive.ObjectID) (primitive.ObjectID, error) {
	if p.Role == models.RoleUser {
		return primitive.NilObjectID, apperr.Forbidden("you cannot create responses for other users")
	}

	owner, err := userstore.New(h.DB).GetByID(ctx, target)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primitive.NilObjectID, apperr.BadRequest("userId does not reference an existing user")
		}
		return primitive.NilObjectID, apperr.Internal("failed to load target user", err)
	}

	if p.Role == models.RoleEditor {
		if p.TeamID == nil || owner.TeamID == nil || *p.TeamID != *owner.TeamID {
			return primitive.NilObjectID, apperr.Forbidden("you can only create responses for members of your team")
		}
	}
	return owner.ID, nil
}

// validateMunicipality checks the referenced municipality exists and is
// active.
func (h *Handler) validateMunicipality(ctx context.Context, hex string) (*primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, apperr.BadRequest("invalid municipalityId")
	}
	m, err := municipalitystore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.BadRequest("municipalityId does not reference an existing municipality")
		}
		return nil, apperr.Internal("failed to load municipality", err)
	}
	if !m.IsActive {
		return nil, apperr.BadRequest("municipality is inactive")
	}
	return &m.ID, nil
}
