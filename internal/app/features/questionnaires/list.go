// internal/app/features/questionnaires/list.go
package questionnaires

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	questionnairestore "github.com/dalemusser/surveyhub/internal/app/store/questionnaires"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// HandleList returns all active questionnaires.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := questionnairestore.New(h.DB).FindActive(ctx)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list questionnaires", err))
		return
	}
	if list == nil {
		list = []models.Questionnaire{}
	}
	webjson.Write(w, http.StatusOK, list)
}

// HandleGet returns one active questionnaire with its questions. A
// deactivated template reads as not found for every role.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	q, err := questionnairestore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("questionnaire not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load questionnaire", err))
		return
	}
	if !q.IsActive {
		webjson.Error(w, h.Log, apperr.NotFound("questionnaire not found"))
		return
	}
	webjson.Write(w, http.StatusOK, q)
}
