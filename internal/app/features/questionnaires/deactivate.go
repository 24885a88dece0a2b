// internal/app/features/questionnaires/deactivate.go
package questionnaires

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	questionnairestore "github.com/dalemusser/surveyhub/internal/app/store/questionnaires"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
)

// HandleDeactivate retires a questionnaire. Existing responses keep
// their survey reference; the template just stops being offered.
// Authorization: RequireRole("admin") in routes.go.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := questionnairestore.New(h.DB).SetActive(ctx, id, false); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("questionnaire not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to deactivate questionnaire", err))
		return
	}

	h.Log.Info("questionnaire deactivated", zap.String("questionnaire_id", id.Hex()))
	webjson.Write(w, http.StatusOK, map[string]string{"message": "questionnaire deactivated"})
}
