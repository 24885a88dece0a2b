// internal/app/features/questionnaires/create.go
package questionnaires

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	questionnairestore "github.com/dalemusser/surveyhub/internal/app/store/questionnaires"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/surveyhub/internal/app/system/inputval"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// createInput defines validation rules for questionnaire creation.
type createInput struct {
	Title       string `validate:"required,max=300" label:"Title"`
	Description string `validate:"max=2000" label:"Description"`
}

type questionRequest struct {
	Text       string   `json:"text"`
	Type       string   `json:"type"`
	Options    []string `json:"options"`
	IsRequired bool     `json:"isRequired"`
}

type createRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []questionRequest `json:"questions"`
}

// HandleCreate creates a questionnaire with its embedded questions.
// Question order is assigned from the submission sequence; choice-type
// questions must carry options.
// Authorization: RequireRole("admin", "editor") in routes.go.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)

	var req createRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	title := strings.TrimSpace(req.Title)

	input := createInput{Title: title, Description: req.Description}
	if result := inputval.Validate(input); result.HasErrors() {
		webjson.Error(w, h.Log, apperr.BadRequest(result.First()))
		return
	}
	if len(req.Questions) == 0 {
		webjson.Error(w, h.Log, apperr.BadRequest("at least one question is required"))
		return
	}

	questions := make([]models.Question, 0, len(req.Questions))
	for i, q := range req.Questions {
		text := strings.TrimSpace(htmlsanitize.StripTags(q.Text))
		if text == "" {
			webjson.Error(w, h.Log, apperr.BadRequest(fmt.Sprintf("question %d: text is required", i+1)))
			return
		}
		if !models.ValidQuestionType(q.Type) {
			webjson.Error(w, h.Log, apperr.BadRequest(fmt.Sprintf("question %d: unknown type %q", i+1, q.Type)))
			return
		}
		if models.ChoiceQuestionType(q.Type) && len(q.Options) == 0 {
			webjson.Error(w, h.Log, apperr.BadRequest(fmt.Sprintf("question %d: %s questions need options", i+1, q.Type)))
			return
		}
		questions = append(questions, models.Question{
			Text:       text,
			Type:       q.Type,
			Options:    q.Options,
			IsRequired: q.IsRequired,
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := questionnairestore.New(h.DB).Create(ctx, models.Questionnaire{
		Title:       title,
		Description: htmlsanitize.StripTags(req.Description),
		Questions:   questions,
		CreatedByID: p.ID,
	})
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to create questionnaire", err))
		return
	}

	h.Log.Info("questionnaire created",
		zap.String("questionnaire_id", created.ID.Hex()),
		zap.String("created_by", p.ID.Hex()),
		zap.Int("questions", len(created.Questions)))

	webjson.Write(w, http.StatusCreated, created)
}
