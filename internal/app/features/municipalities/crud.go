// internal/app/features/municipalities/crud.go
package municipalities

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	municipalitystore "github.com/dalemusser/surveyhub/internal/app/store/municipalities"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/inputval"
	"github.com/dalemusser/surveyhub/internal/app/system/normalize"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// createInput defines validation rules for municipality creation.
type createInput struct {
	Code     string `validate:"required,max=20" label:"Code"`
	Name     string `validate:"required,max=200" label:"Name"`
	District string `validate:"required,max=200" label:"District"`
}

type municipalityRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	District string `json:"district"`
}

// HandleCreate adds a municipality to the catalog. Codes are uppercased
// and unique; a duplicate is a BadRequest.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req municipalityRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	code := normalize.Code(req.Code)
	name := normalize.Name(req.Name)
	district := normalize.Name(req.District)

	input := createInput{Code: code, Name: name, District: district}
	if result := inputval.Validate(input); result.HasErrors() {
		webjson.Error(w, h.Log, apperr.BadRequest(result.First()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := municipalitystore.New(h.DB).Create(ctx, models.Municipality{
		Code:     code,
		Name:     name,
		District: district,
	})
	if err != nil {
		if errors.Is(err, municipalitystore.ErrDuplicateCode) {
			webjson.Error(w, h.Log, apperr.BadRequest(err.Error()))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to create municipality", err))
		return
	}

	h.Log.Info("municipality created",
		zap.String("municipality_id", m.ID.Hex()),
		zap.String("code", m.Code))

	webjson.Write(w, http.StatusCreated, m)
}

// HandleList returns all active municipalities.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := municipalitystore.New(h.DB).FindActive(ctx)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list municipalities", err))
		return
	}
	if list == nil {
		list = []models.Municipality{}
	}
	webjson.Write(w, http.StatusOK, list)
}

// HandleListAll returns the full catalog, inactive entries included.
// Authorization: RequireRole("admin") in routes.go.
func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := municipalitystore.New(h.DB).FindAll(ctx)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list municipalities", err))
		return
	}
	if list == nil {
		list = []models.Municipality{}
	}
	webjson.Write(w, http.StatusOK, list)
}

// HandleGet returns one active municipality. Inactive entries read as
// not found outside the admin catalog view.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := municipalitystore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("municipality not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load municipality", err))
		return
	}
	if !m.IsActive {
		webjson.Error(w, h.Log, apperr.NotFound("municipality not found"))
		return
	}
	webjson.Write(w, http.StatusOK, m)
}

// HandleGetByCode resolves a municipality by its canonical code.
func (h *Handler) HandleGetByCode(w http.ResponseWriter, r *http.Request) {
	code := normalize.Code(chi.URLParam(r, "code"))
	if code == "" {
		webjson.Error(w, h.Log, apperr.BadRequest("code is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := municipalitystore.New(h.DB).GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("municipality not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load municipality", err))
		return
	}
	if !m.IsActive {
		webjson.Error(w, h.Log, apperr.NotFound("municipality not found"))
		return
	}
	webjson.Write(w, http.StatusOK, m)
}

// HandleListByDistrict returns the active municipalities of a district.
func (h *Handler) HandleListByDistrict(w http.ResponseWriter, r *http.Request) {
	district := normalize.Name(chi.URLParam(r, "district"))
	if district == "" {
		webjson.Error(w, h.Log, apperr.BadRequest("district is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := municipalitystore.New(h.DB).FindByDistrict(ctx, district)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list municipalities", err))
		return
	}
	if list == nil {
		list = []models.Municipality{}
	}
	webjson.Write(w, http.StatusOK, list)
}

// HandleUpdate changes a municipality's name or district. The code is
// immutable once assigned.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	var req municipalityRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}
	if req.Code != "" {
		webjson.Error(w, h.Log, apperr.BadRequest("the code cannot be changed"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	store := municipalitystore.New(h.DB)

	if _, err := store.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("municipality not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load municipality", err))
		return
	}

	if err := store.Update(ctx, id, models.Municipality{
		Name:     normalize.Name(req.Name),
		District: normalize.Name(req.District),
	}); err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to update municipality", err))
		return
	}

	updated, err := store.GetByID(ctx, id)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to reload municipality", err))
		return
	}
	webjson.Write(w, http.StatusOK, updated)
}

// HandleDeactivate soft-deletes a municipality.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false, "municipality deactivated")
}

// HandleRestore brings a soft-deleted municipality back.
func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true, "municipality restored")
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool, message string) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := municipalitystore.New(h.DB).SetActive(ctx, id, active); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("municipality not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to update municipality", err))
		return
	}

	h.Log.Info(message, zap.String("municipality_id", id.Hex()))
	webjson.Write(w, http.StatusOK, map[string]string{"message": message})
}
