package handler

import (
	"net/http"

	"github.com/jobbuddy/api/internal/ctxkeys"
	"github.com/jobbuddy/api/internal/repository"
	"github.com/jobbuddy/api/internal/service"
)

type outreachHandler struct {
	outreachService *service.OutreachService
}

func NewOutreachHandler(outreachService *service.OutreachService) *outreachHandler {
	return &outreachHandler{outreachService: outreachService}
}

func (h *outreachHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req service.OutreachInput
	if err := Decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	activity, err := h.outreachService.Create(user.ID, req)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message":  "Outreach activity logged successfully",
		"activity": activity,
	})
}

func (h *outreachHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	page, perPage := pageParams(r)
	q := r.URL.Query()

	activities, total, err := h.outreachService.List(user.ID, repository.OutreachFilter{
		ApplicationID: q.Get("application_id"),
		CompanyID:     q.Get("company_id"),
		Status:        q.Get("status"),
		Page:          page,
		PerPage:       perPage,
	})
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"activities": activities,
		"pagination": NewPagination(page, perPage, total),
	})
}

func (h *outreachHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	activity, err := h.outreachService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"activity": activity})
}

func (h *outreachHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req service.OutreachUpdate
	if err := Decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	activity, err := h.outreachService.Update(user.ID, r.PathValue("id"), req)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message":  "Outreach activity updated successfully",
		"activity": activity,
	})
}

func (h *outreachHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.outreachService.Delete(user.ID, r.PathValue("id")); err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Outreach activity deleted successfully",
	})
}
