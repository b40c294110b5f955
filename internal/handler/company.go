package handler

import (
	"net/http"

	"github.com/jobbuddy/api/internal/ctxkeys"
	"github.com/jobbuddy/api/internal/service"
)

type companyHandler struct {
	companyService *service.CompanyService
}

func NewCompanyHandler(companyService *service.CompanyService) *companyHandler {
	return &companyHandler{companyService: companyService}
}

func (h *companyHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req service.CompanyInput
	if err := Decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	company, err := h.companyService.Create(user.ID, req)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message": "Company created successfully",
		"company": company,
	})
}

func (h *companyHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	page, perPage := pageParams(r)
	search := r.URL.Query().Get("search")

	companies, total, err := h.companyService.List(user.ID, search, page, perPage)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"companies":  companies,
		"pagination": NewPagination(page, perPage, total),
	})
}

func (h *companyHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	company, err := h.companyService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"company": company})
}

func (h *companyHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req service.CompanyInput
	if err := Decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	company, err := h.companyService.Update(user.ID, r.PathValue("id"), req)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Company updated successfully",
		"company": company,
	})
}

func (h *companyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.companyService.Delete(user.ID, r.PathValue("id")); err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Company deleted successfully",
	})
}
