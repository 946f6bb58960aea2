package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
	"github.com/DigiCred-Holdings/credential-analysis/internal/registry"
	"github.com/DigiCred-Holdings/credential-analysis/internal/response"
	"github.com/DigiCred-Holdings/credential-analysis/internal/service"
)

type RegistryHandler struct {
	registryService *service.RegistryService
}

func NewRegistryHandler(registryService *service.RegistryService) *RegistryHandler {
	return &RegistryHandler{registryService: registryService}
}

// ListSources godoc
// GET /api/v1/registry/sources
func (h *RegistryHandler) ListSources(c *gin.Context) {
	sources, err := h.registryService.ListSources(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if sources == nil {
		sources = []model.Institution{}
	}

	response.Success(c, http.StatusOK, gin.H{"sources": sources})
}

// ListCourses godoc
// GET /api/v1/registry/sources/:source/courses?page=1&per_page=50
func (h *RegistryHandler) ListCourses(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if err != nil || perPage < 1 || perPage > 200 {
		perPage = 50
	}

	courses, total, err := h.registryService.ListCourses(c.Request.Context(), c.Param("source"), page, perPage)
	if err != nil {
		if errors.Is(err, registry.ErrUnknownSource) {
			response.Fail(c, http.StatusNotFound, response.ErrUnknownSource)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if courses == nil {
		courses = []model.CourseRecord{}
	}

	totalPages := total / perPage
	if total%perPage > 0 {
		totalPages++
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"courses": courses}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}
