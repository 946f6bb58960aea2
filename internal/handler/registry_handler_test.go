package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
	"github.com/DigiCred-Holdings/credential-analysis/internal/response"
	"github.com/DigiCred-Holdings/credential-analysis/internal/service"
)

func setupRegistryRouter(catalog []model.CourseRecord) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewRegistryService(&fixedProvider{catalog: catalog}, nil, zerolog.Nop())
	h := NewRegistryHandler(svc)

	r := gin.New()
	r.GET("/api/v1/registry/sources", h.ListSources)
	r.GET("/api/v1/registry/sources/:source/courses", h.ListCourses)
	return r
}

func TestListSources(t *testing.T) {
	r := setupRegistryRouter(sampleCatalog())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/registry/sources", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Sources []model.Institution `json:"sources"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Sources, 1)
	assert.Equal(t, "CFCC", envelope.Data.Sources[0].Code)
}

func TestListCoursesPaginated(t *testing.T) {
	r := setupRegistryRouter(sampleCatalog())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/registry/sources/Cape%20Fear%20Community%20College/courses?page=1&per_page=1", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Courses []model.CourseRecord `json:"courses"`
		} `json:"data"`
		Pagination *response.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Courses, 1)
	assert.Equal(t, "cfcc-acc-120", envelope.Data.Courses[0].ID)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 2, envelope.Pagination.TotalItems)
	assert.Equal(t, 2, envelope.Pagination.TotalPages)
}

func TestListCoursesUnknownSource(t *testing.T) {
	r := setupRegistryRouter(sampleCatalog())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/registry/sources/Nowhere/courses", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "UNKNOWN_SOURCE")
}
