package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/comexweb/internal/service"
	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Error interno del servidor"

var notFoundErrors = []error{
	service.ErrPageNotFound,
	service.ErrSectionNotFound,
	service.ErrCategoryNotFound,
	service.ErrProductNotFound,
	service.ErrPostNotFound,
	service.ErrOrderNotFound,
	service.ErrLeadNotFound,
	service.ErrContactQueryNotFound,
	service.ErrMediaNotFound,
	service.ErrUserNotFound,
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// bindPayload 按 Content-Type 选择 JSON 或表单绑定。
func bindPayload(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBind(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// idParam parses :id and answers 400 when it is malformed.
func idParam(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func queryBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return v
}

// handleServiceError maps a service error onto the HTTP error taxonomy.
// Unexpected errors are attached to the context for the request logger and
// answered with a generic message.
func handleServiceError(c *gin.Context, err error) {
	var validation *service.ValidationError
	var inUse *service.CategoryInUseError

	switch {
	case errors.As(err, &validation):
		body := gin.H{"error": validation.Message}
		if validation.Field != "" {
			body["field"] = validation.Field
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &inUse):
		c.JSON(http.StatusConflict, gin.H{"error": inUse.Error(), "productCount": inUse.Count})
	case errors.Is(err, service.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "field": "slug"})
	case errors.Is(err, service.ErrSectionOrder), errors.Is(err, service.ErrEmptyCart):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case isNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, internalErrorMessage)
	}
}

func isNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
