package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/server/http/dto"
	"github.com/polkiloo/campusfood/internal/server/http/middleware"
)

const internalErrorMessage = "Server error"

// CurrentAccountID extracts the authenticated account identifier from context.
func CurrentAccountID(c *gin.Context) int64 {
	p, _ := middleware.CurrentPrincipal(c)
	return p.ID
}

// writeError maps domain error classes onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainErrors.ErrConflict), errors.Is(err, domainErrors.ErrAlreadyExists):
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = internalErrorMessage
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Message: message})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Message: message})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func pageQuery(c *gin.Context) model.Page {
	number, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return model.NewPage(number, limit)
}
