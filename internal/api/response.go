package api

import (
	"errors"
	"net/http"

	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/clique77/job-portal-sub001/internal/logger"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type errorBody struct {
	Code    errs.Kind         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	case errs.KindInvalidState, errs.KindInvalidTransition, errs.KindConflict:
		return http.StatusConflict
	case errs.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error kind as the response code. Internal details
// are logged and never sent to the client.
func respondError(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	status := statusFor(kind)

	body := errorBody{Code: kind, Message: err.Error()}
	var domainErr *errs.Error
	if errors.As(err, &domainErr) {
		body.Message = domainErr.Message
		body.Fields = domainErr.Fields
	}

	if status == http.StatusInternalServerError {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).
			Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		body = errorBody{Code: errs.KindInternal, Message: "internal server error"}
	}

	c.AbortWithStatusJSON(status, gin.H{"error": body})
}

func badRequest(c *gin.Context, err error) {
	respondError(c, errs.Validation("malformed request body: "+err.Error(), nil))
}
