package handler

import (
	"errors"
	"io"
	"net/http"

	"udid-retriever/internal/usecase/enrollment"
	apperrors "udid-retriever/pkg/errors"
	"udid-retriever/pkg/utils"

	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	service *enrollment.Service
}

func NewEnrollmentHandler(service *enrollment.Service) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// HandleCallback consumes the raw body the device POSTs after profile
// installation, persists the reported attributes and redirects the
// device browser to the record's detail view.
func (h *EnrollmentHandler) HandleCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	d, err := h.service.Reconcile(c.Request.Context(), string(body))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidPayload) {
			utils.ErrorResponse(c, http.StatusBadRequest, apperrors.ErrInvalidPayload.Error())
			return
		}

		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Redirect(http.StatusFound, requestBaseURL(c)+DeviceDetailPath+"/"+d.ID.String())
}
