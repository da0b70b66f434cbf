package handler

import (
	"net/http"

	"udid-retriever/internal/usecase/profile"
	"udid-retriever/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service *profile.Service
}

func NewProfileHandler(service *profile.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// IssueProfile returns the configuration profile as a download. The
// embedded callback URL is derived from the incoming request's own
// origin.
func (h *ProfileHandler) IssueProfile(c *gin.Context) {
	doc, err := h.service.Build(requestBaseURL(c) + CallbackPath)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+profile.Filename+`"`)
	c.Data(http.StatusOK, profile.ContentType, []byte(doc))
}
