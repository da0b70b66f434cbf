package handler

import (
	"errors"
	"net/http"

	domain "udid-retriever/internal/domain/device"
	"udid-retriever/internal/usecase/device"
	apperrors "udid-retriever/pkg/errors"
	"udid-retriever/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DeviceHandler struct {
	service *device.Service
}

func NewDeviceHandler(service *device.Service) *DeviceHandler {
	return &DeviceHandler{service: service}
}

func (h *DeviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.GET("", h.ListDevices)
		devices.GET("/:id", h.GetDevice)
		devices.GET("/udid/:udid", h.GetDeviceByUDID)
	}
}

func (h *DeviceHandler) GetDevice(c *gin.Context) {
	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid device ID")
		return
	}

	d, err := h.service.GetDevice(c.Request.Context(), deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrDeviceNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *DeviceHandler) GetDeviceByUDID(c *gin.Context) {
	udid := c.Param("udid")
	if udid == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "UDID required")
		return
	}

	d, err := h.service.GetDeviceByUDID(c.Request.Context(), udid)
	if err != nil {
		if errors.Is(err, domain.ErrDeviceNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *DeviceHandler) ListDevices(c *gin.Context) {
	var req device.ListDevicesRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	list, err := h.service.ListDevices(c.Request.Context(), &req)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, list)
}
