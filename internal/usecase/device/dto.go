package device

import domain "udid-retriever/internal/domain/device"

type ListDevicesRequest struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type DeviceListResponse struct {
	Devices    []domain.Device `json:"devices"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}
