package device

import (
	"context"

	domain "udid-retriever/internal/domain/device"
	apperrors "udid-retriever/pkg/errors"
	"udid-retriever/pkg/utils"

	"github.com/google/uuid"
)

// Service backs the read API consumed by the device detail view.
type Service struct {
	deviceRepo domain.Repository
}

func NewService(deviceRepo domain.Repository) *Service {
	return &Service{deviceRepo: deviceRepo}
}

func (s *Service) GetDevice(ctx context.Context, id uuid.UUID) (*domain.Device, error) {
	return s.deviceRepo.GetByID(ctx, id)
}

func (s *Service) GetDeviceByUDID(ctx context.Context, udid string) (*domain.Device, error) {
	return s.deviceRepo.GetByUDID(ctx, udid)
}

func (s *Service) ListDevices(ctx context.Context, req *ListDevicesRequest) (*DeviceListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewAppError("VALIDATION_ERROR", "Invalid query parameters", err)
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	offset := (req.Page - 1) * req.PageSize

	devices, total, err := s.deviceRepo.List(ctx, offset, req.PageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &DeviceListResponse{
		Devices:    devices,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
