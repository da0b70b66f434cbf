package enrollment

import (
	"context"

	"udid-retriever/internal/domain/device"
	"udid-retriever/internal/logger"

	"go.uber.org/zap"
)

// Notifier receives a signal after a device record has been persisted.
// Delivery is best-effort and must never fail the enrollment.
type Notifier interface {
	DeviceEnrolled(ctx context.Context, d *device.Device)
}

// Service reconciles profile callbacks into device records.
type Service struct {
	deviceRepo device.Repository
	notifier   Notifier
}

func NewService(deviceRepo device.Repository, notifier Notifier) *Service {
	return &Service{
		deviceRepo: deviceRepo,
		notifier:   notifier,
	}
}

// Reconcile extracts the plist payload from a raw callback body and
// upserts the device record keyed on the reported UDID. Attributes the
// callback omits are stored as empty strings, overwriting any prior
// values. The stored record is returned for the redirect.
func (s *Service) Reconcile(ctx context.Context, body string) (*device.Device, error) {
	plistData, err := ExtractPlist(body)
	if err != nil {
		return nil, err
	}

	attrs, err := ParseAttributes(plistData)
	if err != nil {
		return nil, err
	}

	d := &device.Device{
		UDID: attrs[device.AttrUDID],
	}
	d.ApplyAttributes(attrs)

	stored, err := s.deviceRepo.Upsert(ctx, d)
	if err != nil {
		return nil, err
	}

	logger.Info("Device enrolled",
		zap.String("device_id", stored.ID.String()),
		zap.String("udid", stored.UDID),
		zap.String("product", stored.DeviceProduct),
	)

	if s.notifier != nil {
		s.notifier.DeviceEnrolled(ctx, stored)
	}

	return stored, nil
}
