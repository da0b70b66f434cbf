package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"udid-retriever/internal/database"
	"udid-retriever/internal/domain/device"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceRepository struct {
	db *database.Database
}

func NewDeviceRepository(db *database.Database) *DeviceRepository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*device.Device, error) {
	var d device.Device
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&d).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, device.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return &d, nil
}

func (r *DeviceRepository) GetByUDID(ctx context.Context, udid string) (*device.Device, error) {
	var d device.Device
	err := r.db.DB.WithContext(ctx).
		Where("udid = ?", udid).
		First(&d).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, device.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return &d, nil
}

// Upsert inserts the device or, when a record with the same udid
// already exists, overwrites its reported attribute columns in the
// same statement. id and created_at are never touched on the update
// path. The stored record is returned, so callers always see the id
// the detail view is addressed by.
func (r *DeviceRepository) Upsert(ctx context.Context, d *device.Device) (*device.Device, error) {
	now := time.Now()
	d.ID = uuid.New()
	d.CreatedAt = now
	d.UpdatedAt = now

	err := r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "udid"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"device_name",
				"device_product",
				"device_version",
				"mac_address",
				"imei",
				"iccid",
				"updated_at",
			}),
		}).
		Create(d).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert device: %w", err)
	}

	// On the conflict path the id generated above was discarded, so
	// re-read by the business key.
	stored, err := r.GetByUDID(ctx, d.UDID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", device.ErrUpsertFailed, err)
	}

	return stored, nil
}

func (r *DeviceRepository) List(ctx context.Context, offset, limit int) ([]device.Device, int64, error) {
	var total int64
	if err := r.db.DB.WithContext(ctx).Model(&device.Device{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count devices: %w", err)
	}

	var devices []device.Device
	err := r.db.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&devices).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list devices: %w", err)
	}

	return devices, total, nil
}
