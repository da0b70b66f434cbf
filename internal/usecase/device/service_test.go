package device

import (
	"context"
	"testing"
	"time"

	domain "udid-retriever/internal/domain/device"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	devices []domain.Device
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Device, error) {
	for i := range s.devices {
		if s.devices[i].ID == id {
			return &s.devices[i], nil
		}
	}
	return nil, domain.ErrDeviceNotFound
}

func (s *stubRepo) GetByUDID(ctx context.Context, udid string) (*domain.Device, error) {
	for i := range s.devices {
		if s.devices[i].UDID == udid {
			return &s.devices[i], nil
		}
	}
	return nil, domain.ErrDeviceNotFound
}

func (s *stubRepo) Upsert(ctx context.Context, d *domain.Device) (*domain.Device, error) {
	return d, nil
}

func (s *stubRepo) List(ctx context.Context, offset, limit int) ([]domain.Device, int64, error) {
	total := int64(len(s.devices))
	if offset >= len(s.devices) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(s.devices) {
		end = len(s.devices)
	}
	return s.devices[offset:end], total, nil
}

func seedDevices(n int) []domain.Device {
	devices := make([]domain.Device, n)
	for i := range devices {
		devices[i] = domain.Device{
			ID:        uuid.New(),
			UDID:      uuid.New().String(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}
	return devices
}

func TestService_GetDevice(t *testing.T) {
	repo := &stubRepo{devices: seedDevices(3)}
	svc := NewService(repo)

	found, err := svc.GetDevice(context.Background(), repo.devices[1].ID)
	require.NoError(t, err)
	assert.Equal(t, repo.devices[1].UDID, found.UDID)

	_, err = svc.GetDevice(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrDeviceNotFound)
}

func TestService_ListDevices(t *testing.T) {
	tests := []struct {
		name       string
		seed       int
		req        ListDevicesRequest
		wantCount  int
		wantPage   int
		wantPages  int
		wantErrMsg string
	}{
		{
			name:      "defaults applied",
			seed:      3,
			req:       ListDevicesRequest{},
			wantCount: 3,
			wantPage:  1,
			wantPages: 1,
		},
		{
			name:      "second page",
			seed:      25,
			req:       ListDevicesRequest{Page: 2, PageSize: 10},
			wantCount: 10,
			wantPage:  2,
			wantPages: 3,
		},
		{
			name:       "page size over limit rejected",
			seed:       1,
			req:        ListDevicesRequest{PageSize: 1000},
			wantErrMsg: "Invalid query parameters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&stubRepo{devices: seedDevices(tt.seed)})

			list, err := svc.ListDevices(context.Background(), &tt.req)

			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}

			require.NoError(t, err)
			assert.Len(t, list.Devices, tt.wantCount)
			assert.Equal(t, tt.wantPage, list.Page)
			assert.Equal(t, tt.wantPages, list.TotalPages)
			assert.Equal(t, int64(tt.seed), list.Total)
		})
	}
}
