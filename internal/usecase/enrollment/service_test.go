package enrollment

import (
	"context"
	"testing"
	"time"

	"udid-retriever/internal/domain/device"
	"udid-retriever/internal/logger"
	apperrors "udid-retriever/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	m.Run()
}

type fakeDeviceRepo struct {
	byUDID  map[string]*device.Device
	upserts int
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{byUDID: make(map[string]*device.Device)}
}

func (f *fakeDeviceRepo) GetByID(ctx context.Context, id uuid.UUID) (*device.Device, error) {
	for _, d := range f.byUDID {
		if d.ID == id {
			copied := *d
			return &copied, nil
		}
	}
	return nil, device.ErrDeviceNotFound
}

func (f *fakeDeviceRepo) GetByUDID(ctx context.Context, udid string) (*device.Device, error) {
	d, ok := f.byUDID[udid]
	if !ok {
		return nil, device.ErrDeviceNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDeviceRepo) Upsert(ctx context.Context, d *device.Device) (*device.Device, error) {
	f.upserts++

	now := time.Now()
	if existing, ok := f.byUDID[d.UDID]; ok {
		existing.DeviceName = d.DeviceName
		existing.DeviceProduct = d.DeviceProduct
		existing.DeviceVersion = d.DeviceVersion
		existing.MACAddress = d.MACAddress
		existing.IMEI = d.IMEI
		existing.ICCID = d.ICCID
		existing.UpdatedAt = now
		copied := *existing
		return &copied, nil
	}

	d.ID = uuid.New()
	d.CreatedAt = now
	d.UpdatedAt = now
	copied := *d
	f.byUDID[d.UDID] = &copied
	result := copied
	return &result, nil
}

func (f *fakeDeviceRepo) List(ctx context.Context, offset, limit int) ([]device.Device, int64, error) {
	devices := make([]device.Device, 0, len(f.byUDID))
	for _, d := range f.byUDID {
		devices = append(devices, *d)
	}
	return devices, int64(len(devices)), nil
}

type recordingNotifier struct {
	events []*device.Device
}

func (n *recordingNotifier) DeviceEnrolled(ctx context.Context, d *device.Device) {
	n.events = append(n.events, d)
}

func callbackBody(pairs [][2]string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
`
	for _, p := range pairs {
		body += "\t<key>" + p[0] + "</key>\n\t<string>" + p[1] + "</string>\n"
	}
	return body + "</dict>\n</plist>"
}

func TestService_Reconcile_CreatesRecord(t *testing.T) {
	repo := newFakeDeviceRepo()
	notifier := &recordingNotifier{}
	svc := NewService(repo, notifier)

	body := callbackBody([][2]string{
		{"UDID", "00008030-001A2B3C4D5E6F7G"},
		{"DEVICE_NAME", "My iPhone"},
		{"VERSION", "21A329"},
		{"PRODUCT", "iPhone15,2"},
		{"MAC_ADDRESS_EN0", "aa:bb:cc:dd:ee:ff"},
		{"IMEI", "356789012345678"},
		{"ICCID", "8901260123456789012"},
	})

	d, err := svc.Reconcile(context.Background(), body)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, d.ID)
	assert.Equal(t, "00008030-001A2B3C4D5E6F7G", d.UDID)
	assert.Equal(t, "My iPhone", d.DeviceName)
	assert.Equal(t, "iPhone15,2", d.DeviceProduct)
	assert.Equal(t, "21A329", d.DeviceVersion)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", d.MACAddress)
	assert.Equal(t, "356789012345678", d.IMEI)
	assert.Equal(t, "8901260123456789012", d.ICCID)
	assert.False(t, d.CreatedAt.IsZero())

	require.Len(t, notifier.events, 1)
	assert.Equal(t, d.ID, notifier.events[0].ID)
}

func TestService_Reconcile_UpdatesExistingRecord(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc := NewService(repo, nil)

	first, err := svc.Reconcile(context.Background(), callbackBody([][2]string{
		{"UDID", "ABC123"},
		{"DEVICE_NAME", "Old Name"},
		{"IMEI", "356789012345678"},
	}))
	require.NoError(t, err)

	second, err := svc.Reconcile(context.Background(), callbackBody([][2]string{
		{"UDID", "ABC123"},
		{"DEVICE_NAME", "New Name"},
	}))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "id must survive re-enrollment")
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "New Name", second.DeviceName)
	assert.Equal(t, "", second.IMEI, "omitted attributes overwrite with empty, not merge")
	assert.Equal(t, 2, repo.upserts)
}

func TestService_Reconcile_MissingAttributesDefaultEmpty(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc := NewService(repo, nil)

	d, err := svc.Reconcile(context.Background(), callbackBody([][2]string{
		{"UDID", "ABC123"},
	}))

	require.NoError(t, err)
	assert.Equal(t, "", d.DeviceName)
	assert.Equal(t, "", d.DeviceProduct)
	assert.Equal(t, "", d.DeviceVersion)
	assert.Equal(t, "", d.MACAddress)
	assert.Equal(t, "", d.IMEI)
	assert.Equal(t, "", d.ICCID)
}

func TestService_Reconcile_IgnoresUnknownAttributes(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc := NewService(repo, nil)

	d, err := svc.Reconcile(context.Background(), callbackBody([][2]string{
		{"UDID", "ABC123"},
		{"CHALLENGE", "not-a-device-field"},
	}))

	require.NoError(t, err)
	assert.Equal(t, "ABC123", d.UDID)
	assert.Equal(t, "", d.DeviceName)
}

func TestService_Reconcile_MalformedBodyDoesNotTouchStore(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc := NewService(repo, nil)

	_, err := svc.Reconcile(context.Background(), "no plist in here")

	assert.ErrorIs(t, err, apperrors.ErrInvalidPayload)
	assert.Equal(t, 0, repo.upserts)
}

func TestService_Reconcile_ParseFailureDoesNotTouchStore(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc := NewService(repo, nil)

	_, err := svc.Reconcile(context.Background(), `<?xml version="1.0"?><plist><dict><key>UDID</dict></plist>`)

	assert.ErrorIs(t, err, apperrors.ErrParseFailure)
	assert.Equal(t, 0, repo.upserts)
}
