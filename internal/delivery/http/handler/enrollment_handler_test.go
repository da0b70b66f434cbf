package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"udid-retriever/internal/domain/device"
	"udid-retriever/internal/logger"
	"udid-retriever/internal/usecase/enrollment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Logger = zap.NewNop()
	m.Run()
}

type failingRepo struct {
	err error
}

func (f *failingRepo) GetByID(ctx context.Context, id uuid.UUID) (*device.Device, error) {
	return nil, f.err
}

func (f *failingRepo) GetByUDID(ctx context.Context, udid string) (*device.Device, error) {
	return nil, f.err
}

func (f *failingRepo) Upsert(ctx context.Context, d *device.Device) (*device.Device, error) {
	return nil, f.err
}

func (f *failingRepo) List(ctx context.Context, offset, limit int) ([]device.Device, int64, error) {
	return nil, 0, f.err
}

const validCallback = `<?xml version="1.0"?>
<plist version="1.0">
<dict>
	<key>UDID</key>
	<string>ABC123</string>
</dict>
</plist>`

func TestEnrollmentHandler_StoreFailure(t *testing.T) {
	repo := &failingRepo{err: errors.New("connection refused")}
	h := NewEnrollmentHandler(enrollment.NewService(repo, nil))

	router := gin.New()
	router.POST(CallbackPath, h.HandleCallback)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, CallbackPath, strings.NewReader(validCallback)))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestEnrollmentHandler_ParseFailureIsServerError(t *testing.T) {
	repo := &failingRepo{err: errors.New("should not be reached")}
	h := NewEnrollmentHandler(enrollment.NewService(repo, nil))

	router := gin.New()
	router.POST(CallbackPath, h.HandleCallback)

	body := `<?xml version="1.0"?><plist><dict><key>broken</dict></plist>`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, CallbackPath, strings.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
