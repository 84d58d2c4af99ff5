package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewhouse/config"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
		{"Zero size falls back", 0, "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			require.NotNil(t, service)

			png, err := service.GenerateOrderQR(uuid.New())
			require.NoError(t, err)
			assert.Equal(t, pngMagic, png[:4])
		})
	}
}

func TestNew_FromConfig(t *testing.T) {
	service := New(&config.Config{QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "H"}})
	png, err := service.GenerateOrderQR(uuid.New())
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	service = New(&config.Config{})
	_, err = service.GenerateOrderQR(uuid.New())
	require.NoError(t, err)
}

func TestQRCodeService_ParseOrderQR(t *testing.T) {
	service := NewQRCodeService(256, "M")
	orderID := uuid.New()

	jsonData, err := json.Marshal(QRCodeData{OrderID: orderID.String(), Type: orderPickupType})
	require.NoError(t, err)

	parsedID, err := service.ParseOrderQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, orderID, parsedID)
}

func TestQRCodeService_ParseOrderQR_Errors(t *testing.T) {
	service := NewQRCodeService(256, "M")

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"invalid json", "invalid json", "failed to unmarshal QR code data"},
		{"wrong type", `{"order_id":"` + uuid.NewString() + `","type":"subscription"}`, "invalid QR code type"},
		{"bad uuid", `{"order_id":"not-a-uuid","type":"order_pickup"}`, "failed to parse order ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ParseOrderQR(tt.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
