package qrcode

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"brewhouse/config"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
)

const orderPickupType = "order_pickup"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData is the payload encoded in a pickup code.
type QRCodeData struct {
	OrderID string `json:"order_id"`
	Type    string `json:"type"`
}

// New builds the service from configuration.
func New(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(256, "M")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = 256
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateOrderQR renders the pickup code shown at the counter or drive-thru window.
func (s *qrcodeService) GenerateOrderQR(orderID uuid.UUID) ([]byte, error) {
	jsonData, err := json.Marshal(QRCodeData{
		OrderID: orderID.String(),
		Type:    orderPickupType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseOrderQR parses scanned QR data and returns the order ID
func (s *qrcodeService) ParseOrderQR(qrData string) (uuid.UUID, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != orderPickupType {
		return uuid.Nil, errors.Errorf("invalid QR code type: %s", data.Type)
	}

	orderID, err := uuid.Parse(data.OrderID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse order ID")
	}

	return orderID, nil
}
