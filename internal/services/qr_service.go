package services

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateUserQRCode renders the user's id as a QR code PNG and returns
// it as a data URL, ready for an <img> tag.
func GenerateUserQRCode(userID uuid.UUID) (string, error) {
	if _, err := FindUserByID(userID); err != nil {
		return "", err
	}

	png, err := qrcode.Encode(userID.String(), qrcode.Low, 256)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}
