package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"

	"lastbite/internal/pkg/errs"
)

const pngSize = 256

// Encoder renders a reservation code into a scannable image. The encoding is
// deterministic for a given code string.
type Encoder interface {
	EncodePNGBase64(code string) (string, error)
}

type QREncoder struct{}

func NewEncoder() Encoder {
	return &QREncoder{}
}

func (e *QREncoder) EncodePNGBase64(code string) (string, error) {
	png, err := qrcode.Encode(code, qrcode.Medium, pngSize)
	if err != nil {
		return "", errs.Wrap(err, "failed to encode qr code")
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
