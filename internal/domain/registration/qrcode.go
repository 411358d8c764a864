package registration

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// QRCodePrefix はQRコードの接頭辞
	QRCodePrefix = "REG-"
	// QRCodeMaxAttempts は一意なコードを探す最大試行回数
	QRCodeMaxAttempts = 10

	qrCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	qrCodeLength   = 12
)

// QRCodeGenerator はQRコード文字列を生成する関数
type QRCodeGenerator func() (string, error)

// GenerateQRCode は "REG-" と12文字の英大文字・数字からなるコードを生成する
func GenerateQRCode() (string, error) {
	buf := make([]byte, qrCodeLength)
	base := big.NewInt(int64(len(qrCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("乱数生成に失敗: %w", err)
		}
		buf[i] = qrCodeAlphabet[n.Int64()]
	}
	return QRCodePrefix + string(buf), nil
}
