package verify

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const codeDigits = 6

// GenerateCode 生成6位数字验证码（含前导零）
func GenerateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}

// NewHandle 为待验证注册签发不透明句柄，替代可猜测的会话键
func NewHandle() string {
	return uuid.NewString()
}
