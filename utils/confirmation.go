package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GenerateConfirmationNumber builds a reservation confirmation number
// in the form RES-YYYYMMDD-XXXXX. Uniqueness is not guaranteed here;
// the caller retries against the unique index until it holds.
func GenerateConfirmationNumber(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("failed to generate confirmation number: %w", err)
	}
	return fmt.Sprintf("RES-%s-%05d", now.Format("20060102"), n.Int64()), nil
}
