package utils

import (
	"crypto/sha256"
	"fmt"
	"time"
)

const (
	OTPExpiration = 15 * time.Minute
	// MaxOTPAttempts is how many wrong guesses burn a code
	MaxOTPAttempts = 5
)

// GenerateOTP generates a 4-digit OTP based on the given unique key
// The unique key should be something that changes with each request
// like email + timestamp to ensure uniqueness
func GenerateOTP(uniqueKey string) string {
	h := sha256.New()
	h.Write([]byte(uniqueKey))
	hash := h.Sum(nil)

	num := uint32(hash[0])<<24 | uint32(hash[1])<<16 | uint32(hash[2])<<8 | uint32(hash[3])

	// 1000-9999
	otp := 1000 + (num % 9000)

	return fmt.Sprintf("%04d", otp)
}
