package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const inviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InviteCodeLength is the length of classroom invite codes
const InviteCodeLength = 8

// GenerateAccountNumber generates a bank account number with the specified prefix and length
func GenerateAccountNumber(prefix string, length int) (string, error) {
	if length <= len(prefix) || length > 20 {
		return "", fmt.Errorf("invalid account number length: %d", length)
	}

	// Generate random digits
	digits := make([]byte, length-len(prefix))
	if _, err := rand.Read(digits); err != nil {
		return "", fmt.Errorf("failed to generate random digits: %w", err)
	}

	var builder strings.Builder
	builder.WriteString(prefix)
	for _, b := range digits {
		builder.WriteByte(b%10 + '0')
	}
	return builder.String(), nil
}

// GenerateInviteCode generates an upper-case alphanumeric classroom invite code
func GenerateInviteCode() (string, error) {
	buf := make([]byte, InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}
