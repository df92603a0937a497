package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"reviewhub/internal/model"
)

// confirmationCodeLength is the number of hex characters sent to the user.
const confirmationCodeLength = 32

// ConfirmationService derives single-use style confirmation codes from
// user state. Codes are never stored: a code is valid exactly while the
// user's confirmation state stays unchanged, and rotating the state
// invalidates everything issued before.
type ConfirmationService struct {
	secret []byte
}

// NewConfirmationService creates a confirmation code service with the given secret.
func NewConfirmationService(secret string) *ConfirmationService {
	return &ConfirmationService{secret: []byte(secret)}
}

// Code computes the confirmation code bound to the user's current state.
func (s *ConfirmationService) Code(user *model.User) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%d:%s", user.ID, user.ConfirmationState)
	return hex.EncodeToString(mac.Sum(nil))[:confirmationCodeLength]
}

// Check reports whether code matches the user's current state.
func (s *ConfirmationService) Check(user *model.User, code string) bool {
	expected := s.Code(user)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1
}

// NewConfirmationState returns a fresh state value for code rotation.
func NewConfirmationState() string {
	return uuid.NewString()
}
