package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256
// under a single server-side key.
type HMACSignatureService struct {
	key []byte
}

// NewHMACSignatureService creates a signer keyed by secret.
func NewHMACSignatureService(secret string) *HMACSignatureService {
	return &HMACSignatureService{key: []byte(secret)}
}

// Sign computes HMAC-SHA256 of payload.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureService) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks signature against payload in constant time.
func (s *HMACSignatureService) Verify(payload string, signature string) bool {
	expected := s.Sign(payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
