package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// TokenScheme is the literal prefix carried in the Authorization header.
// The trailing space is part of the scheme.
const TokenScheme = "Nexodus "

const tokenBytes = 32

// TokenService issues and parses opaque bearer tokens. Tokens are random
// high-entropy values stored on the user record and replaced wholesale at
// each login, which invalidates the previous one.
type TokenService struct{}

// NewTokenService creates a new token service
func NewTokenService() *TokenService {
	return &TokenService{}
}

// Issue generates a fresh unguessable token.
func (s *TokenService) Issue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ParseHeader extracts the token from an Authorization header value. The
// "Nexodus " prefix is matched case-sensitively; a missing prefix, an empty
// header, or an empty remainder all fail the parse.
func (s *TokenService) ParseHeader(header string) (string, bool) {
	if !strings.HasPrefix(header, TokenScheme) {
		return "", false
	}
	token := header[len(TokenScheme):]
	if token == "" {
		return "", false
	}
	return token, true
}
