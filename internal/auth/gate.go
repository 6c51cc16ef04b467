// Package auth holds the shared-secret gate in front of the result files.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrGateRejected is returned when the gate password does not match.
var ErrGateRejected = errors.New("invalid password")

// Gate checks the viewer password. A bcrypt hash, when configured, is used
// instead of the plain secret.
type Gate struct {
	secret []byte
	hash   []byte
}

func NewGate(secret, bcryptHash string) *Gate {
	g := &Gate{secret: []byte(secret)}
	if h := strings.TrimSpace(bcryptHash); h != "" {
		g.hash = []byte(h)
	}
	return g
}

// Check returns nil when password opens the gate.
func (g *Gate) Check(password string) error {
	if g.hash != nil {
		if bcrypt.CompareHashAndPassword(g.hash, []byte(password)) != nil {
			return ErrGateRejected
		}
		return nil
	}
	if len(g.secret) == 0 || subtle.ConstantTimeCompare(g.secret, []byte(password)) != 1 {
		return ErrGateRejected
	}
	return nil
}
