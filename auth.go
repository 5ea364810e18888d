package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Lock is the optional single-user passphrase gate. When no passphrase is
// configured every request passes; otherwise clients exchange the passphrase
// at /unlock for a short-lived bearer token.
type Lock struct {
	hash   []byte // bcrypt hash of the passphrase, nil when disabled
	secret []byte
}

// NewLock prepares the gate. APP_PASSPHRASE may hold either a bcrypt hash
// (recognized by its $2 prefix) or the plain passphrase, which is hashed at
// startup so the raw value never sticks around.
func NewLock(passphrase, jwtSecret string) (*Lock, error) {
	l := &Lock{secret: []byte(jwtSecret)}
	if passphrase == "" {
		return l, nil
	}
	if strings.HasPrefix(passphrase, "$2") {
		l.hash = []byte(passphrase)
		return l, nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash passphrase: %w", err)
	}
	l.hash = h
	return l, nil
}

func (l *Lock) Enabled() bool { return l.hash != nil }

// Unlock verifies the passphrase and mints a 24h HS256 token.
func (l *Lock) Unlock(passphrase string) (string, error) {
	if !l.Enabled() {
		return "", fmt.Errorf("lock is not enabled")
	}
	if err := bcrypt.CompareHashAndPassword(l.hash, []byte(passphrase)); err != nil {
		return "", fmt.Errorf("invalid passphrase")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "owner",
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(l.secret)
}

// Middleware guards a route group. A no-op when the lock is disabled.
func (l *Lock) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Enabled() {
			c.Next()
			return
		}
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		token, err := jwt.Parse(authHeader[7:], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return l.secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		c.Next()
	}
}
