package codes

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strconv"
)

const (
	resetCodeMin          = 1000
	resetCodeMax          = 9999
	verificationCodeBytes = 3
)

// Generator produces one-time codes for the reset and registration flows.
type Generator struct{}

// New creates a new Generator.
func New() *Generator {
	return &Generator{}
}

// GenerateResetCode returns a 4-digit code uniformly sampled from 1000..9999.
func (g *Generator) GenerateResetCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(resetCodeMax-resetCodeMin+1))
	if err != nil {
		panic("codes: entropy source failed: " + err.Error())
	}
	return strconv.FormatInt(n.Int64()+resetCodeMin, 10)
}

// GenerateVerificationCode returns 3 random bytes as 6 lowercase hex chars.
func (g *Generator) GenerateVerificationCode() string {
	b := make([]byte, verificationCodeBytes)
	if _, err := rand.Read(b); err != nil {
		panic("codes: entropy source failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
