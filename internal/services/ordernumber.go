package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const orderNumberAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateOrderNumber builds a human-readable, globally unique order number:
// ORD-<unix millis>-<9 random base-36 chars>. The random suffix makes
// collisions under concurrent submissions negligible.
func GenerateOrderNumber() string {
	suffix := make([]byte, 9)
	max := big.NewInt(int64(len(orderNumberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a time-derived character rather than panic.
			suffix[i] = orderNumberAlphabet[time.Now().UnixNano()%int64(len(orderNumberAlphabet))]
			continue
		}
		suffix[i] = orderNumberAlphabet[n.Int64()]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), strings.ToUpper(string(suffix)))
}
