package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func GenerateUUIDString() string {
	return uuid.New().String()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== TRANSACTION ID ====================

const txnRefChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTransactionID creates a unique id for a successful settlement attempt.
// Format: TXN-<unix millis>-<7 random chars>
func GenerateTransactionID() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))

	var ref strings.Builder
	for i := 0; i < 7; i++ {
		ref.WriteByte(txnRefChars[rand.Intn(len(txnRefChars))])
	}

	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), ref.String())
}

// GenerateFailedTransactionID creates a unique id for a failed settlement attempt.
// Format: TXN-FAIL-<unix millis>
func GenerateFailedTransactionID() string {
	return fmt.Sprintf("TXN-FAIL-%d", time.Now().UnixMilli())
}
