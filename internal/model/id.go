package model

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID returns a 32-char hex id, the format the original records use.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
