package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewHash returns an opaque URL-safe public identifier: a base36 timestamp
// followed by eight random hex characters.
func NewHash() string {
	ts := strconv.FormatInt(time.Now().UnixNano(), 36)
	r := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ts + r[:8]
}
