package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	googleuuid "github.com/google/uuid"
)

// messageNamespace scopes name-based ids derived from SMS messages.
var messageNamespace = googleuuid.MustParse("6f1c1a52-9b5e-4d7a-8a43-2f0e5c3b9d11")

// New generates a new UUIDv7 based on the current timestamp.
// UUIDv7 is time-ordered and suitable for use as database primary keys.
//
// Format (RFC 9562):
// - 48 bits: Unix timestamp in milliseconds
// - 4 bits: version (0111 = 7)
// - 12 bits: random data
// - 2 bits: variant (10)
// - 62 bits: random data
func New() string {
	var uuid [16]byte

	timestamp := uint64(time.Now().UnixMilli())
	binary.BigEndian.PutUint64(uuid[0:8], timestamp<<16)

	if _, err := rand.Read(uuid[6:]); err != nil {
		return googleuuid.New().String()
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return formatUUID(uuid)
}

// FromMessage derives a stable name-based (SHA-1, version 5) id for an SMS
// held by owner. The same owner, sender, body and timestamp always produce
// the same id; two accounts ingesting one message get distinct ids.
func FromMessage(owner, sender, body string, at time.Time) string {
	name := owner + "\x00" + sender + "\x00" + strconv.FormatInt(at.UnixMilli(), 10) + "\x00" + body
	return googleuuid.NewSHA1(messageNamespace, []byte(name)).String()
}

// formatUUID formats a 16-byte array as a UUID string
func formatUUID(uuid [16]byte) string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(uuid[0:4]),
		binary.BigEndian.Uint16(uuid[4:6]),
		binary.BigEndian.Uint16(uuid[6:8]),
		binary.BigEndian.Uint16(uuid[8:10]),
		uuid[10:16],
	)
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
