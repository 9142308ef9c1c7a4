package booking

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	codePrefix    = "BK"
	codeSuffixLen = 5
	base36        = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// maxCodeAttempts bounds retries when a generated code collides.
	maxCodeAttempts = 3
)

// newBookingCode returns "BK" + unix millis + 5 random base36 characters.
func newBookingCode(now time.Time) string {
	var b strings.Builder
	b.WriteString(codePrefix)
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	for i := 0; i < codeSuffixLen; i++ {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return b.String()
}
