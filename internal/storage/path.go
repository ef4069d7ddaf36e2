package storage

import (
	"fmt"
	"strings"
	"time"
)

// GeneratePath builds the storage key for one upload:
// {folder}/{userID}/{millisecondTimestamp}_{sanitizedFilename}.
// The timestamp makes two uploads of the same filename by the same user
// distinct as long as they happen at different milliseconds. Paths are never
// reused for different content; uploaded objects are treated as immutable.
func GeneratePath(folder, userID, filename string) string {
	return fmt.Sprintf("%s/%s/%d_%s", folder, userID, time.Now().UnixMilli(), SanitizeFilename(filename))
}

// SanitizeFilename maps every character outside [A-Za-z0-9.] to an
// underscore so a key is safe in URLs and bucket listings.
func SanitizeFilename(name string) string {
	if name == "" {
		return "file"
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
