package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded cursor token from the last row of a page. The
// cursor carries the entry ID alongside created_at so rows sharing a timestamp at a page
// boundary are not skipped: listing orders by (created_at, entry_id) DESC and resumes
// strictly after this pair.
func EncodeToken(createdAt time.Time, entryID string) string {
	raw := createdAt.Format(timeFormat) + "|" + entryID
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeToken parses a base64 encoded cursor token back into its creation time and
// entry ID pair.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	timePart, entryID, ok := strings.Cut(string(decodedBytes), "|")
	if !ok {
		return time.Time{}, "", errors.New("invalid pagination token format (missing separator)")
	}

	createdAt, err := time.Parse(timeFormat, timePart)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (time parse): %w", err)
	}

	return createdAt, entryID, nil
}
