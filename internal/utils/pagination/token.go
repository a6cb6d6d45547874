package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// DefaultLimit is used when a caller asks for a page without a size.
const DefaultLimit = 20

// MaxLimit caps the page size a caller may request.
const MaxLimit = 100

// Cursor is the keyset position of the last row on a page. Listings are
// ordered newest first by (SortKey, CreatedAt, ID).
type Cursor struct {
	SortKey   time.Time
	CreatedAt time.Time
	ID        string
}

// EncodeCursor creates an opaque base64 token from a cursor.
func EncodeCursor(c Cursor) string {
	return EncodeMultiFieldToken(c.SortKey.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.ID)
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (Cursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	sortKey, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (sort key parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	if parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (missing id)")
	}
	return Cursor{SortKey: sortKey, CreatedAt: createdAt, ID: parts[2]}, nil
}

// Follows reports whether a row with the given keys sorts strictly after the
// cursor in newest-first order, i.e. belongs on the next page.
func (c Cursor) Follows(sortKey, createdAt time.Time, id string) bool {
	if !sortKey.Equal(c.SortKey) {
		return sortKey.Before(c.SortKey)
	}
	if !createdAt.Equal(c.CreatedAt) {
		return createdAt.Before(c.CreatedAt)
	}
	return id < c.ID
}

// NormalizeLimit clamps a requested page size into [1, MaxLimit].
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
