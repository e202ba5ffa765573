package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	c := Cursor{
		ReconciliationDate: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		CreatedAt:          time.Date(2024, 3, 1, 14, 30, 45, 123456789, time.UTC),
		EntryID:            "5f1c9d3a-2b7e-4c11-9a55-0d8e2f3b7c10",
	}

	token := EncodeToken(c)
	assert.NotEmpty(t, token)

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, c.ReconciliationDate.Equal(decoded.ReconciliationDate))
	assert.True(t, c.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, c.EntryID, decoded.EntryID)
}

func TestEncodeToken_NormalisesToUTC(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	c := Cursor{
		ReconciliationDate: time.Date(2024, 1, 31, 7, 0, 0, 0, wib),
		CreatedAt:          time.Date(2024, 1, 31, 7, 0, 0, 0, wib),
		EntryID:            "a",
	}
	decoded, err := DecodeToken(EncodeToken(c))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, decoded.ReconciliationDate.Location())
	assert.True(t, c.ReconciliationDate.Equal(decoded.ReconciliationDate))
}

func TestDecodeToken_Invalid(t *testing.T) {
	cases := map[string]string{
		"not base64":  "%%%",
		"two parts":   base64.URLEncoding.EncodeToString([]byte("2024-01-01T00:00:00Z|2024-01-01T00:00:00Z")),
		"empty id":    base64.URLEncoding.EncodeToString([]byte("2024-01-01T00:00:00Z|2024-01-01T00:00:00Z|")),
		"bad date":    base64.URLEncoding.EncodeToString([]byte("yesterday|2024-01-01T00:00:00Z|x")),
		"bad created": base64.URLEncoding.EncodeToString([]byte("2024-01-01T00:00:00Z|later|x")),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeToken(token)
			assert.Error(t, err)
		})
	}
}
