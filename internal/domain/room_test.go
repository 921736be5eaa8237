package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	testCases := []struct {
		name       string
		alphabet   string
		length     int
		wantLen    int
		wantInside string
	}{
		{
			name:       "defaults",
			alphabet:   "",
			length:     0,
			wantLen:    DefaultCodeLength,
			wantInside: DefaultCodeAlphabet,
		},
		{
			name:       "custom alphabet and length",
			alphabet:   "AB",
			length:     8,
			wantLen:    8,
			wantInside: "AB",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				code, err := GenerateCode(tc.alphabet, tc.length)
				require.NoError(t, err)
				assert.Len(t, code, tc.wantLen)

				for _, c := range code {
					assert.True(t, strings.ContainsRune(tc.wantInside, c),
						"code %q contains %q outside alphabet %q", code, c, tc.wantInside)
				}
			}
		})
	}
}

func TestDefaultAlphabetExcludesConfusables(t *testing.T) {
	for _, c := range "0O1IL" {
		assert.False(t, strings.ContainsRune(DefaultCodeAlphabet, c),
			"alphabet must not contain %q", c)
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABCD", NormalizeCode("abcd"))
	assert.Equal(t, "ABCD", NormalizeCode("  AbCd\n"))
	assert.Equal(t, "WK4T", NormalizeCode("wk4t "))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestRoomAnswered(t *testing.T) {
	room := Room{Code: "WK4T", Offer: "offer"}
	assert.False(t, room.Answered())

	room.Answer = "answer"
	assert.True(t, room.Answered())
}

func TestRoomExpiresAt(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	room := Room{CreatedAt: created}

	assert.Equal(t, created.Add(5*time.Minute), room.ExpiresAt(5*time.Minute))
}
