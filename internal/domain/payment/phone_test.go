// internal/domain/payment/phone_test.go
package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kenyaProfile = CountryProfile{
	CountryCode:      "+254",
	LocalPrefix:      "0",
	SubscriberDigits: 9,
}

func TestNormalizeAcceptedForms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"local form", "0712345678"},
		{"local form with spaces", "0712 345 678"},
		{"international with plus", "+254712345678"},
		{"international without plus", "254712345678"},
		{"bare subscriber digits", "712345678"},
		{"dashes and parens", "(0712)-345-678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := kenyaProfile.Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "+254712345678", got)
		})
	}
}

func TestNormalizeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"only separators", " - "},
		{"too short", "071234567"},
		{"too long", "07123456789"},
		{"letters", "07123456ab"},
		{"wrong country code", "+255712345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := kenyaProfile.Normalize(tt.raw)
			var phoneErr *PhoneFormatError
			require.ErrorAs(t, err, &phoneErr)
		})
	}
}
