// internal/domain/payment/phone.go
package payment

import (
	"strings"

	"github.com/your-org/pos-backend/internal/config"
)

// CountryProfile describes how raw phone input is normalized to the
// canonical international format for the configured region
type CountryProfile struct {
	CountryCode      string // e.g. "+254"
	LocalPrefix      string // leading digit(s) replaced by the country code, e.g. "0"
	SubscriberDigits int    // digits after the country code
}

// ProfileFromConfig builds the country profile from app configuration
func ProfileFromConfig(cfg *config.Config) CountryProfile {
	return CountryProfile{
		CountryCode:      cfg.MobileMoney.CountryCode,
		LocalPrefix:      cfg.MobileMoney.LocalPrefix,
		SubscriberDigits: cfg.MobileMoney.SubscriberDigits,
	}
}

// Normalize converts raw input like "0712 345 678" to "+254712345678".
// Accepted inputs: local form with the configured prefix, international
// form with the country code (with or without "+"), or bare subscriber
// digits.
func (p CountryProfile) Normalize(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, raw)

	if cleaned == "" {
		return "", &PhoneFormatError{Raw: raw, Reason: "empty number"}
	}

	var subscriber string
	switch {
	case strings.HasPrefix(cleaned, p.CountryCode):
		subscriber = cleaned[len(p.CountryCode):]
	case strings.HasPrefix(cleaned, strings.TrimPrefix(p.CountryCode, "+")):
		subscriber = cleaned[len(p.CountryCode)-1:]
	case p.LocalPrefix != "" && strings.HasPrefix(cleaned, p.LocalPrefix):
		subscriber = cleaned[len(p.LocalPrefix):]
	default:
		subscriber = cleaned
	}

	if len(subscriber) != p.SubscriberDigits {
		return "", &PhoneFormatError{Raw: raw, Reason: "wrong number of digits"}
	}
	for _, r := range subscriber {
		if r < '0' || r > '9' {
			return "", &PhoneFormatError{Raw: raw, Reason: "non-digit characters"}
		}
	}

	return p.CountryCode + subscriber, nil
}
