package web

import (
	"net/mail"
	"strings"
)

// normalizeLoginEmail trims the address and strips a display name. Returns
// an empty string when email is not an address.
func normalizeLoginEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return ""
	}
	return strings.ToLower(addr.Address)
}
