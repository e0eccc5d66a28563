package validators

import (
	"net/mail"
	"strings"
)

// IsValidEmail checks address syntax only. Validation has to be deterministic
// and offline; deliverability is the mail provider's problem.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}

	// reject "Name <a@b>" forms, we want the bare address
	if addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
