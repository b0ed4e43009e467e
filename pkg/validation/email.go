package validation

import (
	"net/mail"
	"strings"
)

// IsEmail reports whether value is a bare local@domain address with a dotted
// domain. Display names and angle-bracket forms are rejected.
func IsEmail(value string) bool {
	if value == "" || strings.TrimSpace(value) != value {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" {
		return false
	}

	at := strings.LastIndex(value, "@")
	if at <= 0 || at == len(value)-1 {
		return false
	}
	domain := value[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}
