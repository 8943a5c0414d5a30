// Package i18n holds the user-facing message catalog. The desktop UI ships
// Bulgarian first with an English fallback, and notification texts are
// persisted in the operator's locale.
package i18n

import "fmt"

const fallbackLocale = "bg"

var locale = fallbackLocale

var catalogs = map[string]map[string]string{
	"bg": {
		"notification.trainings_depleted": "Изчерпани тренировки за %s %s",
		"notification.membership_expired": "Изтекло членство за %s %s",
		"email.digest_subject":            "Изтичащи членства",
	},
	"en": {
		"notification.trainings_depleted": "No trainings remaining for %s %s",
		"notification.membership_expired": "Expired membership for %s %s",
		"email.digest_subject":            "Expiring memberships",
	},
}

// SetLocale switches the active catalog. Unknown locales are ignored.
func SetLocale(l string) {
	if _, ok := catalogs[l]; ok {
		locale = l
	}
}

// Locale returns the active locale.
func Locale() string {
	return locale
}

// T resolves a message key in the active locale, falling back to Bulgarian
// and finally to the key itself.
func T(key string, args ...interface{}) string {
	msg, ok := catalogs[locale][key]
	if !ok {
		msg, ok = catalogs[fallbackLocale][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
