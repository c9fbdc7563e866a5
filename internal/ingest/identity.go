package ingest

import (
	"strings"
	"unicode/utf8"
)

// DefaultPlaceholderDomain is used for generated email addresses when no domain is configured.
const DefaultPlaceholderDomain = "example.com"

// Identity is a candidate's contact details. Blank fields are absent.
type Identity struct {
	Name  string
	Email string
	Phone string
}

// MergeIdentity combines details extracted from a CV with those submitted
// alongside it. An extracted name wins only when it is longer than two
// characters. Email falls back to a placeholder built from the merged name.
func MergeIdentity(extracted, submitted Identity, placeholderDomain string) Identity {
	var merged Identity

	if name := strings.TrimSpace(extracted.Name); utf8.RuneCountInString(name) > 2 {
		merged.Name = name
	} else {
		merged.Name = strings.TrimSpace(submitted.Name)
	}

	merged.Email = firstPresent(extracted.Email, submitted.Email)
	if merged.Email == "" {
		merged.Email = PlaceholderEmail(merged.Name, placeholderDomain)
	}

	merged.Phone = firstPresent(extracted.Phone, submitted.Phone)

	return merged
}

// PlaceholderEmail lower-cases name and joins its words with dots.
func PlaceholderEmail(name, domain string) string {
	if domain = strings.TrimSpace(domain); domain == "" {
		domain = DefaultPlaceholderDomain
	}

	local := strings.Join(strings.Fields(strings.ToLower(name)), ".")
	if local == "" {
		local = "candidate"
	}
	return local + "@" + domain
}

func firstPresent(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
