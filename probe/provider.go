package probe

import "strings"

// UnknownProvider is returned when no label matches the exchange host.
const UnknownProvider = "Custom/Unknown"

// ProviderFor maps an MX exchange hostname to a human-readable mailbox
// provider label via ordered substring checks; first match wins.
//
// The "sg" (SendGrid) and "pm" (ProtonMail) tokens are short enough to
// false-positive on unrelated hostnames. That weakness is inherited
// from the matching table this is modeled on and kept deliberately;
// callers should treat the label as advisory.
func ProviderFor(exchange string) string {
	host := strings.ToLower(exchange)

	switch {
	case containsAny(host, "google", "gmail"):
		return "Google Workspace"
	case containsAny(host, "outlook", "office365", "microsoft"):
		return "Microsoft 365"
	case strings.Contains(host, "zoho"):
		return "Zoho Mail"
	case strings.Contains(host, "yahoo"):
		return "Yahoo Mail"
	case containsAny(host, "amazonaws", "amazon"):
		return "Amazon SES"
	case containsAny(host, "sendgrid", "sg"):
		return "SendGrid"
	case containsAny(host, "mailchimp", "mandrill"):
		return "Mailchimp/Mandrill"
	case strings.Contains(host, "mx") && strings.Contains(host, "cloudflare"):
		return "Cloudflare Email Routing"
	case containsAny(host, "protonmail", "pm"):
		return "ProtonMail"
	}
	return UnknownProvider
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
