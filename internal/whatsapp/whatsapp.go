// Package whatsapp builds wa.me deep links. Contact between buyers and
// sellers happens entirely over WhatsApp; these links are the conversion
// mechanism for the whole market.
package whatsapp

import (
	"net/url"
	"strings"
)

// CountryPrefix is prepended to local-format numbers. The market is in
// Kampala; every participant is on a Ugandan number.
const CountryPrefix = "256"

// BuildLink returns a wa.me deep link for the given phone number with an
// optional pre-filled message. The number is reduced to digits; a leading
// local-format zero is replaced by the country prefix, and a bare local
// number gets the prefix prepended. Callers should pass internationally
// formatted numbers to avoid ambiguity.
func BuildLink(phoneNumber, message string) string {
	link := "https://wa.me/" + NormalizeNumber(phoneNumber)
	if message != "" {
		link += "?text=" + escapeText(message)
	}
	return link
}

// escapeText percent-encodes the pre-filled message. QueryEscape writes
// spaces as "+"; links shared outside a browser context need "%20".
func escapeText(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// NormalizeNumber strips every non-digit character and ensures the country
// prefix is present.
func NormalizeNumber(phoneNumber string) string {
	var digits strings.Builder
	for _, r := range phoneNumber {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	clean := digits.String()
	switch {
	case strings.HasPrefix(clean, "0"):
		return CountryPrefix + clean[1:]
	case strings.HasPrefix(clean, CountryPrefix):
		return clean
	default:
		return CountryPrefix + clean
	}
}

// BuildResponseMessage composes the pre-filled text for contacting a
// responder about a part.
func BuildResponseMessage(partName, carModel, responderName string) string {
	var b strings.Builder
	b.WriteString("Hi")
	if responderName != "" {
		b.WriteString(" ")
		b.WriteString(responderName)
	}
	b.WriteString(", I saw your response on Kisekka Online about *")
	b.WriteString(partName)
	b.WriteString("*")
	if carModel != "" {
		b.WriteString(" for ")
		b.WriteString(carModel)
	}
	b.WriteString(". Is it still available?")
	return b.String()
}

// BuildShopContactMessage composes the pre-filled text for contacting a shop
// directly.
func BuildShopContactMessage(shopName string) string {
	return "Hi, I found your shop *" + shopName + "* on Kisekka Online. I'm looking for a part."
}
