package settlement

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildUPILink encodes a payee handle, display name and amount into a UPI
// payment deep-link:
//
//	upi://pay?pa=<handle>&pn=<name>&am=<amount>&cu=INR
//
// Handle and name are percent-encoded; the amount is formatted to exactly
// two decimal places. Parameter order is fixed so the link is deterministic.
func BuildUPILink(handle, name string, amount float64) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=%s",
		escape(handle),
		escape(name),
		fmt.Sprintf("%.2f", amount),
		linkCurrency,
	)
}

// escape percent-encodes a query value. url.QueryEscape encodes spaces as
// "+", which UPI apps do not reliably decode, so spaces become %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
