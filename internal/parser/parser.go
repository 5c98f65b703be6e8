// Package parser extracts transaction candidates from bank and UPI
// notification messages.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"golang.org/x/text/unicode/norm"
)

// UnknownMerchant is used when no merchant can be found in a message.
const UnknownMerchant = "Unknown"

const maxMerchantLength = 64

var (
	ErrEmptyMessage   = errors.New("the message must not be empty")
	ErrMessageTooLong = errors.New("the message is too long")
)

// ParseError is returned when no usable amount can be found in a message.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse message: %s", e.Reason)
}

// Candidate is a transaction extracted from a message that has not been
// categorized or stored yet.
type Candidate struct {
	Amount        decimal.Decimal   `json:"amount"`
	Merchant      string            `json:"merchant"`
	Date          time.Time         `json:"date"`
	DateFound     bool              `json:"date_found"`
	AccountSuffix string            `json:"account_suffix,omitempty"`
	PaymentMode   types.PaymentMode `json:"payment_mode"`
	Bank          string            `json:"bank,omitempty"`
}

// Parser parses notification messages. Dates without a time zone are
// interpreted in Location.
type Parser struct {
	Location *time.Location
	Now      func() time.Time
}

// New returns a Parser for the given location.
func New(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}

	return &Parser{
		Location: loc,
		Now:      time.Now,
	}
}

// Validate checks raw input before it is parsed.
func Validate(text string, maxLength int) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	if maxLength > 0 && utf8.RuneCountInString(text) > maxLength {
		return fmt.Errorf("%w, the maximum length is %d characters", ErrMessageTooLong, maxLength)
	}

	return nil
}

// Parse extracts a Candidate from text.
//
// Only the amount is mandatory. All other fields fall back to defaults.
func (p *Parser) Parse(text string) (Candidate, error) {
	normalized := normalize(text)
	now := p.Now().In(p.Location)

	amount, err := findAmount(normalized)
	if err != nil {
		return Candidate{}, err
	}

	c := Candidate{
		Amount:        amount,
		Merchant:      findMerchant(normalized),
		AccountSuffix: findAccountSuffix(normalized),
		PaymentMode:   findPaymentMode(normalized),
		Bank:          findBank(normalized),
	}

	c.Date, c.DateFound = findDate(normalized, now)
	if !c.DateFound {
		c.Date = now
	}

	return c, nil
}

// normalize applies NFKC so that full width digits and compatibility
// characters match the ASCII patterns, and collapses whitespace.
func normalize(text string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(text)), " ")
}

var (
	currencyAmount = regexp.MustCompile(`(?i)(?:₹|\binr\.?|\brs\.?)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	verbAmount     = regexp.MustCompile(`(?i)\b(?:debited|spent|paid|charged|withdrawn|deducted|credited)\b(?:\s+(?:by|of|for|with|amount))?\s*[:\-]?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	balanceContext = regexp.MustCompile(`(?i)(?:bal|balance|limit)\W*$`)
)

func findAmount(text string) (decimal.Decimal, error) {
	reason := "no amount found"

	for _, pattern := range []*regexp.Regexp{currencyAmount, verbAmount} {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			// Skip balances such as "Avail Bal: ₹18,450"
			prefix := text[max(0, loc[0]-16):loc[0]]
			if balanceContext.MatchString(prefix) {
				continue
			}

			amount, err := decimal.NewFromString(strings.ReplaceAll(text[loc[2]:loc[3]], ",", ""))
			if err != nil {
				reason = fmt.Sprintf("%q is not a valid amount", text[loc[2]:loc[3]])
				continue
			}

			if !amount.IsPositive() {
				reason = "the amount must be greater than zero"
				continue
			}

			return amount, nil
		}
	}

	return decimal.Zero, &ParseError{Reason: reason}
}

var (
	vpaMerchant  = regexp.MustCompile(`(?i)\b(?:to|at)\s+vpa\s+([a-z0-9._\-]+)@[a-z0-9.\-]+`)
	nameMerchant = regexp.MustCompile(`(?i)\b(?:to|at|for|towards)\s+([A-Za-z][A-Za-z0-9&'._\- ]*?)(?:\s+(?:on|via|ref|using|from|with|upi|avl|avail|info|txn|by|dated|is|has)\b|\s*[,;:(]|\.(?:\s|$)|\s+-|\s*$)`)
	notMerchant  = regexp.MustCompile(`(?i)^(?:your|you|a/?c|ac|acct|account|card|rs|inr|the)\b`)
)

func findMerchant(text string) string {
	if m := vpaMerchant.FindStringSubmatch(text); m != nil {
		return cleanMerchant(m[1])
	}

	for _, m := range nameMerchant.FindAllStringSubmatch(text, -1) {
		name := cleanMerchant(m[1])
		if name == "" || notMerchant.MatchString(name) {
			continue
		}

		return name
	}

	return UnknownMerchant
}

func cleanMerchant(s string) string {
	s = strings.Trim(strings.TrimSpace(s), ".-_'")
	if utf8.RuneCountInString(s) > maxMerchantLength {
		s = string([]rune(s)[:maxMerchantLength])
	}
	return strings.TrimSpace(s)
}

var accountSuffix = regexp.MustCompile(`(?i)\b(?:a/c|ac|acct|account|card)(?:\s*no\.?)?\s*(?:ending\s*(?:with|in)?\s*)?[x*]+\s*(\d{3,6})\b`)

func findAccountSuffix(text string) string {
	if m := accountSuffix.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

var paymentModes = []struct {
	mode    types.PaymentMode
	pattern *regexp.Regexp
}{
	{types.PaymentModeUPI, regexp.MustCompile(`(?i)\bupi\b|\bvpa\b|[a-z0-9._\-]+@[a-z]{2,}\b`)},
	{types.PaymentModeCard, regexp.MustCompile(`(?i)\b(?:card|pos)\b`)},
	{types.PaymentModeNetbanking, regexp.MustCompile(`(?i)\b(?:neft|imps|rtgs|net ?banking|internet banking)\b`)},
	{types.PaymentModeCash, regexp.MustCompile(`(?i)\b(?:atm|cash)\b|\bwithdrawn\b`)},
}

func findPaymentMode(text string) types.PaymentMode {
	for _, p := range paymentModes {
		if p.pattern.MatchString(text) {
			return p.mode
		}
	}
	return types.PaymentModeUnknown
}

var bankTag = regexp.MustCompile(`(?:^|\s)-\s*([A-Za-z][A-Za-z ]{1,30}?)\s*\.?$`)

func findBank(text string) string {
	if m := bankTag.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
