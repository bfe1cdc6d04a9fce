// Package mpesa parses M-PESA confirmation SMS texts into transaction records.
package mpesa

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mkamau/pesaflow/internal/model"
)

// ErrNotRecognized indicates the text does not carry the confirmation anchor
// and therefore is not a transaction message. This is the parser's only
// failure mode; every other missing field degrades to a documented default.
var ErrNotRecognized = errors.New("not a recognized transaction message")

var (
	// anchorRegex matches the leading confirmation code followed by the
	// vendor's "Confirmed" marker word.
	anchorRegex = regexp.MustCompile(`(?i)^\s*([A-Z0-9]+)\s+Confirmed`)

	// amountRegex matches a currency amount with optional thousands
	// separators and exactly two fraction digits.
	amountRegex = regexp.MustCompile(`(?i)Ksh([0-9][0-9,]*\.[0-9]{2})`)

	balanceRegex = regexp.MustCompile(`(?i)balance is Ksh([0-9][0-9,]*\.[0-9]{2})`)
	feeRegex     = regexp.MustCompile(`(?i)cost,\s*Ksh([0-9][0-9,]*\.[0-9]{2})`)

	// dateTimeRegex matches the vendor's "on D/M/Y at H:MM AM|PM" clause.
	// Day-first ordering follows the vendor's regional convention.
	dateTimeRegex = regexp.MustCompile(`(?i)\bon\s+(\d{1,2})/(\d{1,2})/(\d{2,4})\s+at\s+(\d{1,2}):(\d{2})\s*(AM|PM)`)
)

// kindRule classifies a message by the presence of a literal marker phrase
// and extracts the counterparty name with a rule specific to that kind.
type kindRule struct {
	nameRegex   *regexp.Regexp
	marker      string
	placeholder string
	kind        model.TransactionKind
}

// kindRules is evaluated in order; the first marker found wins and no later
// rule is consulted. Order matters: bill payments are checked before till
// purchases because both message shapes can mention goods.
var kindRules = []kindRule{
	{
		marker:      "paid to",
		kind:        model.KindPayBill,
		nameRegex:   regexp.MustCompile(`(?i)paid to\s+(.+?)\s+on\b`),
		placeholder: "Unknown Merchant",
	},
	{
		marker:      "sent to",
		kind:        model.KindSend,
		nameRegex:   regexp.MustCompile(`(?i)sent to\s+(.+?)\s+on\b`),
		placeholder: "Unknown Recipient",
	},
	{
		marker:      "received Ksh",
		kind:        model.KindReceive,
		nameRegex:   regexp.MustCompile(`(?i)from\s+(.+?)\s+on\b`),
		placeholder: "Unknown Sender",
	},
	{
		marker:      "Withdraw",
		kind:        model.KindWithdraw,
		nameRegex:   regexp.MustCompile(`(?i)from\s+(.+?)\s+(?:on|New)\b`),
		placeholder: "Agent",
	},
	{
		marker:      "Buy Goods",
		kind:        model.KindBuyGoods,
		nameRegex:   regexp.MustCompile(`(?i)Buy Goods(?:\s+from)?\s+(.+?)\s+on\b`),
		placeholder: "Merchant",
	},
}

// Parser extracts structured transaction records from raw message text.
type Parser struct{}

// NewParser creates a new message parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts a confirmation message into a transaction record. The
// current time is threaded explicitly and used only as the timestamp
// fallback when the message carries no date clause.
//
// Returns ErrNotRecognized when the confirmation anchor is absent. All other
// extraction failures degrade gracefully: a partially-parsed record with the
// original text retained is more useful to the caller than a rejection.
func (p *Parser) Parse(text string, now time.Time) (*model.Transaction, error) {
	anchor := anchorRegex.FindStringSubmatch(text)
	if anchor == nil {
		return nil, ErrNotRecognized
	}

	txn := &model.Transaction{
		ID:           anchor[1],
		SourceText:   text,
		Amount:       extractAmount(text),
		Fee:          extractClauseAmount(feeRegex, text),
		BalanceAfter: extractClauseAmount(balanceRegex, text),
		Date:         extractTimestamp(text, now),
	}
	txn.Kind, txn.Counterparty = classify(text)
	txn.Hash = txn.GenerateHash()

	return txn, nil
}

// extractAmount returns the first currency amount in the message, or 0. A
// zero amount does not invalidate the record; some vendor templates report
// the amount in a shape this parser does not recognize.
func extractAmount(text string) float64 {
	m := amountRegex.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return parseAmount(m[1])
}

// extractClauseAmount returns the amount introduced by a specific phrase
// (balance or transaction cost), or 0 when the clause is absent.
func extractClauseAmount(re *regexp.Regexp, text string) float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return parseAmount(m[1])
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// extractTimestamp parses the "on D/M/Y at H:MM AM|PM" clause. Missing date
// clause falls back to now; this is deliberate best effort, not an error.
func extractTimestamp(text string, now time.Time) time.Time {
	m := dateTimeRegex.FindStringSubmatch(text)
	if m == nil {
		return now
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	meridiem := strings.ToUpper(m[6])

	if year < 100 {
		year += 2000
	}
	switch {
	case meridiem == "AM" && hour == 12:
		hour = 0
	case meridiem == "PM" && hour < 12:
		hour += 12
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, now.Location())
}

// classify tests the kind markers in priority order and extracts the
// counterparty for the first one that matches. The name is the segment
// between the marker phrase and the following date anchor, trimmed of
// surrounding punctuation; the kind-specific placeholder substitutes when
// that extraction fails.
func classify(text string) (model.TransactionKind, string) {
	for _, rule := range kindRules {
		if !strings.Contains(text, rule.marker) {
			continue
		}
		if m := rule.nameRegex.FindStringSubmatch(text); m != nil {
			if name := strings.Trim(m[1], " ."); name != "" {
				return rule.kind, name
			}
		}
		return rule.kind, rule.placeholder
	}
	return model.KindOther, "Unknown"
}
