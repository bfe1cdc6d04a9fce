// Package model defines the core domain types shared across the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// TransactionKind classifies what kind of money movement a message described.
type TransactionKind string

const (
	// KindSend represents a peer-to-peer transfer out of the account.
	KindSend TransactionKind = "send"
	// KindReceive represents money received into the account.
	KindReceive TransactionKind = "receive"
	// KindPayBill represents a bill payment to a business.
	KindPayBill TransactionKind = "paybill"
	// KindBuyGoods represents a till / buy-goods purchase.
	KindBuyGoods TransactionKind = "buygoods"
	// KindWithdraw represents a cash withdrawal through an agent.
	KindWithdraw TransactionKind = "withdraw"
	// KindOther represents a confirmed message whose shape we could not classify.
	KindOther TransactionKind = "other"
)

// ValidKinds lists every recognized transaction kind.
var ValidKinds = []TransactionKind{
	KindSend, KindReceive, KindPayBill, KindBuyGoods, KindWithdraw, KindOther,
}

// IsValid reports whether the kind is part of the closed enumeration.
func (k TransactionKind) IsValid() bool {
	for _, v := range ValidKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Transaction represents a single money-movement event extracted from a
// vendor confirmation message. Records are immutable once produced; the
// original message text is retained verbatim for audit and re-parsing.
type Transaction struct {
	Date         time.Time
	ID           string // Vendor confirmation code, e.g. "RKL4X8M2QP"
	Counterparty string
	SourceText   string
	Hash         string
	CategoryID   string // Assigned by the caller, empty until categorized
	Kind         TransactionKind
	Amount       float64
	Fee          float64
	BalanceAfter float64
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%.2f",
		t.ID,
		t.Date.Format("2006-01-02"),
		t.Amount)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Validate ensures the transaction satisfies the record invariants.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if strings.TrimSpace(t.SourceText) == "" {
		return fmt.Errorf("source text is required")
	}
	if !t.Kind.IsValid() {
		return fmt.Errorf("invalid transaction kind: %s", t.Kind)
	}
	if t.Amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %f", t.Amount)
	}
	if t.Fee < 0 {
		return fmt.Errorf("fee must be non-negative, got %f", t.Fee)
	}
	if t.BalanceAfter < 0 {
		return fmt.Errorf("balance must be non-negative, got %f", t.BalanceAfter)
	}
	return nil
}

// IsOutflow reports whether the transaction moved money out of the account.
// Every kind except receive counts as spend for analytics purposes.
func (t *Transaction) IsOutflow() bool {
	return t.Kind != KindReceive
}
