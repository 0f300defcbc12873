package smsparser

import (
	"strconv"
	"strings"
)

// ExtractOTP returns the first 4-8 digit code located by the OTP pattern
// list, or nil. When a message carries several codes, the pattern priority
// decides; there is no disambiguation beyond that.
func ExtractOTP(message string) *string {
	for _, p := range otpPatterns {
		m := p.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		code := m[1]
		if len(code) >= 4 && len(code) <= 8 {
			return &code
		}
	}
	return nil
}

// ExtractAmount returns the first amount-shaped substring that parses to a
// positive float, or nil. Thousands separators are stripped before parsing.
func ExtractAmount(message string) *float64 {
	for _, p := range amountPatterns {
		m := p.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err == nil && amount > 0 {
			return &amount
		}
	}
	return nil
}

// TransactionType classifies the message direction. Cashback is checked
// before debit/credit: cashback messages usually also contain "credited".
func TransactionType(message string) Type {
	lower := strings.ToLower(message)
	if containsAny(lower, cashbackWords) {
		return TypeCashback
	}
	if containsAny(lower, debitWords) {
		return TypeDebit
	}
	if containsAny(lower, creditWords) {
		return TypeCredit
	}
	return TypeOther
}

// ExtractBalance returns the post-transaction balance mentioned after a
// "bal"/"balance"/"avl" marker, or nil.
func ExtractBalance(message string) *float64 {
	m := balancePattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	raw := strings.ReplaceAll(m[1], ",", "")
	balance, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &balance
}

// ExtractAccount returns the last 4 digits of a masked account number
// ("xx1234", "****5678"). The pattern wants exactly 4 trailing digits after
// the mask run; shorter tails like "XX45" do not match.
func ExtractAccount(message string) *string {
	m := accountPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	digits := m[1]
	return &digits
}

// ExtractDiscount returns the percentage from "20% off" style phrases, or nil.
func ExtractDiscount(message string) *int {
	m := discountPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	pct, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &pct
}

// IsTransactional reports whether a message is worth running through the
// full parser. It is an existence check over a fixed keyword list, not a
// classifier.
func IsTransactional(message string) bool {
	lower := strings.ToLower(message)
	return containsAny(lower, transactionalWords)
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
