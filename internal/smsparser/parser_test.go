package smsparser

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParse_CreditWithBalance(t *testing.T) {
	body := "Payout of Rs.487 credited to A/c XX45 on 21-Nov. Ref: SWG123456. Avl Bal: Rs.5420"
	ts := time.UnixMilli(1700000000000)

	tx, err := Parse(body, "SWIGGY", ts)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if tx.Type != TypeCredit {
		t.Errorf("Type = %q, want credit", tx.Type)
	}
	if tx.Amount == nil || *tx.Amount != 487 {
		t.Errorf("Amount = %v, want 487", tx.Amount)
	}
	if tx.Balance == nil || *tx.Balance != 5420 {
		t.Errorf("Balance = %v, want 5420", tx.Balance)
	}
	// "XX45" has only two masked digits; the account pattern wants four.
	if tx.Account != nil {
		t.Errorf("Account = %q, want nil", *tx.Account)
	}
	if tx.IsOTP || tx.OTP != nil {
		t.Errorf("IsOTP/OTP = %v/%v, want false/nil", tx.IsOTP, tx.OTP)
	}
	if tx.Merchant != "Swiggy" {
		t.Errorf("Merchant = %q, want Swiggy", tx.Merchant)
	}
	if tx.Category != CategoryFood {
		t.Errorf("Category = %q, want food", tx.Category)
	}
	if tx.Message != body || tx.Sender != "SWIGGY" {
		t.Error("raw message/sender not preserved")
	}
	if !tx.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", tx.Timestamp, ts)
	}
}

func TestParse_OTPAndAmountCoexist(t *testing.T) {
	body := "OTP: 123456 to verify payment of Rs.500. Expires in 5 mins."

	tx, err := Parse(body, "PAYTM", time.UnixMilli(1700000000000))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if !tx.IsOTP || tx.OTP == nil || *tx.OTP != "123456" {
		t.Errorf("OTP = %v, want 123456", tx.OTP)
	}
	if tx.Amount == nil || *tx.Amount != 500 {
		t.Errorf("Amount = %v, want 500", tx.Amount)
	}
	// "payment" is a debit keyword, so this classifies as debit even though
	// the message is only an OTP prompt.
	if tx.Type != TypeDebit {
		t.Errorf("Type = %q, want debit", tx.Type)
	}
	if tx.Balance != nil {
		t.Errorf("Balance = %v, want nil", *tx.Balance)
	}
	if tx.Merchant != "Paytm" {
		t.Errorf("Merchant = %q, want Paytm", tx.Merchant)
	}
}

func TestParse_OTPWithRetrieverHash(t *testing.T) {
	body := "<#> Your OTP is 654321 for Swiggy login. AbCdEfGhIjK"

	tx, err := Parse(body, "SWIGGY", time.UnixMilli(1700000000000))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if tx.OTP == nil || *tx.OTP != "654321" {
		t.Errorf("OTP = %v, want 654321", tx.OTP)
	}
	if tx.Amount != nil {
		t.Errorf("Amount = %v, want nil", *tx.Amount)
	}
	if tx.Type != TypeOther {
		t.Errorf("Type = %q, want other", tx.Type)
	}
}

func TestParse_UPIDebit(t *testing.T) {
	body := "Rs.85 paid to Street Food Corner. UPI Ref: 534289123. Payment successful."

	tx, err := Parse(body, "GPAY", time.UnixMilli(1700000000000))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if tx.Type != TypeDebit {
		t.Errorf("Type = %q, want debit", tx.Type)
	}
	if tx.Amount == nil || *tx.Amount != 85 {
		t.Errorf("Amount = %v, want 85", tx.Amount)
	}
	// GPAY is in the sender table, so it wins over the body merchant.
	if tx.Merchant != "Google Pay" {
		t.Errorf("Merchant = %q, want Google Pay", tx.Merchant)
	}
	if tx.Category != CategoryMiscellaneous {
		t.Errorf("Category = %q, want miscellaneous", tx.Category)
	}
}

func TestParse_EmptyMessage(t *testing.T) {
	tx, err := Parse("", "", time.UnixMilli(1700000000000))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if tx.OTP != nil || tx.Amount != nil || tx.Balance != nil || tx.Account != nil || tx.Discount != nil {
		t.Error("expected all optional fields nil for empty message")
	}
	if tx.IsOTP {
		t.Error("IsOTP = true for empty message")
	}
	if tx.Type != TypeOther {
		t.Errorf("Type = %q, want other", tx.Type)
	}
	if tx.Category != CategoryMiscellaneous {
		t.Errorf("Category = %q, want miscellaneous", tx.Category)
	}
}

func TestParse_MessageTooLong(t *testing.T) {
	_, err := Parse(strings.Repeat("a", MaxMessageLen+1), "X", time.Now())
	if !errors.Is(err, ErrMessageTooLong) {
		t.Errorf("err = %v, want ErrMessageTooLong", err)
	}
}

func TestParse_ZeroTimestampDefaultsToNow(t *testing.T) {
	before := time.Now()
	tx, err := Parse("Rs.10 debited", "X", time.Time{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if tx.Timestamp.Before(before) || tx.Timestamp.After(time.Now()) {
		t.Errorf("Timestamp = %v, want roughly now", tx.Timestamp)
	}
}

// Two parses of the same input must agree on every field except the
// synthesized ID, whose random suffix differs per call.
func TestParse_Idempotent(t *testing.T) {
	body := "Rs.250 debited from A/c xx9876. Avl Bal Rs.1,200. 10% cashback on next ride"
	ts := time.UnixMilli(1700000000000)

	a, err := Parse(body, "UBER", ts)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	b, err := Parse(body, "UBER", ts)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	// Same timestamp prefix, different suffix.
	prefix := fmt.Sprintf("%d-", ts.UnixMilli())
	if !strings.HasPrefix(a.ID, prefix) || !strings.HasPrefix(b.ID, prefix) {
		t.Errorf("IDs %q/%q missing timestamp prefix %q", a.ID, b.ID, prefix)
	}

	a.ID, b.ID = "", ""
	if !reflect.DeepEqual(a, b) {
		t.Errorf("records differ beyond ID:\n%+v\n%+v", a, b)
	}
}

func TestParse_Invariants(t *testing.T) {
	messages := []struct{ body, sender string }{
		{"Payout of Rs.487 credited to A/c XX45. Avl Bal: Rs.5420", "SWIGGY"},
		{"OTP: 123456 to verify payment of Rs.500.", "PAYTM"},
		{"<#> Your OTP is 654321 for Swiggy login. AbCdEfGhIjK", "SWIGGY"},
		{"Rs.85 paid to Street Food Corner.", "GPAY"},
		{"Get 20% off on your next order", "PROMO"},
		{"", ""},
		{"Hello, how are you?", "FRIEND"},
	}

	for _, m := range messages {
		tx, err := Parse(m.body, m.sender, time.Now())
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", m.body, err)
		}
		if tx.IsOTP != (tx.OTP != nil) {
			t.Errorf("Parse(%q): IsOTP=%v but OTP=%v", m.body, tx.IsOTP, tx.OTP)
		}
		if tx.Amount != nil && *tx.Amount < 0 {
			t.Errorf("Parse(%q): negative amount %v", m.body, *tx.Amount)
		}
	}
}
