package smsparser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxMessageLen caps the accepted message length. Real SMS, even long
// concatenated ones, stay far below this; the cap keeps adversarially huge
// inputs out of the extractors.
const MaxMessageLen = 16 * 1024

// ErrMessageTooLong is returned by Parse when the message exceeds
// MaxMessageLen.
var ErrMessageTooLong = errors.New("smsparser: message exceeds maximum length")

// Parse runs every extractor once against the message/sender pair and
// assembles the transaction record. It is pure: no extractor result depends
// on another's output, and the inputs are never mutated.
//
// A zero receivedAt defaults to the current time. The record ID is the
// receive timestamp in epoch millis plus a random suffix, so two calls with
// identical arguments produce records equal in every field except ID;
// callers holding a device-assigned SMS id overwrite ID after the fact.
//
// No-match conditions are not errors: unmatched fields come back nil (or
// TypeOther / CategoryMiscellaneous). The only error is the input-length
// guard.
func Parse(message, sender string, receivedAt time.Time) (*ParsedTransaction, error) {
	if len(message) > MaxMessageLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrMessageTooLong, len(message))
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	otp := ExtractOTP(message)
	merchant := ResolveMerchant(sender, message)

	return &ParsedTransaction{
		ID:        newID(receivedAt),
		Message:   message,
		Sender:    sender,
		Timestamp: receivedAt,

		IsOTP: otp != nil,
		OTP:   otp,

		Type:     TransactionType(message),
		Amount:   ExtractAmount(message),
		Balance:  ExtractBalance(message),
		Account:  ExtractAccount(message),
		Discount: ExtractDiscount(message),

		Merchant: merchant.Name,
		Category: merchant.Category,
	}, nil
}

// newID builds "<unixmilli>-<suffix>" with a short random suffix.
func newID(ts time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", ts.UnixMilli(), suffix)
}
