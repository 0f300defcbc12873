package smsparser

import (
	"regexp"
)

// Pattern tables for the extractors. Order matters everywhere in this file:
// extraction is first-match-wins, so reordering a list changes which value
// wins on ambiguous input.

// otpPatterns locate a 4-8 digit code, tried in priority order. The patterns
// anchor on digit-only runs, so trailing SMS-Retriever app-signature hashes
// are never captured.
var otpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{4,8})\b.*(?:otp|code|pin|password|verification)`),
	regexp.MustCompile(`(?i)(?:otp|code|pin|password|verification).*\b(\d{4,8})\b`),
	regexp.MustCompile(`(?i)\b(\d{6})\b\s*(?:is your|is the)`),
	regexp.MustCompile(`(?i)(?:use|enter|type)\s*(\d{4,8})\b`),
	regexp.MustCompile(`(?i)(?:OTP|CVV|PIN|code)[\s:]+(\d{4,8})\b`),
}

// amountPatterns locate a rupee amount: currency-prefixed, currency-suffixed,
// then a transaction-verb fallback. A message carrying both an amount and a
// balance resolves by this order; the balance extractor runs separately.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*([\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d{2})?)\s*(?:rs\.?|inr|₹)`),
	regexp.MustCompile(`(?i)(?:debited|credited|paid|received)[\s:]*(?:rs\.?|inr|₹)?\s*([\d,]+)`),
}

var (
	balancePattern  = regexp.MustCompile(`(?i)(?:bal|balance|avl)[\s.:]*(?:rs\.?|inr|₹)?\s*([\d,]+)`)
	accountPattern  = regexp.MustCompile(`[xX*]+(\d{4})`)
	discountPattern = regexp.MustCompile(`(?i)(\d+)\s*%\s*(?:off|discount|cashback)`)

	// merchantPhrasePattern pulls a merchant name out of phrases like
	// "paid to Street Food Corner." or "spent at Cafe Blue on 21-Nov".
	merchantPhrasePattern = regexp.MustCompile(`(?i)(?:at|to|from|via)\s+([A-Za-z0-9\s]+?)(?:\s+on|\.|$)`)
)

// Keyword sets for the transaction type classifier. Cashback words are
// checked first: a cashback SMS usually also says "credited".
var (
	cashbackWords = []string{"cashback", "cash back", "reward", "bonus"}
	debitWords    = []string{"debited", "debit", "spent", "paid", "payment", "purchase", "sent", "withdrawn"}
	creditWords   = []string{"credited", "credit", "received", "refund", "deposited", "added"}
)

// transactionalWords is the cheap pre-filter for skipping promotional SMS
// before running the full parser.
var transactionalWords = []string{
	"debited", "credited", "otp", "code", "payment", "balance",
	"transaction", "rs", "inr", "₹", "upi", "transfer", "cashback",
}
