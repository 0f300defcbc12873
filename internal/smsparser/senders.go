package smsparser

import (
	"strings"
)

// senderEntry maps a short-code fragment to a merchant. The table is an
// ordered slice, not a map: lookup is a substring scan and the first entry
// contained in the normalized sender wins.
type senderEntry struct {
	Key      string
	Name     string
	Category Category
}

var knownSenders = []senderEntry{
	{"HDFCBK", "HDFC Bank", CategoryMiscellaneous},
	{"SBIBNK", "SBI", CategoryMiscellaneous},
	{"ICICIB", "ICICI Bank", CategoryMiscellaneous},
	{"AXISBK", "Axis Bank", CategoryMiscellaneous},
	{"PAYTM", "Paytm", CategoryMiscellaneous},
	{"PHONEPE", "PhonePe", CategoryMiscellaneous},
	{"GPAY", "Google Pay", CategoryMiscellaneous},
	{"AMAZON", "Amazon", CategoryMiscellaneous},
	{"FLIPKR", "Flipkart", CategoryMiscellaneous},
	{"ZOMATO", "Zomato", CategoryFood},
	{"SWIGGY", "Swiggy", CategoryFood},
	{"UBER", "Uber", CategoryTransport},
	{"OLA", "Ola", CategoryTransport},
	{"RAPIDO", "Rapido", CategoryTransport},
	{"IRCTC", "IRCTC", CategoryTransport},
	{"AIRTEL", "Airtel", CategoryRecharge},
	{"JIO", "Jio", CategoryRecharge},
	{"VI", "Vi", CategoryRecharge},
	{"APOLLO", "Apollo", CategoryMedical},
	{"PHARMEASY", "PharmEasy", CategoryMedical},
	{"NETFLIX", "Netflix", CategoryEntertainment},
	{"PRIME", "Amazon Prime", CategoryEntertainment},
	{"HOTSTAR", "Hotstar", CategoryEntertainment},
}

// categoryKeywords drive message-body categorization when the sender is
// unknown. Ordered: the first category with a keyword hit wins.
type categoryKeywords struct {
	Category Category
	Words    []string
}

var categoryKeywordTable = []categoryKeywords{
	{CategoryFood, []string{
		"zomato", "swiggy", "dunzo", "restaurant", "cafe", "food", "eatery",
		"dining", "meal", "lunch", "dinner", "breakfast", "snack", "pizza",
		"burger", "dominos", "mcdonalds", "kfc", "subway",
	}},
	{CategoryTransport, []string{
		"uber", "ola", "rapido", "auto", "taxi", "cab", "metro", "bus",
		"train", "irctc", "railway", "flight", "petrol", "diesel", "fuel",
		"gas", "parking",
	}},
	{CategoryRecharge, []string{
		"recharge", "prepaid", "postpaid", "mobile", "airtel", "jio", "vi",
		"vodafone", "idea", "bsnl", "dth", "broadband", "internet", "data",
	}},
	{CategoryEntertainment, []string{
		"netflix", "amazon prime", "hotstar", "spotify", "youtube", "movie",
		"cinema", "pvr", "inox", "game", "gaming", "entertainment",
		"subscription", "ott",
	}},
	{CategoryMedical, []string{
		"hospital", "clinic", "doctor", "pharmacy", "medicine", "medical",
		"health", "apollo", "fortis", "max", "medlife", "pharmeasy", "1mg",
		"netmeds",
	}},
	{CategorySendHome, []string{
		"transfer", "sent to", "family", "home", "mother", "father",
		"parent", "brother", "sister", "upi transfer",
	}},
}

// normalizeSender uppercases the sender id and strips everything that is not
// a letter, so "VM-HDFCBK" and "hdfcbk" normalize alike.
func normalizeSender(sender string) string {
	upper := strings.ToUpper(sender)
	return strings.Map(func(r rune) rune {
		if r < 'A' || r > 'Z' {
			return -1
		}
		return r
	}, upper)
}

// Categorize picks a category for a message: known sender first, then body
// keywords, then miscellaneous.
func Categorize(message, sender string) Category {
	normalized := normalizeSender(sender)
	for _, e := range knownSenders {
		if strings.Contains(normalized, e.Key) {
			return e.Category
		}
	}

	lower := strings.ToLower(message)
	for _, ck := range categoryKeywordTable {
		for _, w := range ck.Words {
			if strings.Contains(lower, w) {
				return ck.Category
			}
		}
	}

	return CategoryMiscellaneous
}

// ResolveMerchant resolves the display name and category for a message.
// The known-sender table takes priority over anything in the body, so a
// payment-app short code (e.g. GPAY) wins over a merchant name mentioned in
// the message text. Failing both, it falls back to a phrase extraction of
// "at/to/from/via <name>", and finally to the raw sender.
func ResolveMerchant(sender, message string) Merchant {
	normalized := normalizeSender(sender)
	for _, e := range knownSenders {
		if strings.Contains(normalized, e.Key) {
			return Merchant{Name: e.Name, Category: e.Category}
		}
	}

	if m := merchantPhrasePattern.FindStringSubmatch(message); m != nil {
		name := strings.TrimSpace(m[1])
		if name != "" {
			return Merchant{Name: name, Category: Categorize(message, sender)}
		}
	}

	return Merchant{Name: sender, Category: Categorize(message, sender)}
}
