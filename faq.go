package storelens

import "strings"

// KeywordFAQ is a canned question/answer emitted when the homepage text
// mentions one of its keywords.
type KeywordFAQ struct {
	Keywords []string
	FAQ      FAQ
}

// KeywordFAQs is the fallback table used when no structured FAQ page exists.
var KeywordFAQs = []KeywordFAQ{
	{
		Keywords: []string{"cod", "cash on delivery"},
		FAQ: FAQ{
			Question: "Do you offer Cash on Delivery (COD)?",
			Answer:   "Yes, we offer COD payment option.",
			Category: "payment",
		},
	},
	{
		Keywords: []string{"shipping", "delivery"},
		FAQ: FAQ{
			Question: "What are your shipping options?",
			Answer:   "Please check our shipping policy page for detailed information.",
			Category: "shipping",
		},
	},
	{
		Keywords: []string{"return", "refund"},
		FAQ: FAQ{
			Question: "What is your return policy?",
			Answer:   "Please refer to our return policy page for complete details.",
			Category: "returns",
		},
	},
	{
		Keywords: []string{"size", "sizing"},
		FAQ: FAQ{
			Question: "How do I find my size?",
			Answer:   "Please refer to our size guide for accurate measurements.",
			Category: "sizing",
		},
	},
}

// MatchKeywordFAQs returns the canned FAQs whose keywords appear in text,
// in table order.
func MatchKeywordFAQs(text string) []FAQ {
	text = strings.ToLower(text)
	var faqs []FAQ
	for _, k := range KeywordFAQs {
		for _, kw := range k.Keywords {
			if strings.Contains(text, kw) {
				faqs = append(faqs, k.FAQ)
				break
			}
		}
	}
	return faqs
}
