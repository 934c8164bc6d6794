package flows

// SafetySetting relaxes a provider-side content filter for one harm
// category. Summaries of books about addiction, grief or violence trip
// default filters, so every flow runs with blocking disabled.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

const thresholdBlockNone = "BLOCK_NONE"

func textSafetySettings() []SafetySetting {
	return []SafetySetting{
		{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: thresholdBlockNone},
		{Category: "HARM_CATEGORY_HARASSMENT", Threshold: thresholdBlockNone},
		{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: thresholdBlockNone},
		{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: thresholdBlockNone},
	}
}

func imageSafetySettings() []SafetySetting {
	return append(textSafetySettings(), SafetySetting{
		Category:  "HARM_CATEGORY_CIVIC_INTEGRITY",
		Threshold: thresholdBlockNone,
	})
}
