package extraction

// DefaultCostPer1KTokens is the rate used when none is configured.
const DefaultCostPer1KTokens = 0.02

// Cost converts a token count into money at ratePer1K per thousand tokens.
func Cost(tokens int, ratePer1K float64) float64 {
	return float64(tokens) * ratePer1K / 1000
}
