package prompt

// EstimateTokens uses character-based estimation, which tracks mixed
// code/text content better than word counts. Most tokenizers average
// ~3.5 chars per token for this kind of material.
func EstimateTokens(text string) int {
	return int(float64(len(text)) / 3.5)
}
