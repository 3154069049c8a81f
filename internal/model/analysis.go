package model

// SiteAnalysis describes the reputation and political lean of the domain an
// article was published on.
type SiteAnalysis struct {
	Domain        string `json:"domain"`
	Reputation    string `json:"reputation"` // High | Mixed | Low | Unknown
	PoliticalBias string `json:"politicalBias"`
	BiasContext   string `json:"biasContext"`
	Explanation   string `json:"explanation"`
}

// SentimentAnalysis classifies an article's tone and language bias.
type SentimentAnalysis struct {
	Sentiment   string `json:"sentiment"` // Positive | Negative | Neutral
	Bias        string `json:"bias"`      // Objective | Biased | Strongly Biased
	Explanation string `json:"explanation"`
}

// AuthorshipAnalysis estimates whether an article was machine-written.
type AuthorshipAnalysis struct {
	Authorship    string `json:"authorship"` // Likely AI-Generated | Likely Human-Written
	ProbabilityAI int    `json:"probability_ai_generated"`
	Explanation   string `json:"explanation"`
}

// Sentinel records returned when an analyzer fails. Analyzer failures never
// abort a request; the pipeline proceeds with these in place of real output.

func UnknownSiteAnalysis(domain, explanation string) SiteAnalysis {
	return SiteAnalysis{
		Domain:        domain,
		Reputation:    "Unknown",
		PoliticalBias: "Unknown",
		BiasContext:   "N/A",
		Explanation:   explanation,
	}
}

func UnknownSentimentAnalysis(explanation string) SentimentAnalysis {
	return SentimentAnalysis{
		Sentiment:   "Unknown",
		Bias:        "Unknown",
		Explanation: explanation,
	}
}

func UnknownAuthorshipAnalysis(explanation string) AuthorshipAnalysis {
	return AuthorshipAnalysis{
		Authorship:    "Unknown",
		ProbabilityAI: 0,
		Explanation:   explanation,
	}
}
