package safety

// NewsItem is a cyber-safety headline shown on the news page.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Source      string `json:"source"`
}

// CyberNews returns the curated headlines. A feed integration could replace
// this; for now the items are fixed.
func CyberNews() []NewsItem {
	return []NewsItem{
		{
			Title:       "New Phishing Campaign Targets Banking Users",
			Description: "Security experts warn of sophisticated phishing emails mimicking bank communications.",
			Date:        "2024-01-15",
			Source:      "CyberWatch",
		},
		{
			Title:       "Government Launches Cyber Awareness Program",
			Description: "New initiative to educate citizens about online safety and digital literacy.",
			Date:        "2024-01-14",
			Source:      "Digital India News",
		},
		{
			Title:       "UPI Fraud Prevention Guidelines Released",
			Description: "RBI issues new guidelines to prevent UPI-related frauds and protect users.",
			Date:        "2024-01-13",
			Source:      "Finance Ministry",
		},
	}
}
