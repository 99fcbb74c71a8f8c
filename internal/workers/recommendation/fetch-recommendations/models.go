package fetchrecommendations

type Input struct {
	Cuisine string `json:"cuisine"`
}

type Output struct {
	// Recommendations holds one formatted block per resolved hit, in hit order.
	Recommendations []string `json:"recommendations"`
	TotalHits       int64    `json:"totalHits"`
	Skipped         int      `json:"skipped"`
}

const separator = "------------------------------------------"
