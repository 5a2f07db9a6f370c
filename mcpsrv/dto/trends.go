package dto

type Point struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Item struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Stats struct {
	Peak    int `json:"peak"`
	Average int `json:"average"`
	Current int `json:"current"`
}

// Trends is the tool-facing view of one fetch. Values are on the 0-100 index.
type Trends struct {
	Mode       string   `json:"mode"`
	Keyword    string   `json:"keyword"`
	Timeline   []Point  `json:"timeline"`
	AxisLabels []string `json:"axis_labels"`
	Ranking    []Item   `json:"ranking"`
	Breakdown  []Item   `json:"breakdown"`
	Stats      Stats    `json:"stats"`
}
