package models

// Park represents a public park where social servers are assigned
type Park struct {
	ID           int64  `json:"id"`
	ParkName     string `json:"parkName"`
	Abbreviation string `json:"abbreviation"`
}
