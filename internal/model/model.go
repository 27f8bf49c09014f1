// Package model defines the shared recommendation and execution types.
package model

import "time"

// Recommendation is one ranked multi-tool pattern.
type Recommendation struct {
	Sequence  []int  `json:"sequence"`
	Names     string `json:"names"`
	Frequency int    `json:"frequency"`
	Length    int    `json:"length"`
	Score     int    `json:"score"`
}

// StableRecommendation is a full-history pattern pick. It carries the
// arrival index of the last block the pattern appeared in.
type StableRecommendation struct {
	Recommendation
	LastUsage int `json:"last_usage"`
}

// Selections bundles the three recommendation lists.
type Selections struct {
	FromRecent    []Recommendation       `json:"from_recent"`
	FromFrequency []StableRecommendation `json:"from_frequency"`
	SingleTools   []string               `json:"single_tools"`
}

// Execution is one logged tool-usage episode.
type Execution struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Steps     []string  `json:"steps"`
	StepCount int       `json:"step_count"`
	CreatedAt time.Time `json:"created_at"`
}
