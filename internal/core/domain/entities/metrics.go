package entities

import "time"

type Metrics struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// Bucket is one category of a distribution.
type Bucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Dashboard struct {
	Query       string    `json:"query"`
	Tasks       []Task    `json:"tasks"`
	Metrics     Metrics   `json:"metrics"`
	ByStatus    []Bucket  `json:"byStatus"`
	ByPriority  []Bucket  `json:"byPriority"`
	ByAssignee  []Bucket  `json:"byAssignee"`
	GeneratedAt time.Time `json:"generatedAt"`
}
