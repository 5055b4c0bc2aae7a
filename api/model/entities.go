package model

import "time"

type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type SearchItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	FoundOn   []string  `json:"found_on"`
}

type Node struct {
	ID      string `json:"id"`
	Primary bool   `json:"primary"`
}
