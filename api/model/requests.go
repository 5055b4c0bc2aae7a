package model

type CreateItemParams struct {
	Name string `json:"name"`
}

type CreateItemResponse struct {
	Message       string `json:"message"`
	Name          string `json:"name"`
	ID            int64  `json:"id"`
	PropagationID string `json:"propagation_id"`
}

type SearchItemsResponse struct {
	Results  []SearchItem `json:"results"`
	Warnings []string     `json:"warnings,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
