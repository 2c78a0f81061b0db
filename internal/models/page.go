package models

// Meta describes the pagination state of a collection response.
type Meta struct {
	Total    int64 `json:"total"`
	Pages    int   `json:"pages"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// Page is the paginated collection envelope used by every list endpoint.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorResponse is the body shape of every non-success backend response.
type ErrorResponse struct {
	Error string `json:"error"`
}
