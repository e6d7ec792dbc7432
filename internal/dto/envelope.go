package dto

// DataResponse wraps a single object
type DataResponse struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data"`
}

// ListResponse wraps a paginated list
type ListResponse struct {
	OK     bool        `json:"ok"`
	Items  interface{} `json:"items"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Total  int64       `json:"total"`
}

// ItemsResponse wraps an unpaginated list
type ItemsResponse struct {
	OK    bool        `json:"ok"`
	Items interface{} `json:"items"`
}
