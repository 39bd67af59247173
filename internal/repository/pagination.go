package repository

// Default listing window.
const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// PageRequest describes the requested listing window.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies defaults for out-of-range values.
func (p PageRequest) Normalize() PageRequest {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset returns the zero-based index of the first record in the window.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageDescriptor points at an adjacent page.
type PageDescriptor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev descriptors when they apply.
type Pagination struct {
	Next *PageDescriptor `json:"next,omitempty"`
	Prev *PageDescriptor `json:"prev,omitempty"`
}

// BuildPagination computes next/prev descriptors for a window against the
// filtered total (not the returned slice).
func BuildPagination(req PageRequest, total int) Pagination {
	req = req.Normalize()
	var p Pagination
	if req.Page*req.Limit < total {
		p.Next = &PageDescriptor{Page: req.Page + 1, Limit: req.Limit}
	}
	if req.Offset() > 0 {
		p.Prev = &PageDescriptor{Page: req.Page - 1, Limit: req.Limit}
	}
	return p
}
