package types

// Page points at an adjacent result page.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries the adjacent page pointers when they exist.
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

type SuccessEnvelope struct {
	Success       bool        `json:"success"`
	Token         string      `json:"token,omitempty"`
	Count         *int        `json:"count,omitempty"`
	Pagination    *Pagination `json:"pagination,omitempty"`
	Message       string      `json:"message,omitempty"`
	ModifiedCount *int64      `json:"modifiedCount,omitempty"`
	Data          any         `json:"data,omitempty"`
}

type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
