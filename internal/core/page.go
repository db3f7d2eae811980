package core

// PageRequest selects a page of a list operation. Zero values mean defaults.
type PageRequest struct {
	Page  int
	Limit int
}

// Sort is a caller-supplied ordering. An empty Field keeps the list's default.
type Sort struct {
	Field string
	Order SortOrder
}

// PageMeta describes where a page sits in the full result set.
type PageMeta struct {
	TotalItems   int
	ItemCount    int
	ItemsPerPage int
	TotalPages   int
	CurrentPage  int
}

// Page is the envelope returned by every list operation.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}
