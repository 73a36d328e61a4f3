package dto

// PageQuery bounds a list read. A zero Limit returns every row.
type PageQuery struct {
	Limit  int
	Offset int
}
