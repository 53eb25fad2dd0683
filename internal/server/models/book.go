package models

// Book is a catalog entry. Row, ShelfUnit and Shelf record the physical
// placement of the copy.
type Book struct {
	ID        string
	Title     string
	Author    string
	Publisher string
	Series    string
	Binding   string
	Year      int
	Pages     int
	Row       int
	ShelfUnit int
	Shelf     int
}
