package models

// Folder is a named sub-grouping of notes inside exactly one category.
// Folders do not nest. Order gives stable sibling ordering in the
// sidebar; ties break on name.
type Folder struct {
	ID       string
	Category Category
	Name     string
	Order    int
}
