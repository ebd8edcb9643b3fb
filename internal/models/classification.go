package models

// Classification is either Unclassified (the zero value) or Classified with the
// category that claimed the transaction. Once classified it never changes.
type Classification struct {
	category *Category
}

// Unclassified is the initial classification of every transaction.
var Unclassified = Classification{}

// Classified returns a classification pointing at category.
func Classified(category *Category) Classification {
	return Classification{category: category}
}

// IsClassified reports whether a category owns the transaction.
func (c Classification) IsClassified() bool {
	return c.category != nil
}

// Category returns the owning category.
func (c Classification) Category() (*Category, bool) {
	return c.category, c.category != nil
}

func (c Classification) String() string {
	if c.category == nil {
		return "unclassified"
	}
	return "classified(" + c.category.Name + ")"
}
