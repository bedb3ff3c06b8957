// Package dto contains data transfer objects for application layer use cases.
package dto

// FilterOptions defines filters for defect selection.
type FilterOptions struct {
	FilterExpression string
	Names            []string
	ExcludeNames     []string
	Sites            []string
}

// IsEmpty reports whether no filter is set.
func (o FilterOptions) IsEmpty() bool {
	return o.FilterExpression == "" && len(o.Names) == 0 && len(o.ExcludeNames) == 0 && len(o.Sites) == 0
}
