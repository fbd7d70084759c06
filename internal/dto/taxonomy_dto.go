package dto

// TaxonomyNode is the common response shape for Category/Family/SubFamily.
type TaxonomyNode struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
}

type CreateTaxonomyRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	// ParentID: owning Category for a Family, owning Family for a SubFamily.
	// Ignored for categories.
	ParentID *string `json:"parent_id"`
}

type UpdateTaxonomyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id"`
}
