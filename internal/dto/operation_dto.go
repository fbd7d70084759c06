package dto

type CreateOperationRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Year        int     `json:"year" validate:"required,min=1900"`
}

type UpdateOperationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Year        *int    `json:"year"`
}

// OperationMemberPackagesRequest mirrors MemberIDsRequest for the package
// side of an operation; the empty-list check lives in the service.
type OperationMemberPackagesRequest struct {
	PackageIDs []string `json:"package_ids"`
}

type OperationFilter struct {
	Q     string `form:"q"`
	Year  int    `form:"year"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type OperationResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Location    *string           `json:"location,omitempty"`
	Year        int               `json:"year"`
	Items       []ItemResponse    `json:"items,omitempty"`
	Packages    []PackageResponse `json:"packages,omitempty"`
	CreatedAt   string            `json:"created_at"`
}

type OperationListResponse struct {
	Data  []OperationResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
