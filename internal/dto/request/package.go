package request

type PackageRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"required,min=1,max=1000"`
	Price       float64 `json:"price" validate:"gt=0"`
}

type PackageUpdateRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1,max=1000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}
