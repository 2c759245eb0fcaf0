package request

type AddOnRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"required,min=1,max=1000"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"required,oneof=food decoration"`
}

// AddOnUpdateRequest only covers the fields an add-on may change after creation.
type AddOnUpdateRequest struct {
	Name  *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}
