package request

type CustomerRequest struct {
	FullName            string  `json:"full_name"`
	Email               string  `json:"email"`
	PhoneNumber         string  `json:"phone_number"`
	SpecialRequirements *string `json:"special_requirements,omitempty"`
}
