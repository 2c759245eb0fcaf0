package entity

type Customer struct {
	Base                `bson:",inline"`
	FullName            string  `db:"full_name" bson:"full_name"`
	Email               string  `db:"email" bson:"email"`
	PhoneNumber         string  `db:"phone_number" bson:"phone_number"`
	SpecialRequirements *string `db:"special_requirements" bson:"special_requirements,omitempty"`
}
