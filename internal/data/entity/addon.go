package entity

type AddOnCategory string

const (
	AddOnCategoryFood       AddOnCategory = "food"
	AddOnCategoryDecoration AddOnCategory = "decoration"
)

type AddOn struct {
	Base        `bson:",inline"`
	Name        string        `db:"name" bson:"name"`
	Description string        `db:"description" bson:"description"`
	Price       float64       `db:"price" bson:"price"`
	Category    AddOnCategory `db:"category" bson:"category"`
}
