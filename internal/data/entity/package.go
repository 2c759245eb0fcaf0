package entity

type Package struct {
	Base        `bson:",inline"`
	Name        string  `db:"name" bson:"name"`
	Description string  `db:"description" bson:"description"`
	Price       float64 `db:"price" bson:"price"`
}
