package entity

import (
	"time"
)

type Base struct {
	ID        string    `db:"id" bson:"_id"`
	CreatedAt time.Time `db:"created_at" bson:"created_at"`
	UpdatedAt time.Time `db:"updated_at" bson:"updated_at"`
}
