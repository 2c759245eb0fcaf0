package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking references its customer, package and add-ons by id. The bson
// field names match the documents written by earlier releases of the service.
type Booking struct {
	Base                `bson:",inline"`
	CustomerID          string        `db:"customer_id" bson:"customer"`
	Date                time.Time     `db:"booking_date" bson:"date"`
	TimeSlot            string        `db:"time_slot" bson:"time_slot"`
	Duration            int           `db:"duration" bson:"duration"`
	PackageID           string        `db:"package_id" bson:"package"`
	AddOnIDs            []string      `db:"add_on_ids" bson:"add_ons"`
	SpecialRequirements string        `db:"special_requirements" bson:"special_requirements,omitempty"`
	Status              BookingStatus `db:"status" bson:"status"`
	TotalPrice          float64       `db:"total_price" bson:"total_price"`
}
