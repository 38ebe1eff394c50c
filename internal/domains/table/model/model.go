package model

import "tavolo/shared/model"

const (
	TableName  = "restaurant_tables"
	EntityName = "table"

	FieldID           = "id"
	FieldRestaurantID = "restaurant_id"
	FieldNumber       = "table_number"
	FieldCapacity     = "capacity"
	FieldType         = "table_type"
	FieldActive       = "active"
)

const (
	TypeIndoor  = "indoor"
	TypeOutdoor = "outdoor"
	TypePrivate = "private"
	TypeBar     = "bar"
	TypeVIP     = "vip"
)

type Table struct {
	ID           string `db:"id"`
	RestaurantID string `db:"restaurant_id"`
	Number       string `db:"table_number"`
	Capacity     int    `db:"capacity"`
	Type         string `db:"table_type"`
	Active       bool   `db:"active"`
	model.Metadata
}
