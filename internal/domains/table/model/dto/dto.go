package dto

import (
	"tavolo/internal/domains/table/model"
	"tavolo/shared"
	gDto "tavolo/shared/dto"
	gModel "tavolo/shared/model"
	"tavolo/shared/timezone"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Number       string `json:"table_number"  validate:"required,max=20"`
	Capacity     int    `json:"capacity"      validate:"required,min=1"`
	Type         string `json:"table_type"    validate:"omitempty,oneof=indoor outdoor private bar vip"`
	Active       *bool  `json:"active"        validate:"omitempty"`
}

func (c *CreateTableRequest) ToModel(user string) model.Table {
	tableType := c.Type
	if tableType == "" {
		tableType = model.TypeIndoor
	}

	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Table{
		ID:           uuid.NewString(),
		RestaurantID: c.RestaurantID,
		Number:       c.Number,
		Capacity:     c.Capacity,
		Type:         tableType,
		Active:       active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTableRequest struct {
	Number   string `db:"table_number" json:"table_number" validate:"omitempty,max=20"`
	Capacity *int   `db:"capacity"     json:"capacity"     validate:"omitempty,min=1"`
	Type     string `db:"table_type"   json:"table_type"   validate:"omitempty,oneof=indoor outdoor private bar vip"`
	Active   *bool  `db:"active"       json:"active"       validate:"omitempty"`
}

type TableResponse struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Number       string `json:"table_number"`
	Capacity     int    `json:"capacity"`
	Type         string `json:"table_type"`
	Active       bool   `json:"active"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.RestaurantID = model.RestaurantID
	r.Number = model.Number
	r.Capacity = model.Capacity
	r.Type = model.Type
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
