package dto

import (
	"mime/multipart"

	"tavolo/internal/domains/restaurant/model"
	"tavolo/shared"
	gDto "tavolo/shared/dto"
	gModel "tavolo/shared/model"
	"tavolo/shared/timezone"

	"github.com/google/uuid"
)

type CreateRestaurantRequest struct {
	Name            string                 `json:"name"             validate:"required,max=100"`
	Description     string                 `json:"description"      validate:"omitempty,max=1000"`
	CuisineType     string                 `json:"cuisine_type"     validate:"omitempty,max=50"`
	Address         string                 `json:"address"          validate:"required,max=200"`
	City            string                 `json:"city"             validate:"required,max=100"`
	Phone           string                 `json:"phone"            validate:"omitempty,max=20"`
	Email           string                 `json:"email"            validate:"omitempty,email,max=100"`
	Image           *multipart.FileHeader  `json:"image"            validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile       multipart.File         `json:"-"`
	WorkingHours    model.WorkingHours     `json:"working_hours"    validate:"required"`
	BookingSettings *model.BookingSettings `json:"booking_settings" validate:"omitempty"`
}

func (c *CreateRestaurantRequest) ToModel(user string, imageURL string) model.Restaurant {
	settings := model.BookingSettings{
		MaxAdvanceBookingDays:  30,
		MinAdvanceBookingHours: 2,
		MaxPartySize:           10,
		AutoConfirmBookings:    false,
		EnableOnlineBooking:    true,
	}
	if c.BookingSettings != nil {
		settings = *c.BookingSettings
	}

	return model.Restaurant{
		ID:              uuid.NewString(),
		OwnerID:         user,
		Name:            c.Name,
		Description:     c.Description,
		CuisineType:     c.CuisineType,
		Address:         c.Address,
		City:            c.City,
		Phone:           c.Phone,
		Email:           c.Email,
		Image:           imageURL,
		WorkingHours:    c.WorkingHours,
		BookingSettings: settings,
		Status:          model.StatusPendingApproval,
		Active:          true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRestaurantRequest struct {
	Name            string                 `db:"name"             json:"name"             validate:"omitempty,max=100"`
	Description     *string                `db:"description"      json:"description"      validate:"omitempty,max=1000"`
	CuisineType     string                 `db:"cuisine_type"     json:"cuisine_type"     validate:"omitempty,max=50"`
	Address         string                 `db:"address"          json:"address"          validate:"omitempty,max=200"`
	City            string                 `db:"city"             json:"city"             validate:"omitempty,max=100"`
	Phone           string                 `db:"phone"            json:"phone"            validate:"omitempty,max=20"`
	Email           string                 `db:"email"            json:"email"            validate:"omitempty,email,max=100"`
	Image           *multipart.FileHeader  `json:"image"          validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile       multipart.File         `json:"-"`
	WorkingHours    model.WorkingHours     `db:"working_hours"    json:"working_hours"    validate:"omitempty"`
	BookingSettings *model.BookingSettings `db:"booking_settings" json:"booking_settings" validate:"omitempty"`
	Active          *bool                  `db:"active"           json:"active"           validate:"omitempty"`
}

type ModerateRestaurantRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type RestaurantResponse struct {
	ID              string                `json:"id"`
	OwnerID         string                `json:"owner_id"`
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	CuisineType     string                `json:"cuisine_type"`
	Address         string                `json:"address"`
	City            string                `json:"city"`
	Phone           string                `json:"phone"`
	Email           string                `json:"email"`
	Image           string                `json:"image"`
	WorkingHours    model.WorkingHours    `json:"working_hours"`
	BookingSettings model.BookingSettings `json:"booking_settings"`
	Status          string                `json:"status"`
	Active          bool                  `json:"active"`
	gDto.Metadata
}

func (r *RestaurantResponse) FromModel(model model.Restaurant) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Name = model.Name
	r.Description = model.Description
	r.CuisineType = model.CuisineType
	r.Address = model.Address
	r.City = model.City
	r.Phone = model.Phone
	r.Email = model.Email
	r.Image = model.Image
	r.WorkingHours = model.WorkingHours
	r.BookingSettings = model.BookingSettings
	r.Status = model.Status
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRestaurantsResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetRestaurantsResponse) FromModels(models []model.Restaurant, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Restaurants = make([]RestaurantResponse, len(models))
	for i, mod := range models {
		r.Restaurants[i].FromModel(mod)
	}
}
