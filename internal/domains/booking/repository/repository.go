package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"strings"

	"tavolo/infras/otel"
	"tavolo/infras/postgres"
	"tavolo/internal/domains/booking/model"
	"tavolo/shared/constant"
	gDto "tavolo/shared/dto"
	gRepo "tavolo/shared/repository"

	"github.com/lib/pq"
)

// Constraint violations surfaced distinctly so the service can tell a lost
// slot race from a confirmation-code collision.
var (
	ErrSlotConflict  = errors.New("booking overlaps an existing booking for the table")
	ErrDuplicateCode = errors.New("confirmation code already in use for the restaurant")
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Insert persists the booking, translating the overlap exclusion constraint
// and the confirmation-code unique constraint into sentinel errors.
func (repo *repositoryImpl) Insert(ctx context.Context, booking model.Booking) error {
	err := repo.Repository.Insert(ctx, booking)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeExclusionViolation:
			return ErrSlotConflict
		case constant.PqErrorCodeUniqueViolation:
			if strings.Contains(pqErr.Constraint, model.FieldConfirmationCode) {
				return ErrDuplicateCode
			}

			return ErrSlotConflict
		}
	}

	return err
}
