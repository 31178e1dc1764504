package orderrepo

import (
	"context"
	"errors"

	"restaurant/internal/adapters/out/postgres/dberr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entity = "order"

var newestFirst = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "created_at"}, Desc: true},
	{Column: clause.Column{Name: "id"}, Desc: true},
}}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order and its line items. The stored version is 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Classify(err, entity, aggregate.ID().String())
	}

	return nil
}

// Update writes the mutable columns of the order if the stored version still
// equals the version the aggregate was loaded at, and increments it.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":     dto.Status,
			"updated_at": dto.UpdatedAt,
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return dberr.Classify(result.Error, entity, aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return dberr.Classify(err, entity, aggregate.ID().String())
		}
		if count == 0 {
			return errs.NewObjectNotFoundError(entity, aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError(entity, aggregate.ID().String())
	}

	return nil
}

// Get retrieves an order with its line items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entity, id.String())
		}
		return nil, dberr.Classify(err, entity, id.String())
	}

	return toDomain(dto)
}

// List returns the orders matching filter, newest first. Rows that cannot be
// restored are returned in OrderList.Corrupt.
func (r *GormOrderRepository) List(ctx context.Context, filter ports.OrderFilter) (ports.OrderList, error) {
	query := r.withItems(ctx)
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", filter.CustomerID.Bytes())
	}
	if len(filter.Statuses) > 0 {
		names := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			names = append(names, s.String())
		}
		query = query.Where("status IN ?", names)
	}

	var dtos []OrderDTO
	if err := query.Clauses(newestFirst).Find(&dtos).Error; err != nil {
		return ports.OrderList{}, dberr.Classify(err, entity, "list")
	}

	list := ports.OrderList{Orders: make([]*order.Order, 0, len(dtos))}
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			list.Corrupt = append(list.Corrupt, ports.CorruptOrder{ID: dto.ID.String(), Err: err})
			continue
		}
		list.Orders = append(list.Orders, o)
	}

	return list, nil
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "position"}})
	})
}
