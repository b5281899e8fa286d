package service

import (
	"context"
	"fmt"
	"storefront-backoffice/internal/model"
	"storefront-backoffice/internal/repository"

	"gorm.io/gorm"
)

type InventoryService interface {
	ListSkus(ctx context.Context, productID uint) ([]*model.ProductSku, error)
}

type inventoryServiceImpl struct {
	db            *gorm.DB
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
}

func NewInventoryService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
) InventoryService {
	return &inventoryServiceImpl{
		db:            db,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (s *inventoryServiceImpl) ListSkus(ctx context.Context, productID uint) ([]*model.ProductSku, error) {
	if _, err := s.productRepo.FindByID(ctx, s.db, productID); err != nil {
		return nil, notFound("product", err)
	}

	skus, err := s.inventoryRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}

	return skus, nil
}
