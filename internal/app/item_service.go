package app

import (
	"context"
	"strings"

	"github.com/YeswanthC7/keepkind/internal/model"
	"github.com/YeswanthC7/keepkind/internal/repository"
)

type ItemService struct {
	itemRepo *repository.ItemRepository
}

func NewItemService(itemRepo *repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

type CreateItemInput struct {
	Name     string
	Category string
}

func (s *ItemService) Create(ctx context.Context, input CreateItemInput) (*model.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	item := &model.Item{
		Name:     name,
		Category: strings.TrimSpace(input.Category),
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, id uint) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}
