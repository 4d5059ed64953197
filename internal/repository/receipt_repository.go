package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/YeswanthC7/keepkind/internal/model"
)

// ErrItemNotFound is returned by CreateVersioned when the owning item is gone.
var ErrItemNotFound = errors.New("item not found")

const maxVersionAttempts = 3

type ReceiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// CreateVersioned assigns the next receipt_version for the item and inserts
// the receipt in the same transaction. The item row is locked for the
// duration; the (item_id, receipt_version) unique index catches anything the
// lock cannot, in which case the whole unit is retried.
func (r *ReceiptRepository) CreateVersioned(ctx context.Context, receipt *model.Receipt) error {
	var err error
	for attempt := 0; attempt < maxVersionAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return createNextVersion(tx, receipt)
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		receipt.ID = 0
	}
	return err
}

func createNextVersion(tx *gorm.DB, receipt *model.Receipt) error {
	lock := tx
	if tx.Dialector.Name() != "sqlite" {
		lock = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var item model.Item
	if err := lock.Select("id").Where("id = ?", receipt.ItemID).Take(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("lock item failed: %w", err)
	}

	// Deleted receipts keep their version, so they count toward the maximum.
	var maxVersion int
	err := tx.Unscoped().
		Model(&model.Receipt{}).
		Where("item_id = ?", receipt.ItemID).
		Select("COALESCE(MAX(receipt_version), 0)").
		Scan(&maxVersion).Error
	if err != nil {
		return fmt.Errorf("read max receipt version failed: %w", err)
	}

	receipt.ReceiptVersion = maxVersion + 1
	if err := tx.Create(receipt).Error; err != nil {
		return fmt.Errorf("create receipt failed: %w", err)
	}
	return nil
}

// List returns one page of the item's receipts, newest first, and the total
// matching the same filter.
func (r *ReceiptRepository) List(ctx context.Context, itemID uint, limit, offset int, includeDeleted bool) ([]model.Receipt, int64, error) {
	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&model.Receipt{}).Where("item_id = ?", itemID)
		if includeDeleted {
			q = q.Unscoped()
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count receipts failed: %w", err)
	}

	list := []model.Receipt{}
	err := scope().
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list receipts failed: %w", err)
	}
	return list, total, nil
}

func (r *ReceiptRepository) Latest(ctx context.Context, itemID uint) (*model.Receipt, error) {
	var receipt model.Receipt
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Order("id DESC").
		Take(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest receipt failed: %w", err)
	}
	return &receipt, nil
}

// GetForItem only sees live receipts that belong to the item.
func (r *ReceiptRepository) GetForItem(ctx context.Context, itemID, receiptID uint) (*model.Receipt, error) {
	var receipt model.Receipt
	err := r.db.WithContext(ctx).
		Where("id = ? AND item_id = ?", receiptID, itemID).
		Take(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt failed: %w", err)
	}
	return &receipt, nil
}

// GetByID ignores item scoping and soft deletion.
func (r *ReceiptRepository) GetByID(ctx context.Context, receiptID uint) (*model.Receipt, error) {
	var receipt model.Receipt
	if err := r.db.WithContext(ctx).Unscoped().Where("id = ?", receiptID).Take(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt by id failed: %w", err)
	}
	return &receipt, nil
}

// SoftDelete reports false when no live receipt matched.
func (r *ReceiptRepository) SoftDelete(ctx context.Context, itemID, receiptID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND item_id = ?", receiptID, itemID).
		Delete(&model.Receipt{})
	if res.Error != nil {
		return false, fmt.Errorf("soft delete receipt failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
