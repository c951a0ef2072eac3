package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/model"
)

// ── 测试辅助 ──

func setupTestRosterService() (RosterService, *mockRepos) {
	repo, m := newMockRepos()
	allocation := NewAllocationService(repo, FirstSlotOverflow{}, zap.NewNop())
	svc := NewRosterService(repo, allocation, zap.NewNop())
	return svc, m
}

func seedRow(m *mockRepos, rowID string, associated ...string) *model.GuardRow {
	row := &model.GuardRow{
		RowID:              rowID,
		ClientName:         "测试客户",
		SiteName:           "测试驻点",
		PrimaryGuardID:     "guard-primary",
		AssociatedGuardIDs: associated,
		IsActive:           true,
	}
	m.guardRow.rows[rowID] = row
	return row
}

// ── UpsertEntry 测试 ──

func TestRosterService_Upsert_CreatesEntry(t *testing.T) {
	svc, m := setupTestRosterService()
	seedRow(m, "row-001", "guard-assoc")

	req := &dto.UpsertRosterEntryRequest{
		RowID:      "row-001",
		DutyDate:   "2026-03-10",
		TotalHours: dec(8),
		Mode:       "day",
	}
	entry, result, err := svc.UpsertEntry(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("UpsertEntry 应成功: %v", err)
	}
	if entry.Status != model.RosterStatusUnconfirmed {
		t.Errorf("新条目应为 unconfirmed，实际=%s", entry.Status)
	}
	// 未设目标 = 不设上限，全部落主岗
	if !result.Unlimited || !entry.PrimaryHours.Equal(dec(8)) {
		t.Errorf("期望主岗=8（不设上限），实际=%s unlimited=%v", entry.PrimaryHours, result.Unlimited)
	}
	if !entry.TotalHours.Equal(dec(8)) {
		t.Errorf("期望总工时=8，实际=%s", entry.TotalHours)
	}
}

func TestRosterService_Upsert_OverflowToAssociated(t *testing.T) {
	svc, m := setupTestRosterService()
	seedRow(m, "row-001", "guard-assoc")
	m.target.targets[targetKey("row-001", 2026, 3)] = &model.MonthlyTarget{
		RowID: "row-001", Year: 2026, Month: 3,
		PrimaryTargetHours: dec(6),
	}

	req := &dto.UpsertRosterEntryRequest{
		RowID:      "row-001",
		DutyDate:   "2026-03-10",
		TotalHours: dec(10),
		Mode:       "day",
	}
	entry, result, err := svc.UpsertEntry(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("UpsertEntry 应成功: %v", err)
	}
	if !result.Overflowed {
		t.Fatal("超目标应标记溢出")
	}
	if !entry.PrimaryHours.Equal(dec(6)) {
		t.Errorf("主岗应截断为6，实际=%s", entry.PrimaryHours)
	}
	if len(entry.Assignments) != 1 || entry.Assignments[0].GuardID != "guard-assoc" ||
		!entry.Assignments[0].Hours.Equal(dec(4)) {
		t.Errorf("溢出4小时应落到首个协岗，实际=%+v", entry.Assignments)
	}
	if !entry.TotalHours.Equal(dec(10)) {
		t.Errorf("总工时应保持10，实际=%s", entry.TotalHours)
	}
	// 有协岗接盘，状态不变
	if entry.Status != model.RosterStatusUnconfirmed {
		t.Errorf("有协岗接盘时状态应保持 unconfirmed，实际=%s", entry.Status)
	}
}

func TestRosterService_Upsert_OverflowWithoutAssociated_Unassigned(t *testing.T) {
	svc, m := setupTestRosterService()
	seedRow(m, "row-001") // 行未配置协岗
	m.target.targets[targetKey("row-001", 2026, 3)] = &model.MonthlyTarget{
		RowID: "row-001", Year: 2026, Month: 3,
		PrimaryTargetHours: dec(6),
	}

	req := &dto.UpsertRosterEntryRequest{
		RowID:      "row-001",
		DutyDate:   "2026-03-10",
		TotalHours: dec(10),
		Mode:       "day",
	}
	entry, _, err := svc.UpsertEntry(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("UpsertEntry 应成功: %v", err)
	}
	if entry.Status != model.RosterStatusUnassigned {
		t.Errorf("溢出且无协岗可接盘应置为 unassigned，实际=%s", entry.Status)
	}
}

func TestRosterService_Upsert_UpdatesExisting(t *testing.T) {
	svc, m := setupTestRosterService()
	seedRow(m, "row-001", "guard-assoc")

	req := &dto.UpsertRosterEntryRequest{
		RowID:      "row-001",
		DutyDate:   "2026-03-10",
		TotalHours: dec(8),
		Mode:       "day",
	}
	first, _, err := svc.UpsertEntry(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("首次 UpsertEntry 应成功: %v", err)
	}

	req.TotalHours = dec(6)
	second, _, err := svc.UpsertEntry(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("二次 UpsertEntry 应成功: %v", err)
	}
	if first.EntryID != second.EntryID {
		t.Error("同一 (行, 日期) 应复用既有条目")
	}
	if len(m.rosterEntry.entries) != 1 {
		t.Errorf("不应新建条目，实际=%d条", len(m.rosterEntry.entries))
	}
	if !second.TotalHours.Equal(dec(6)) {
		t.Errorf("期望总工时更新为6，实际=%s", second.TotalHours)
	}
}

func TestRosterService_Upsert_ReverseFromPrimary(t *testing.T) {
	svc, m := setupTestRosterService()
	seedRow(m, "row-001", "guard-assoc")
	m.target.targets[targetKey("row-001", 2026, 3)] = &model.MonthlyTarget{
		RowID: "row-001", Year: 2026, Month: 3,
		PrimaryTargetHours: dec(6),
	}

	edited := dec(10)
	req := &dto.UpsertRosterEntryRequest{
		RowID:        "row-001",
		DutyDate:     "2026-03-10",
		PrimaryHours: &edited,
		Mode:         "day",
		Existing: []dto.AssignmentInput{
			{GuardID: "guard-assoc", Hours: dec(3)},
		},
	}
	entry, _, err := svc.UpsertEntry(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("UpsertEntry 应成功: %v", err)
	}
	// 主岗钳位到剩余目标6，协岗原样保留，总工时重导出
	if !entry.PrimaryHours.Equal(dec(6)) {
		t.Errorf("主岗应钳位为6，实际=%s", entry.PrimaryHours)
	}
	if len(entry.Assignments) != 1 || !entry.Assignments[0].Hours.Equal(dec(3)) {
		t.Errorf("反向口径协岗不应改动，实际=%+v", entry.Assignments)
	}
	if !entry.TotalHours.Equal(dec(9)) {
		t.Errorf("期望总工时=9，实际=%s", entry.TotalHours)
	}
}

func TestRosterService_Upsert_InvalidDate(t *testing.T) {
	svc, m := setupTestRosterService()
	seedRow(m, "row-001")

	req := &dto.UpsertRosterEntryRequest{
		RowID:      "row-001",
		DutyDate:   "2026/03/10",
		TotalHours: dec(8),
		Mode:       "day",
	}
	_, _, err := svc.UpsertEntry(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrInvalidDutyDate) {
		t.Errorf("期望 ErrInvalidDutyDate，实际: %v", err)
	}
}

func TestRosterService_Upsert_RowNotFound(t *testing.T) {
	svc, _ := setupTestRosterService()

	req := &dto.UpsertRosterEntryRequest{
		RowID:      "nonexistent",
		DutyDate:   "2026-03-10",
		TotalHours: dec(8),
		Mode:       "day",
	}
	_, _, err := svc.UpsertEntry(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrGuardRowNotFound) {
		t.Errorf("期望 ErrGuardRowNotFound，实际: %v", err)
	}
}

// ── PreviewAllocation 测试 ──

func TestRosterService_Preview_DoesNotPersist(t *testing.T) {
	svc, m := setupTestRosterService()
	seedRow(m, "row-001", "guard-assoc")
	m.target.targets[targetKey("row-001", 2026, 3)] = &model.MonthlyTarget{
		RowID: "row-001", Year: 2026, Month: 3,
		PrimaryTargetHours: dec(6),
	}

	req := &dto.AllocationPreviewRequest{
		RowID:      "row-001",
		DutyDate:   "2026-03-10",
		TotalHours: dec(10),
		Mode:       "day",
	}
	result, err := svc.PreviewAllocation(context.Background(), req)
	if err != nil {
		t.Fatalf("PreviewAllocation 应成功: %v", err)
	}
	if !result.PrimaryHours.Equal(dec(6)) || !result.Overflowed {
		t.Errorf("预演分配结果不对: primary=%s overflowed=%v", result.PrimaryHours, result.Overflowed)
	}
	if len(m.rosterEntry.entries) != 0 {
		t.Errorf("预演不应落库，实际=%d条", len(m.rosterEntry.entries))
	}
}

// ── SetStatus / Delete 测试 ──

func TestRosterService_SetStatus_Success(t *testing.T) {
	svc, m := setupTestRosterService()
	m.rosterEntry.entries["entry-1"] = &model.RosterEntry{
		EntryID: "entry-1", RowID: "row-001",
		DutyDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:   model.RosterStatusUnconfirmed,
	}

	if err := svc.SetStatus(context.Background(), "entry-1", model.RosterStatusConfirmed, "admin-001"); err != nil {
		t.Fatalf("SetStatus 应成功: %v", err)
	}
	if m.rosterEntry.entries["entry-1"].Status != model.RosterStatusConfirmed {
		t.Error("状态应更新为 confirmed")
	}
}

func TestRosterService_SetStatus_InvalidStatus(t *testing.T) {
	svc, _ := setupTestRosterService()

	err := svc.SetStatus(context.Background(), "entry-1", "archived", "admin-001")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("期望 ErrInvalidStatus，实际: %v", err)
	}
}

func TestRosterService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestRosterService()

	err := svc.Delete(context.Background(), "nonexistent", "admin-001")
	if !errors.Is(err, ErrRosterEntryNotFound) {
		t.Errorf("期望 ErrRosterEntryNotFound，实际: %v", err)
	}
}

// ── MonthGrid 测试 ──

func TestRosterService_MonthGrid_SumsPerRow(t *testing.T) {
	svc, m := setupTestRosterService()
	seedRow(m, "row-001", "guard-assoc")
	m.rosterEntry.entries["entry-1"] = &model.RosterEntry{
		EntryID: "entry-1", RowID: "row-001",
		DutyDate:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:       model.RosterStatusConfirmed,
		PrimaryHours: dec(8), TotalHours: dec(10),
	}
	m.rosterEntry.entries["entry-2"] = &model.RosterEntry{
		EntryID: "entry-2", RowID: "row-001",
		DutyDate:     time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		Status:       model.RosterStatusConfirmed,
		PrimaryHours: dec(6), TotalHours: dec(6),
	}
	// 别的月份不应计入
	m.rosterEntry.entries["entry-3"] = &model.RosterEntry{
		EntryID: "entry-3", RowID: "row-001",
		DutyDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		PrimaryHours: dec(8), TotalHours: dec(8),
	}

	resp, err := svc.MonthGrid(context.Background(), 2026, 3, "row-001")
	if err != nil {
		t.Fatalf("MonthGrid 应成功: %v", err)
	}
	if len(resp.Rows) != 1 {
		t.Fatalf("期望1行，实际=%d", len(resp.Rows))
	}
	row := resp.Rows[0]
	if len(row.Cells) != 2 {
		t.Errorf("期望2个排班格，实际=%d", len(row.Cells))
	}
	if !row.MonthPrimarySum.Equal(dec(14)) {
		t.Errorf("期望月主岗合计=14，实际=%s", row.MonthPrimarySum)
	}
	if !row.MonthTotalSum.Equal(dec(16)) {
		t.Errorf("期望月总合计=16，实际=%s", row.MonthTotalSum)
	}
}

func TestRosterService_MonthGrid_InvalidPeriod(t *testing.T) {
	svc, _ := setupTestRosterService()

	_, err := svc.MonthGrid(context.Background(), 2026, 13, "")
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("期望 ErrInvalidPeriod，实际: %v", err)
	}
}
