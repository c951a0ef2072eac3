package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/model"
)

// ── 测试辅助 ──

func setupTestAllocationService() (AllocationService, *mockRepos) {
	repo, m := newMockRepos()
	svc := NewAllocationService(repo, FirstSlotOverflow{}, zap.NewNop())
	return svc, m
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// ── RemainingPrimaryTarget 测试 ──

func TestAllocationService_Remaining_NoTarget_Unconstrained(t *testing.T) {
	svc, _ := setupTestAllocationService()

	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rt, err := svc.RemainingPrimaryTarget(context.Background(), "row-001", 2026, 3, asOf, AllocationModeDay, decimal.Zero)
	if err != nil {
		t.Fatalf("RemainingPrimaryTarget 应成功: %v", err)
	}
	if !rt.Unconstrained {
		t.Error("未设目标时应视为不设上限")
	}
}

func TestAllocationService_Remaining_ZeroTarget_Unconstrained(t *testing.T) {
	svc, m := setupTestAllocationService()
	m.target.targets[targetKey("row-001", 2026, 3)] = &model.MonthlyTarget{
		RowID: "row-001", Year: 2026, Month: 3,
		PrimaryTargetHours: decimal.Zero,
	}

	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rt, err := svc.RemainingPrimaryTarget(context.Background(), "row-001", 2026, 3, asOf, AllocationModeDay, decimal.Zero)
	if err != nil {
		t.Fatalf("RemainingPrimaryTarget 应成功: %v", err)
	}
	if !rt.Unconstrained {
		t.Error("零目标应解释为不设上限，而非上限为零")
	}
}

func TestAllocationService_Remaining_DayMode_SubtractsPriorAndCarryIn(t *testing.T) {
	svc, m := setupTestAllocationService()
	m.target.targets[targetKey("row-001", 2026, 3)] = &model.MonthlyTarget{
		RowID: "row-001", Year: 2026, Month: 3,
		PrimaryTargetHours: dec(160),
	}
	// 3月1日~9日已累计 40 小时主岗工时
	m.rosterEntry.entries["entry-1"] = &model.RosterEntry{
		EntryID: "entry-1", RowID: "row-001",
		DutyDate:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		PrimaryHours: dec(40),
	}
	// 10日当天的条目不计入先行工时（区间为 [月初, asOfDate)）
	m.rosterEntry.entries["entry-2"] = &model.RosterEntry{
		EntryID: "entry-2", RowID: "row-001",
		DutyDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		PrimaryHours: dec(8),
	}

	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rt, err := svc.RemainingPrimaryTarget(context.Background(), "row-001", 2026, 3, asOf, AllocationModeDay, dec(20))
	if err != nil {
		t.Fatalf("RemainingPrimaryTarget 应成功: %v", err)
	}
	if rt.Unconstrained {
		t.Fatal("已设目标不应为不设上限")
	}
	// 160 − (40 先行 + 20 结转) = 100
	if !rt.Hours.Equal(dec(100)) {
		t.Errorf("期望剩余=100，实际=%s", rt.Hours)
	}
}

func TestAllocationService_Remaining_MonthMode_IgnoresPrior(t *testing.T) {
	svc, m := setupTestAllocationService()
	m.target.targets[targetKey("row-001", 2026, 3)] = &model.MonthlyTarget{
		RowID: "row-001", Year: 2026, Month: 3,
		PrimaryTargetHours: dec(160),
	}
	m.rosterEntry.entries["entry-1"] = &model.RosterEntry{
		EntryID: "entry-1", RowID: "row-001",
		DutyDate:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		PrimaryHours: dec(40),
	}

	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rt, err := svc.RemainingPrimaryTarget(context.Background(), "row-001", 2026, 3, asOf, AllocationModeMonth, decimal.Zero)
	if err != nil {
		t.Fatalf("RemainingPrimaryTarget 应成功: %v", err)
	}
	// 月模式整月即一格，先行工时不扣
	if !rt.Hours.Equal(dec(160)) {
		t.Errorf("期望剩余=160，实际=%s", rt.Hours)
	}
}

func TestAllocationService_Remaining_FloorsAtZero(t *testing.T) {
	svc, m := setupTestAllocationService()
	m.target.targets[targetKey("row-001", 2026, 3)] = &model.MonthlyTarget{
		RowID: "row-001", Year: 2026, Month: 3,
		PrimaryTargetHours: dec(100),
	}
	m.rosterEntry.entries["entry-1"] = &model.RosterEntry{
		EntryID: "entry-1", RowID: "row-001",
		DutyDate:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		PrimaryHours: dec(120),
	}

	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rt, err := svc.RemainingPrimaryTarget(context.Background(), "row-001", 2026, 3, asOf, AllocationModeDay, decimal.Zero)
	if err != nil {
		t.Fatalf("RemainingPrimaryTarget 应成功: %v", err)
	}
	if !rt.Hours.Equal(decimal.Zero) {
		t.Errorf("超额累计后剩余应钳位为0，实际=%s", rt.Hours)
	}
}

func TestAllocationService_Remaining_InvalidMode(t *testing.T) {
	svc, m := setupTestAllocationService()
	m.target.targets[targetKey("row-001", 2026, 3)] = &model.MonthlyTarget{
		RowID: "row-001", Year: 2026, Month: 3,
		PrimaryTargetHours: dec(160),
	}

	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.RemainingPrimaryTarget(context.Background(), "row-001", 2026, 3, asOf, AllocationMode("week"), decimal.Zero)
	if !errors.Is(err, ErrInvalidMode) {
		t.Errorf("期望 ErrInvalidMode，实际: %v", err)
	}
}

// ── Allocate 测试 ──

func TestAllocationService_Allocate_WithinTarget(t *testing.T) {
	svc, _ := setupTestAllocationService()

	primary, assignments, overflowed, err := svc.Allocate(
		dec(8), RemainingTarget{Hours: dec(10)}, nil, "guard-fallback")
	if err != nil {
		t.Fatalf("Allocate 应成功: %v", err)
	}
	if !primary.Equal(dec(8)) {
		t.Errorf("期望主岗=8，实际=%s", primary)
	}
	if len(assignments) != 0 {
		t.Errorf("未溢出不应产生协岗槽位，实际=%d个", len(assignments))
	}
	if overflowed {
		t.Error("未超目标不应标记溢出")
	}
}

func TestAllocationService_Allocate_OverflowToFirstSlot(t *testing.T) {
	svc, _ := setupTestAllocationService()

	existing := []dto.AssignmentInput{
		{GuardID: "guard-b", Hours: dec(3)},
		{GuardID: "guard-c", Hours: dec(2)},
	}
	primary, assignments, overflowed, err := svc.Allocate(
		dec(12), RemainingTarget{Hours: dec(8)}, existing, "guard-fallback")
	if err != nil {
		t.Fatalf("Allocate 应成功: %v", err)
	}
	if !primary.Equal(dec(8)) {
		t.Errorf("期望主岗截断为8，实际=%s", primary)
	}
	if !overflowed {
		t.Error("超目标应标记溢出")
	}
	// 溢出全量给首槽位，其余清零
	if len(assignments) != 2 {
		t.Fatalf("期望2个槽位，实际=%d", len(assignments))
	}
	if assignments[0].GuardID != "guard-b" || !assignments[0].Hours.Equal(dec(4)) {
		t.Errorf("首槽位应得全部溢出4小时，实际=%s/%s", assignments[0].GuardID, assignments[0].Hours)
	}
	if !assignments[1].Hours.Equal(decimal.Zero) {
		t.Errorf("其余槽位应清零，实际=%s", assignments[1].Hours)
	}
}

func TestAllocationService_Allocate_Overflow_NewSlotFromFallback(t *testing.T) {
	svc, _ := setupTestAllocationService()

	primary, assignments, overflowed, err := svc.Allocate(
		dec(12), RemainingTarget{Hours: dec(8)}, nil, "guard-fallback")
	if err != nil {
		t.Fatalf("Allocate 应成功: %v", err)
	}
	if !primary.Equal(dec(8)) || !overflowed {
		t.Fatalf("期望主岗=8且溢出，实际 primary=%s overflowed=%v", primary, overflowed)
	}
	if len(assignments) != 1 {
		t.Fatalf("无既有槽位时应新建首槽位，实际=%d个", len(assignments))
	}
	if assignments[0].GuardID != "guard-fallback" || !assignments[0].Hours.Equal(dec(4)) {
		t.Errorf("新建槽位应为兜底保安4小时，实际=%s/%s", assignments[0].GuardID, assignments[0].Hours)
	}
}

func TestAllocationService_Allocate_Unconstrained(t *testing.T) {
	svc, _ := setupTestAllocationService()

	primary, assignments, overflowed, err := svc.Allocate(
		dec(200), RemainingTarget{Unconstrained: true}, nil, "guard-fallback")
	if err != nil {
		t.Fatalf("Allocate 应成功: %v", err)
	}
	if !primary.Equal(dec(200)) {
		t.Errorf("不设上限时主岗应得全部工时，实际=%s", primary)
	}
	if overflowed || len(assignments) != 0 {
		t.Error("不设上限不应溢出")
	}
}

func TestAllocationService_Allocate_NegativeHours(t *testing.T) {
	svc, _ := setupTestAllocationService()

	_, _, _, err := svc.Allocate(dec(-1), RemainingTarget{Hours: dec(8)}, nil, "guard-fallback")
	if !errors.Is(err, ErrNegativeHours) {
		t.Errorf("期望 ErrNegativeHours，实际: %v", err)
	}
}

// ── ReverseFromPrimary 测试 ──

func TestAllocationService_ReverseFromPrimary_Clamps(t *testing.T) {
	svc, _ := setupTestAllocationService()

	primary, total, err := svc.ReverseFromPrimary(dec(12), RemainingTarget{Hours: dec(8)}, dec(3))
	if err != nil {
		t.Fatalf("ReverseFromPrimary 应成功: %v", err)
	}
	if !primary.Equal(dec(8)) {
		t.Errorf("主岗应钳位为8，实际=%s", primary)
	}
	// 总工时 = 钳位主岗 + 协岗合计，协岗不动
	if !total.Equal(dec(11)) {
		t.Errorf("期望总工时=11，实际=%s", total)
	}
}

func TestAllocationService_ReverseFromPrimary_Negative(t *testing.T) {
	svc, _ := setupTestAllocationService()

	_, _, err := svc.ReverseFromPrimary(dec(-5), RemainingTarget{Hours: dec(8)}, decimal.Zero)
	if !errors.Is(err, ErrNegativeHours) {
		t.Errorf("期望 ErrNegativeHours，实际: %v", err)
	}
}
