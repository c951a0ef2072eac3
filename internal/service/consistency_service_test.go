package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/model"
)

// ── 测试辅助 ──

func setupTestConsistencyService() (ConsistencyService, *mockRepos) {
	repo, m := newMockRepos()
	sync := NewSyncService(repo, zap.NewNop())
	svc := NewConsistencyService(repo, sync, zap.NewNop())
	return svc, m
}

func findIssue(issues []dto.ConsistencyIssue, kind string) *dto.ConsistencyIssue {
	for i := range issues {
		if issues[i].Kind == kind {
			return &issues[i]
		}
	}
	return nil
}

// ── ValidateDataConsistency 测试 ──

func TestConsistencyService_Validate_Consistent(t *testing.T) {
	svc, m := setupTestConsistencyService()
	m.monthlyHours.records[hoursKey("guard-001", 2026, 3)] = &model.MonthlyHoursRecord{
		RecordID: "mh-1", GuardID: "guard-001", Year: 2026, Month: 3, TotalHours: 160,
	}
	m.payroll.payrolls["pay-1"] = &model.PayrollRecord{
		PayrollID: "pay-1", GuardID: "guard-001", Year: 2026, Month: 3, TotalHours: 160,
	}

	result, err := svc.ValidateDataConsistency(context.Background(), "guard-001", 2026, 3)
	if err != nil {
		t.Fatalf("ValidateDataConsistency 应成功: %v", err)
	}
	if !result.Consistent || len(result.Issues) != 0 {
		t.Errorf("数据一致时不应有问题，实际=%d个", len(result.Issues))
	}
}

func TestConsistencyService_Validate_HoursMismatch(t *testing.T) {
	svc, m := setupTestConsistencyService()
	m.monthlyHours.records[hoursKey("guard-001", 2026, 3)] = &model.MonthlyHoursRecord{
		RecordID: "mh-1", GuardID: "guard-001", Year: 2026, Month: 3, TotalHours: 160,
	}
	// 分两笔共 150 小时，与台账 160 不符
	m.payroll.payrolls["pay-1"] = &model.PayrollRecord{
		PayrollID: "pay-1", GuardID: "guard-001", Year: 2026, Month: 3, TotalHours: 100,
	}
	m.payroll.payrolls["pay-2"] = &model.PayrollRecord{
		PayrollID: "pay-2", GuardID: "guard-001", Year: 2026, Month: 3, TotalHours: 50,
	}

	result, err := svc.ValidateDataConsistency(context.Background(), "guard-001", 2026, 3)
	if err != nil {
		t.Fatalf("ValidateDataConsistency 应成功: %v", err)
	}
	if result.Consistent {
		t.Fatal("工时不一致应被发现")
	}
	issue := findIssue(result.Issues, dto.IssueHoursMismatch)
	if issue == nil {
		t.Fatal("期望 HOURS_MISMATCH 问题")
	}
	// 差值带符号：工资侧 − 台账侧
	if issue.Detail["difference"] != -10 {
		t.Errorf("期望差值=-10，实际=%v", issue.Detail["difference"])
	}
}

func TestConsistencyService_Validate_MissingPayroll(t *testing.T) {
	svc, m := setupTestConsistencyService()
	m.monthlyHours.records[hoursKey("guard-001", 2026, 3)] = &model.MonthlyHoursRecord{
		RecordID: "mh-1", GuardID: "guard-001", Year: 2026, Month: 3, TotalHours: 160,
	}

	result, err := svc.ValidateDataConsistency(context.Background(), "guard-001", 2026, 3)
	if err != nil {
		t.Fatalf("ValidateDataConsistency 应成功: %v", err)
	}
	if findIssue(result.Issues, dto.IssueMissingPayroll) == nil {
		t.Error("已工作但无工资记录应报 MISSING_PAYROLL")
	}
	// 零笔工资时工时合计为0 ≠ 160，MISMATCH 同时成立
	if findIssue(result.Issues, dto.IssueHoursMismatch) == nil {
		t.Error("零笔工资时 HOURS_MISMATCH 应同时成立")
	}
}

func TestConsistencyService_Validate_Overpaid(t *testing.T) {
	svc, m := setupTestConsistencyService()
	// 直接改库才会出现的负剩余
	m.monthlyHours.records[hoursKey("guard-001", 2026, 3)] = &model.MonthlyHoursRecord{
		RecordID: "mh-1", GuardID: "guard-001", Year: 2026, Month: 3,
		TotalHours: 100, PaidHours: 120, RemainingHours: -20,
	}
	m.payroll.payrolls["pay-1"] = &model.PayrollRecord{
		PayrollID: "pay-1", GuardID: "guard-001", Year: 2026, Month: 3, TotalHours: 100,
	}

	result, err := svc.ValidateDataConsistency(context.Background(), "guard-001", 2026, 3)
	if err != nil {
		t.Fatalf("ValidateDataConsistency 应成功: %v", err)
	}
	issue := findIssue(result.Issues, dto.IssueOverpaid)
	if issue == nil {
		t.Fatal("负剩余应报 OVERPAID")
	}
	if issue.Detail["overpaid_hours"] != 20 {
		t.Errorf("期望超付20小时，实际=%v", issue.Detail["overpaid_hours"])
	}
}

func TestConsistencyService_Validate_NoRecord(t *testing.T) {
	svc, _ := setupTestConsistencyService()

	result, err := svc.ValidateDataConsistency(context.Background(), "guard-001", 2026, 3)
	if err != nil {
		t.Fatalf("台账不存在不是错误: %v", err)
	}
	if !result.Consistent {
		t.Error("无台账无工资时视为一致")
	}
}

func TestConsistencyService_Validate_InvalidPeriod(t *testing.T) {
	svc, _ := setupTestConsistencyService()

	_, err := svc.ValidateDataConsistency(context.Background(), "guard-001", 2026, 0)
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("期望 ErrInvalidPeriod，实际: %v", err)
	}
}

// ── CreateConsistencyAlert 测试 ──

func TestConsistencyService_CreateAlert_FanOut(t *testing.T) {
	svc, m := setupTestConsistencyService()

	issues := []dto.ConsistencyIssue{
		{Kind: dto.IssueHoursMismatch, GuardID: "guard-001", Year: 2026, Month: 3,
			Detail: map[string]interface{}{"difference": -10}},
		{Kind: dto.IssueOverpaid, GuardID: "guard-001", Year: 2026, Month: 3,
			Detail: map[string]interface{}{"overpaid_hours": 5}},
	}
	resp, err := svc.CreateConsistencyAlert(context.Background(), "guard-001", 2026, 3, issues)
	if err != nil {
		t.Fatalf("CreateConsistencyAlert 应成功: %v", err)
	}
	if resp.AlertsCreated != 2 {
		t.Errorf("期望创建2条告警，实际=%d", resp.AlertsCreated)
	}
	// 超付映射为 critical 级 overpayment_risk
	var foundCritical bool
	for _, a := range m.alert.alerts {
		if a.AlertType == model.AlertTypeOverpaymentRisk && a.Severity == model.AlertSeverityCritical {
			foundCritical = true
		}
	}
	if !foundCritical {
		t.Error("OVERPAID 问题应落为 critical 级 overpayment_risk 告警")
	}
}

func TestConsistencyService_CreateAlert_PartialFailure(t *testing.T) {
	svc, m := setupTestConsistencyService()
	m.alert.failOnKind = dto.IssueHoursMismatch

	issues := []dto.ConsistencyIssue{
		{Kind: dto.IssueHoursMismatch, GuardID: "guard-001", Year: 2026, Month: 3,
			Detail: map[string]interface{}{"difference": -10}},
		{Kind: dto.IssueMissingPayroll, GuardID: "guard-001", Year: 2026, Month: 3,
			Detail: map[string]interface{}{"monthly_total_hours": 160}},
	}
	resp, err := svc.CreateConsistencyAlert(context.Background(), "guard-001", 2026, 3, issues)
	if err != nil {
		t.Fatalf("单条失败不应让整体返回错误: %v", err)
	}
	if resp.AlertsCreated != 1 {
		t.Errorf("失败1条后其余仍应写入，期望创建1条，实际=%d", resp.AlertsCreated)
	}
	if len(resp.Errors) != 1 {
		t.Errorf("期望记录1条失败，实际=%d", len(resp.Errors))
	}
}

// ── BulkSyncMonth 测试 ──

func TestConsistencyService_BulkSync_IsolatesFailures(t *testing.T) {
	svc, m := setupTestConsistencyService()

	for i := 1; i <= 3; i++ {
		guardID := fmt.Sprintf("guard-%03d", i)
		m.monthlyHours.records[hoursKey(guardID, 2026, 3)] = &model.MonthlyHoursRecord{
			RecordID: fmt.Sprintf("mh-%d", i), GuardID: guardID, Year: 2026, Month: 3, TotalHours: 160,
		}
		m.payroll.payrolls[fmt.Sprintf("pay-%d", i)] = &model.PayrollRecord{
			PayrollID: fmt.Sprintf("pay-%d", i), GuardID: guardID, Year: 2026, Month: 3, TotalHours: 160,
		}
	}
	// guard-002 的工资查询注入失败
	m.payroll.listErrFor["guard-002"] = fmt.Errorf("模拟查询失败")

	resp, err := svc.BulkSyncMonth(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("BulkSyncMonth 应成功: %v", err)
	}
	if resp.Processed != 3 {
		t.Errorf("期望处理3条，实际=%d", resp.Processed)
	}
	if resp.Successful != 2 || resp.Failed != 1 {
		t.Errorf("期望成功2失败1，实际成功=%d失败=%d", resp.Successful, resp.Failed)
	}
	if len(resp.Errors) != 1 {
		t.Errorf("期望1条错误明细，实际=%d", len(resp.Errors))
	}
}

func TestConsistencyService_BulkSync_CreatesAlertsForInconsistent(t *testing.T) {
	svc, m := setupTestConsistencyService()

	// 一致的
	m.monthlyHours.records[hoursKey("guard-001", 2026, 3)] = &model.MonthlyHoursRecord{
		RecordID: "mh-1", GuardID: "guard-001", Year: 2026, Month: 3, TotalHours: 160,
	}
	m.payroll.payrolls["pay-1"] = &model.PayrollRecord{
		PayrollID: "pay-1", GuardID: "guard-001", Year: 2026, Month: 3, TotalHours: 160,
	}
	// 不一致的：有工时无工资
	m.monthlyHours.records[hoursKey("guard-002", 2026, 3)] = &model.MonthlyHoursRecord{
		RecordID: "mh-2", GuardID: "guard-002", Year: 2026, Month: 3, TotalHours: 100,
	}

	resp, err := svc.BulkSyncMonth(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("BulkSyncMonth 应成功: %v", err)
	}
	if resp.Successful != 2 {
		t.Errorf("不一致但告警写入成功也算 successful，期望2，实际=%d", resp.Successful)
	}
	if len(m.alert.alerts) == 0 {
		t.Error("不一致的台账应落告警")
	}
}
