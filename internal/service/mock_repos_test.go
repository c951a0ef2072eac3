package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/model"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.EmployeeNo
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmployeeNo(_ context.Context, employeeNo string) (*model.User, error) {
	for _, u := range m.users {
		if u.EmployeeNo == employeeNo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, role, keyword string, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if keyword != "" && !strings.Contains(u.Name, keyword) && !strings.Contains(u.EmployeeNo, keyword) {
			continue
		}
		result = append(result, *u)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id, hash string, mustChange bool) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = hash
	u.MustChangePassword = mustChange
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock GuardRowRepository ──

type mockGuardRowRepo struct {
	rows map[string]*model.GuardRow
}

func newMockGuardRowRepo() *mockGuardRowRepo {
	return &mockGuardRowRepo{rows: make(map[string]*model.GuardRow)}
}

func (m *mockGuardRowRepo) Create(_ context.Context, row *model.GuardRow) error {
	if row.RowID == "" {
		row.RowID = fmt.Sprintf("row-%d", len(m.rows)+1)
	}
	m.rows[row.RowID] = row
	return nil
}

func (m *mockGuardRowRepo) GetByID(_ context.Context, id string) (*model.GuardRow, error) {
	if r, ok := m.rows[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGuardRowRepo) List(_ context.Context, activeOnly bool, offset, limit int) ([]model.GuardRow, int64, error) {
	var result []model.GuardRow
	for _, r := range m.rows {
		if activeOnly && !r.IsActive {
			continue
		}
		result = append(result, *r)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockGuardRowRepo) Update(_ context.Context, row *model.GuardRow) error {
	if _, ok := m.rows[row.RowID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.rows[row.RowID] = row
	return nil
}

func (m *mockGuardRowRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.rows, id)
	return nil
}

// ── Mock RosterEntryRepository ──

type mockRosterEntryRepo struct {
	entries   map[string]*model.RosterEntry
	idCounter int
}

func newMockRosterEntryRepo() *mockRosterEntryRepo {
	return &mockRosterEntryRepo{entries: make(map[string]*model.RosterEntry)}
}

func (m *mockRosterEntryRepo) Create(_ context.Context, entry *model.RosterEntry) error {
	if entry.EntryID == "" {
		m.idCounter++
		entry.EntryID = fmt.Sprintf("entry-%d", m.idCounter)
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockRosterEntryRepo) GetByID(_ context.Context, id string) (*model.RosterEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRosterEntryRepo) GetByRowAndDate(_ context.Context, rowID string, date time.Time) (*model.RosterEntry, error) {
	for _, e := range m.entries {
		if e.RowID == rowID && e.DutyDate.Equal(date) {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRosterEntryRepo) ListByRowBetween(_ context.Context, rowID string, from, to time.Time) ([]model.RosterEntry, error) {
	var result []model.RosterEntry
	for _, e := range m.entries {
		if e.RowID == rowID && !e.DutyDate.Before(from) && e.DutyDate.Before(to) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockRosterEntryRepo) ListByMonth(_ context.Context, year, month int) ([]model.RosterEntry, error) {
	var result []model.RosterEntry
	for _, e := range m.entries {
		if e.DutyDate.Year() == year && int(e.DutyDate.Month()) == month {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockRosterEntryRepo) SumPrimaryHours(_ context.Context, rowID string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.RowID == rowID && !e.DutyDate.Before(from) && e.DutyDate.Before(to) {
			sum = sum.Add(e.PrimaryHours)
		}
	}
	return sum, nil
}

func (m *mockRosterEntryRepo) Update(_ context.Context, entry *model.RosterEntry) error {
	if _, ok := m.entries[entry.EntryID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockRosterEntryRepo) UpdateStatus(_ context.Context, id, status string, _ string) error {
	e, ok := m.entries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Status = status
	return nil
}

func (m *mockRosterEntryRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.entries, id)
	return nil
}

// ── Mock MonthlyTargetRepository ──

type mockTargetRepo struct {
	targets map[string]*model.MonthlyTarget
}

func newMockTargetRepo() *mockTargetRepo {
	return &mockTargetRepo{targets: make(map[string]*model.MonthlyTarget)}
}

func targetKey(rowID string, year, month int) string {
	return fmt.Sprintf("%s/%d-%d", rowID, year, month)
}

func (m *mockTargetRepo) GetByRowPeriod(_ context.Context, rowID string, year, month int) (*model.MonthlyTarget, error) {
	if t, ok := m.targets[targetKey(rowID, year, month)]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTargetRepo) Upsert(_ context.Context, target *model.MonthlyTarget) error {
	if target.TargetID == "" {
		target.TargetID = "target-" + targetKey(target.RowID, target.Year, target.Month)
	}
	m.targets[targetKey(target.RowID, target.Year, target.Month)] = target
	return nil
}

func (m *mockTargetRepo) Delete(_ context.Context, id string, _ string) error {
	for k, t := range m.targets {
		if t.TargetID == id {
			delete(m.targets, k)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock MonthlyHoursRepository ──

type mockMonthlyHoursRepo struct {
	records   map[string]*model.MonthlyHoursRecord
	idCounter int
	saveErr   error // 注入 Save 失败
}

func newMockMonthlyHoursRepo() *mockMonthlyHoursRepo {
	return &mockMonthlyHoursRepo{records: make(map[string]*model.MonthlyHoursRecord)}
}

func hoursKey(guardID string, year, month int) string {
	return fmt.Sprintf("%s/%d-%d", guardID, year, month)
}

func (m *mockMonthlyHoursRepo) GetByGuardPeriod(_ context.Context, guardID string, year, month int) (*model.MonthlyHoursRecord, error) {
	if r, ok := m.records[hoursKey(guardID, year, month)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMonthlyHoursRepo) ListByPeriod(_ context.Context, year, month int) ([]model.MonthlyHoursRecord, error) {
	var result []model.MonthlyHoursRecord
	for _, r := range m.records {
		if r.Year == year && r.Month == month {
			result = append(result, *r)
		}
	}
	return result, nil
}

// Save 模拟 GORM Save：与真实实现一样触发 BeforeSave 重算剩余工时
func (m *mockMonthlyHoursRepo) Save(_ context.Context, record *model.MonthlyHoursRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if record.RecordID == "" {
		m.idCounter++
		record.RecordID = fmt.Sprintf("mh-%d", m.idCounter)
	}
	record.RecomputeRemaining()
	m.records[hoursKey(record.GuardID, record.Year, record.Month)] = record
	return nil
}

func (m *mockMonthlyHoursRepo) Delete(_ context.Context, id string, _ string) error {
	for k, r := range m.records {
		if r.RecordID == id {
			delete(m.records, k)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock PayrollRepository ──

type mockPayrollRepo struct {
	payrolls  map[string]*model.PayrollRecord
	idCounter int
	// listErrFor 指定保安的 ListByGuardPeriod 注入失败（批量隔离测试用）
	listErrFor map[string]error
}

func newMockPayrollRepo() *mockPayrollRepo {
	return &mockPayrollRepo{
		payrolls:   make(map[string]*model.PayrollRecord),
		listErrFor: make(map[string]error),
	}
}

func (m *mockPayrollRepo) Create(_ context.Context, record *model.PayrollRecord) error {
	if record.PayrollID == "" {
		m.idCounter++
		record.PayrollID = fmt.Sprintf("pay-%d", m.idCounter)
	}
	m.payrolls[record.PayrollID] = record
	return nil
}

func (m *mockPayrollRepo) GetByID(_ context.Context, id string) (*model.PayrollRecord, error) {
	if p, ok := m.payrolls[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPayrollRepo) ListByGuardPeriod(_ context.Context, guardID string, year, month int) ([]model.PayrollRecord, error) {
	if err, ok := m.listErrFor[guardID]; ok {
		return nil, err
	}
	var result []model.PayrollRecord
	for _, p := range m.payrolls {
		if p.GuardID == guardID && p.Year == year && p.Month == month {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPayrollRepo) ListByPeriod(_ context.Context, year, month int) ([]model.PayrollRecord, error) {
	var result []model.PayrollRecord
	for _, p := range m.payrolls {
		if p.Year == year && p.Month == month {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPayrollRepo) Update(_ context.Context, record *model.PayrollRecord) error {
	if _, ok := m.payrolls[record.PayrollID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.payrolls[record.PayrollID] = record
	return nil
}

func (m *mockPayrollRepo) BulkUpdateHours(_ context.Context, guardID string, year, month, hours, minutes int) (int64, error) {
	var updated int64
	for _, p := range m.payrolls {
		if p.GuardID == guardID && p.Year == year && p.Month == month {
			p.TotalHours = hours
			p.TotalMinutes = minutes
			updated++
		}
	}
	return updated, nil
}

func (m *mockPayrollRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.payrolls[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.payrolls, id)
	return nil
}

// ── Mock AlertRepository ──

type mockAlertRepo struct {
	alerts    map[string]*model.Alert
	idCounter int
	// failOnKind 指定问题种类的写入注入失败（扇出隔离测试用）
	failOnKind string
}

func newMockAlertRepo() *mockAlertRepo {
	return &mockAlertRepo{alerts: make(map[string]*model.Alert)}
}

func (m *mockAlertRepo) Create(_ context.Context, alert *model.Alert) error {
	if m.failOnKind != "" && alert.RelatedData != nil && alert.RelatedData["kind"] == m.failOnKind {
		return fmt.Errorf("模拟告警写入失败")
	}
	m.idCounter++
	alert.AlertID = fmt.Sprintf("alert-%d", m.idCounter)
	m.alerts[alert.AlertID] = alert
	return nil
}

func (m *mockAlertRepo) GetByID(_ context.Context, id string) (*model.Alert, error) {
	if a, ok := m.alerts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAlertRepo) List(_ context.Context, filter repository.AlertFilter) ([]model.Alert, int64, error) {
	var result []model.Alert
	for _, a := range m.alerts {
		if filter.GuardID != "" && a.GuardID != filter.GuardID {
			continue
		}
		if filter.AlertType != "" && a.AlertType != filter.AlertType {
			continue
		}
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		if filter.OnlyUnread && a.IsRead {
			continue
		}
		result = append(result, *a)
	}
	return result, int64(len(result)), nil
}

func (m *mockAlertRepo) MarkRead(_ context.Context, id string) error {
	a, ok := m.alerts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.IsRead = true
	return nil
}

func (m *mockAlertRepo) Resolve(_ context.Context, id string) error {
	a, ok := m.alerts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.IsRead = true
	a.IsResolved = true
	return nil
}

// ── 组装测试用 Repository 聚合 ──

type mockRepos struct {
	user         *mockUserRepo
	guardRow     *mockGuardRowRepo
	rosterEntry  *mockRosterEntryRepo
	target       *mockTargetRepo
	monthlyHours *mockMonthlyHoursRepo
	payroll      *mockPayrollRepo
	alert        *mockAlertRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		user:         newMockUserRepo(),
		guardRow:     newMockGuardRowRepo(),
		rosterEntry:  newMockRosterEntryRepo(),
		target:       newMockTargetRepo(),
		monthlyHours: newMockMonthlyHoursRepo(),
		payroll:      newMockPayrollRepo(),
		alert:        newMockAlertRepo(),
	}
	repo := &repository.Repository{
		User:         m.user,
		GuardRow:     m.guardRow,
		RosterEntry:  m.rosterEntry,
		Target:       m.target,
		MonthlyHours: m.monthlyHours,
		Payroll:      m.payroll,
		Alert:        m.alert,
	}
	return repo, m
}
