package service

import "github.com/storeops-dev/shift-availability/backend/internal/domain"

// Store 是服务层依赖的持久化能力，由 repository.Repository 实现。
// 抽成接口是为了让服务层的业务规则可以脱离数据库测试
type Store interface {
	UpsertEmployeeByFullName(fullName string) (*domain.Employee, error)
	GetEmployeeByID(id int64) (*domain.Employee, error)
	GetAllShifts() ([]*domain.Shift, error)
	GetShiftsByIDs(ids []int64) ([]*domain.Shift, error)
	GetReservationCountsByShiftIDs(shiftIDs []int64) (map[int64]int32, error)
	GetReservationsByEmployeeID(employeeID int64) ([]*domain.Reservation, error)
	ReplaceEmployeeReservations(employeeID int64, shifts []*domain.Shift) error
	GetAllShiftsWithEmployees() ([]*domain.RosterShift, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
	}
}
