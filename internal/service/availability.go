package service

import (
	"database/sql"
	"errors"
	"slices"

	"github.com/storeops-dev/shift-availability/backend/internal/domain"
	"github.com/storeops-dev/shift-availability/backend/internal/utils"
)

// Identify 根据归一化后的姓名查找或创建员工。
// 同一个姓名的不同写法会归一化成同一条记录，重复调用不会产生重复员工
func (s *Service) Identify(name string) (*domain.Employee, error) {
	fullName := utils.NormalizeFullName(name)
	if fullName == "" {
		return nil, domain.ErrEmptyName
	}

	return s.store.UpsertEmployeeByFullName(fullName)
}

func (s *Service) GetEmployee(employeeID int64) (*domain.Employee, error) {
	employee, err := s.store.GetEmployeeByID(employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// SubmitAvailability 先在事务外做一次校验和容量预检查，再执行原子替换。
// 预检查通过不代表提交一定成功：并发提交可能在预检查之后填满某个班次，
// 所以 ReplaceEmployeeReservations 在事务内部还会重新检查一次容量。
// 返回本次成功登记的班次列表
func (s *Service) SubmitAvailability(employeeID int64, shiftIDs []int64) ([]*domain.Shift, error) {
	if _, err := s.GetEmployee(employeeID); err != nil {
		return nil, err
	}

	shifts, err := s.validateSelection(employeeID, shiftIDs)
	if err != nil {
		return nil, err
	}

	if err := s.store.ReplaceEmployeeReservations(employeeID, shifts); err != nil {
		return nil, err
	}

	return shifts, nil
}

// validateSelection 按固定顺序检查提交的班次选择：
// 非空 -> 班次存在 -> 覆盖 3~5 个不同的天 -> 每个班次的容量。
// 容量检查基于一次快照查询，并且不把该员工自己已有的登记算进去。
// 校验通过时返回选中的班次，整个过程不修改任何状态
func (s *Service) validateSelection(employeeID int64, shiftIDs []int64) ([]*domain.Shift, error) {
	// 去重
	ids := slices.Clone(shiftIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	if len(ids) == 0 {
		return nil, domain.ErrNoSelection
	}

	shifts, err := s.store.GetShiftsByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(shifts) != len(ids) {
		return nil, domain.ErrShiftNotFound
	}

	// 天数跨度
	days := make(map[int32]struct{})
	for _, shift := range shifts {
		days[shift.DayOfWeek] = struct{}{}
	}
	if len(days) < 3 {
		return nil, domain.ErrTooFewDays
	}
	if len(days) > 5 {
		return nil, domain.ErrTooManyDays
	}

	// 容量预检查
	counts, err := s.store.GetReservationCountsByShiftIDs(ids)
	if err != nil {
		return nil, err
	}

	reservations, err := s.store.GetReservationsByEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}
	held := make(map[int64]struct{}, len(reservations))
	for _, reservation := range reservations {
		held[reservation.ShiftID] = struct{}{}
	}

	for _, shift := range shifts {
		count := counts[shift.ID]
		if _, exists := held[shift.ID]; exists {
			// 该员工已经登记过这个班次，容量检查时不把自己算进去
			count--
		}
		if count >= shift.MaxCapacity {
			return nil, &domain.ShiftFullError{ShiftID: shift.ID, Label: shift.Label()}
		}
	}

	return shifts, nil
}
