package service

import (
	"slices"
	"strings"

	"github.com/storeops-dev/shift-availability/backend/internal/domain"
	"github.com/storeops-dev/shift-availability/backend/internal/utils"
)

// GetAvailabilityView 返回渲染选择表单所需的数据：
// 按天分组的班次目录、每个班次的占用情况、该员工当前已登记的班次
func (s *Service) GetAvailabilityView(employeeID int64) (*domain.AvailabilityView, error) {
	if _, err := s.GetEmployee(employeeID); err != nil {
		return nil, err
	}

	rosterShifts, err := s.store.GetAllShiftsWithEmployees()
	if err != nil {
		return nil, err
	}

	view := &domain.AvailabilityView{
		ShiftsByDay:      groupShiftsByDay(rosterShifts),
		OccupancyByShift: make(map[int64]domain.ShiftOccupancy, len(rosterShifts)),
		SelectedShiftIDs: make([]int64, 0),
	}

	for _, rosterShift := range rosterShifts {
		// 占用情况中的姓名按拼音排序，保证展示顺序稳定
		names := slices.Clone(rosterShift.Employees)
		slices.SortFunc(names, func(a, b string) int {
			return strings.Compare(utils.NameSortKey(a), utils.NameSortKey(b))
		})

		view.OccupancyByShift[rosterShift.Shift.ID] = domain.ShiftOccupancy{
			Count:  rosterShift.Count,
			Names:  names,
			IsFull: rosterShift.Count >= rosterShift.Shift.MaxCapacity,
		}
	}

	reservations, err := s.store.GetReservationsByEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}
	for _, reservation := range reservations {
		view.SelectedShiftIDs = append(view.SelectedShiftIDs, reservation.ShiftID)
	}

	return view, nil
}

// GetRosterView 返回按天分组的完整名单，没有任何登记的班次也会出现，
// 每个班次下的员工按提交时间排序
func (s *Service) GetRosterView() ([]*domain.RosterDay, error) {
	rosterShifts, err := s.store.GetAllShiftsWithEmployees()
	if err != nil {
		return nil, err
	}

	rosterDays := make([]*domain.RosterDay, 0, 7)
	daysMap := make(map[int32]*domain.RosterDay)

	for _, rosterShift := range rosterShifts {
		day := rosterShift.Shift.DayOfWeek
		rosterDay, exists := daysMap[day]
		if !exists {
			rosterDay = &domain.RosterDay{
				Day:     day,
				DayName: domain.DayName(day),
				Shifts:  make([]domain.RosterShift, 0, 2),
			}
			daysMap[day] = rosterDay
			// 班次已按天数排序，按出现顺序收集即可
			rosterDays = append(rosterDays, rosterDay)
		}
		rosterDay.Shifts = append(rosterDay.Shifts, *rosterShift)
	}

	return rosterDays, nil
}

func groupShiftsByDay(rosterShifts []*domain.RosterShift) []domain.DayShifts {
	dayShifts := make([]domain.DayShifts, 0, 7)
	daysMap := make(map[int32]int)

	for _, rosterShift := range rosterShifts {
		day := rosterShift.Shift.DayOfWeek
		idx, exists := daysMap[day]
		if !exists {
			idx = len(dayShifts)
			daysMap[day] = idx
			dayShifts = append(dayShifts, domain.DayShifts{
				Day:     day,
				DayName: domain.DayName(day),
				Shifts:  make([]domain.Shift, 0, 2),
			})
		}
		dayShifts[idx].Shifts = append(dayShifts[idx].Shifts, rosterShift.Shift)
	}

	return dayShifts
}
