package service

import (
	"cmp"
	"database/sql"
	"slices"
	"sync"
	"time"

	"github.com/storeops-dev/shift-availability/backend/internal/domain"
)

// mockStore 是 Store 的内存实现，语义和 repository 的 SQL 实现保持一致：
// ReplaceEmployeeReservations 在一把锁内完成删除、重新计数和插入，
// 失败时不留下任何修改，因此也可以用来测试并发提交
type mockStore struct {
	mu                sync.Mutex
	employees         map[int64]*domain.Employee
	employeeIDsByName map[string]int64
	shifts            map[int64]*domain.Shift
	shiftOrder        []int64
	reservations      []*domain.Reservation
	nextEmployeeID    int64
	nextReservationID int64
}

func newMockStore() *mockStore {
	store := &mockStore{
		employees:         make(map[int64]*domain.Employee),
		employeeIDsByName: make(map[string]int64),
		shifts:            make(map[int64]*domain.Shift),
		shiftOrder:        make([]int64, 0, 14),
		reservations:      make([]*domain.Reservation, 0),
	}

	// 预置完整的班次目录，id 从 1 开始，顺序和数据库中按天数、时间段排序的结果一致
	for i, shift := range domain.CatalogShifts(8) {
		s := shift
		s.ID = int64(i + 1)
		store.shifts[s.ID] = &s
		store.shiftOrder = append(store.shiftOrder, s.ID)
	}

	return store
}

func (m *mockStore) UpsertEmployeeByFullName(fullName string) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, exists := m.employeeIDsByName[fullName]; exists {
		employee := *m.employees[id]
		return &employee, nil
	}

	m.nextEmployeeID++
	employee := &domain.Employee{
		ID:        m.nextEmployeeID,
		FullName:  fullName,
		CreatedAt: time.Now(),
	}
	m.employees[employee.ID] = employee
	m.employeeIDsByName[fullName] = employee.ID

	result := *employee
	return &result, nil
}

func (m *mockStore) GetEmployeeByID(id int64) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	employee, exists := m.employees[id]
	if !exists {
		return nil, sql.ErrNoRows
	}
	result := *employee
	return &result, nil
}

func (m *mockStore) GetAllShifts() ([]*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	shifts := make([]*domain.Shift, 0, len(m.shiftOrder))
	for _, id := range m.shiftOrder {
		shift := *m.shifts[id]
		shifts = append(shifts, &shift)
	}
	return shifts, nil
}

func (m *mockStore) GetShiftsByIDs(ids []int64) ([]*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	shifts := make([]*domain.Shift, 0, len(ids))
	for _, id := range ids {
		if shift, exists := m.shifts[id]; exists {
			s := *shift
			shifts = append(shifts, &s)
		}
	}
	slices.SortFunc(shifts, func(a, b *domain.Shift) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return shifts, nil
}

func (m *mockStore) GetReservationCountsByShiftIDs(shiftIDs []int64) (map[int64]int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[int64]int32, len(shiftIDs))
	for _, reservation := range m.reservations {
		if slices.Contains(shiftIDs, reservation.ShiftID) {
			counts[reservation.ShiftID]++
		}
	}
	return counts, nil
}

func (m *mockStore) GetReservationsByEmployeeID(employeeID int64) ([]*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reservations := make([]*domain.Reservation, 0)
	for _, reservation := range m.reservations {
		if reservation.EmployeeID == employeeID {
			r := *reservation
			reservations = append(reservations, &r)
		}
	}
	slices.SortFunc(reservations, func(a, b *domain.Reservation) int {
		return cmp.Compare(a.ShiftID, b.ShiftID)
	})
	return reservations, nil
}

func (m *mockStore) ReplaceEmployeeReservations(employeeID int64, shifts []*domain.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 先在内存中算出删除旧登记后的状态，全部检查通过才真正替换，
	// 检查失败时不做任何修改，等价于 SQL 实现中的整体回滚
	kept := make([]*domain.Reservation, 0, len(m.reservations))
	for _, reservation := range m.reservations {
		if reservation.EmployeeID != employeeID {
			kept = append(kept, reservation)
		}
	}

	counts := make(map[int64]int32)
	for _, reservation := range kept {
		counts[reservation.ShiftID]++
	}

	for _, shift := range shifts {
		if _, exists := m.shifts[shift.ID]; !exists {
			return domain.ErrShiftNotFound
		}
		if counts[shift.ID] >= shift.MaxCapacity {
			return &domain.ShiftFullError{ShiftID: shift.ID, Label: shift.Label()}
		}
	}

	submittedAt := time.Now()
	for _, shift := range shifts {
		m.nextReservationID++
		kept = append(kept, &domain.Reservation{
			ID:          m.nextReservationID,
			EmployeeID:  employeeID,
			ShiftID:     shift.ID,
			SubmittedAt: submittedAt,
		})
	}

	m.reservations = kept
	return nil
}

func (m *mockStore) GetAllShiftsWithEmployees() ([]*domain.RosterShift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rosterShifts := make([]*domain.RosterShift, 0, len(m.shiftOrder))
	for _, shiftID := range m.shiftOrder {
		shift := m.shifts[shiftID]

		shiftReservations := make([]*domain.Reservation, 0)
		for _, reservation := range m.reservations {
			if reservation.ShiftID == shiftID {
				shiftReservations = append(shiftReservations, reservation)
			}
		}
		slices.SortFunc(shiftReservations, func(a, b *domain.Reservation) int {
			if c := a.SubmittedAt.Compare(b.SubmittedAt); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})

		rosterShift := &domain.RosterShift{
			Shift:     *shift,
			Employees: make([]string, 0, len(shiftReservations)),
			Count:     int32(len(shiftReservations)),
		}
		for _, reservation := range shiftReservations {
			rosterShift.Employees = append(rosterShift.Employees, m.employees[reservation.EmployeeID].FullName)
		}
		rosterShifts = append(rosterShifts, rosterShift)
	}

	return rosterShifts, nil
}

// addEmployee 直接向 mock 中塞入一个员工，用于准备测试数据
func (m *mockStore) addEmployee(fullName string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextEmployeeID++
	employee := &domain.Employee{
		ID:        m.nextEmployeeID,
		FullName:  fullName,
		CreatedAt: time.Now(),
	}
	m.employees[employee.ID] = employee
	m.employeeIDsByName[fullName] = employee.ID
	return employee.ID
}

// addReservation 直接向 mock 中塞入一条登记，绕过所有业务校验
func (m *mockStore) addReservation(employeeID, shiftID int64, submittedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextReservationID++
	m.reservations = append(m.reservations, &domain.Reservation{
		ID:          m.nextReservationID,
		EmployeeID:  employeeID,
		ShiftID:     shiftID,
		SubmittedAt: submittedAt,
	})
}

// shiftIDByDaySlot 按 (天数, 时间段) 查找班次 id，方便测试用语义化的方式引用班次
func (m *mockStore) shiftIDByDaySlot(day int32, slot string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, shift := range m.shifts {
		if shift.DayOfWeek == day && shift.TimeSlot == slot {
			return shift.ID
		}
	}
	return 0
}
