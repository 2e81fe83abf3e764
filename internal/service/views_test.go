package service

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/storeops-dev/shift-availability/backend/internal/domain"
)

func TestService_GetAvailabilityView(t *testing.T) {
	svc, store := setupTestService()
	employeeID := store.addEmployee("Jane Doe")

	mondayMorning := store.shiftIDByDaySlot(0, domain.TimeSlotMorning)
	tuesdayMorning := store.shiftIDByDaySlot(1, domain.TimeSlotMorning)

	// Jane 已登记周一早班，另外把周二早班填满
	store.addReservation(employeeID, mondayMorning, time.Now())
	for i := 0; i < 8; i++ {
		otherID := store.addEmployee("占位员工" + string(rune('A'+i)))
		store.addReservation(otherID, tuesdayMorning, time.Now())
	}

	view, err := svc.GetAvailabilityView(employeeID)
	if err != nil {
		t.Fatalf("GetAvailabilityView 应成功: %v", err)
	}

	// 7 天都应出现，每天 2 个班次
	if len(view.ShiftsByDay) != 7 {
		t.Fatalf("期望 7 天，实际=%d", len(view.ShiftsByDay))
	}
	for _, dayShifts := range view.ShiftsByDay {
		if len(dayShifts.Shifts) != 2 {
			t.Errorf("期望 %s 有 2 个班次，实际=%d", dayShifts.DayName, len(dayShifts.Shifts))
		}
	}

	// 占用情况
	if occupancy := view.OccupancyByShift[mondayMorning]; occupancy.Count != 1 || occupancy.IsFull {
		t.Errorf("期望周一早班 1 人且未满，实际 count=%d isFull=%v", occupancy.Count, occupancy.IsFull)
	}
	if occupancy := view.OccupancyByShift[tuesdayMorning]; occupancy.Count != 8 || !occupancy.IsFull {
		t.Errorf("期望周二早班 8 人且已满，实际 count=%d isFull=%v", occupancy.Count, occupancy.IsFull)
	}

	// 回显已登记的班次
	if !slices.Equal(view.SelectedShiftIDs, []int64{mondayMorning}) {
		t.Errorf("期望已选班次为 [%d]，实际=%v", mondayMorning, view.SelectedShiftIDs)
	}
}

func TestService_GetAvailabilityView_EmployeeNotFound(t *testing.T) {
	svc, _ := setupTestService()

	if _, err := svc.GetAvailabilityView(999); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际: %v", err)
	}
}

func TestService_GetRosterView_IncludesEmptyShifts(t *testing.T) {
	svc, store := setupTestService()
	employeeID := store.addEmployee("Jane Doe")
	store.addReservation(employeeID, store.shiftIDByDaySlot(0, domain.TimeSlotMorning), time.Now())

	rosterDays, err := svc.GetRosterView()
	if err != nil {
		t.Fatalf("GetRosterView 应成功: %v", err)
	}

	// 即使大部分班次没有任何登记，7 天 14 个班次也都应出现
	if len(rosterDays) != 7 {
		t.Fatalf("期望 7 天，实际=%d", len(rosterDays))
	}
	totalShifts := 0
	for i, rosterDay := range rosterDays {
		if rosterDay.Day != int32(i) {
			t.Errorf("期望第 %d 组为天数 %d，实际=%d", i, i, rosterDay.Day)
		}
		totalShifts += len(rosterDay.Shifts)
	}
	if totalShifts != 14 {
		t.Errorf("期望共 14 个班次，实际=%d", totalShifts)
	}

	monday := rosterDays[0]
	if monday.Shifts[0].Count != 1 || monday.Shifts[0].Employees[0] != "Jane Doe" {
		t.Errorf("期望周一早班只有 Jane Doe，实际=%v", monday.Shifts[0].Employees)
	}
}

func TestService_GetRosterView_OrdersBySubmissionTime(t *testing.T) {
	svc, store := setupTestService()

	shiftID := store.shiftIDByDaySlot(2, domain.TimeSlotEvening)
	base := time.Now()

	// 后提交的员工先塞进去，验证排序按提交时间而不是插入顺序
	lateID := store.addEmployee("晚提交")
	earlyID := store.addEmployee("早提交")
	store.addReservation(lateID, shiftID, base.Add(time.Hour))
	store.addReservation(earlyID, shiftID, base)

	rosterDays, err := svc.GetRosterView()
	if err != nil {
		t.Fatalf("GetRosterView 应成功: %v", err)
	}

	wednesdayEvening := rosterDays[2].Shifts[1]
	want := []string{"早提交", "晚提交"}
	if !slices.Equal(wednesdayEvening.Employees, want) {
		t.Errorf("期望按提交时间排序为 %v，实际=%v", want, wednesdayEvening.Employees)
	}
}
