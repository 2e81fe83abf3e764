package domain

import "testing"

func TestCatalogShifts(t *testing.T) {
	shifts := CatalogShifts(8)

	if len(shifts) != 14 {
		t.Fatalf("期望 14 个班次，实际=%d", len(shifts))
	}

	seen := make(map[[2]string]bool)
	prevDay, prevSlotIndex := int32(-1), -1
	for _, shift := range shifts {
		if shift.MaxCapacity != 8 {
			t.Errorf("期望容量为 8，实际=%d", shift.MaxCapacity)
		}

		key := [2]string{DayName(shift.DayOfWeek), shift.TimeSlot}
		if seen[key] {
			t.Errorf("(天数, 时间段) 组合重复: %v", key)
		}
		seen[key] = true

		slotIndex := -1
		for i, slot := range TimeSlots {
			if slot == shift.TimeSlot {
				slotIndex = i
			}
		}
		if slotIndex == -1 {
			t.Fatalf("未知的时间段: %q", shift.TimeSlot)
		}

		// 按天数升序，同一天内按时间段顺序
		if shift.DayOfWeek < prevDay || (shift.DayOfWeek == prevDay && slotIndex <= prevSlotIndex) {
			t.Errorf("班次顺序错误: 天数=%d 时间段=%s", shift.DayOfWeek, shift.TimeSlot)
		}
		prevDay, prevSlotIndex = shift.DayOfWeek, slotIndex
	}
}

func TestShiftLabel(t *testing.T) {
	tests := []struct {
		day  int32
		slot string
		want string
	}{
		{0, TimeSlotMorning, "周一 10:00 - 16:00"},
		{4, TimeSlotEvening, "周五 16:00 - 22:00"},
		{6, TimeSlotMorning, "周日 10:00 - 16:00"},
	}

	for _, tt := range tests {
		shift := &Shift{DayOfWeek: tt.day, TimeSlot: tt.slot}
		if got := shift.Label(); got != tt.want {
			t.Errorf("Label(%d, %s) = %q，期望 %q", tt.day, tt.slot, got, tt.want)
		}
	}
}

func TestDayName_OutOfRange(t *testing.T) {
	if got := DayName(-1); got != "未知(-1)" {
		t.Errorf("DayName(-1) = %q", got)
	}
	if got := DayName(7); got != "未知(7)" {
		t.Errorf("DayName(7) = %q", got)
	}
}
