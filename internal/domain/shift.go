package domain

import "fmt"

// 时间段编码沿用门店原有的叫法：早班 10:00-16:00，晚班 16:00-22:00
const (
	TimeSlotMorning = "10-4"
	TimeSlotEvening = "4-10"
)

// TimeSlots 按展示顺序排列的全部时间段
var TimeSlots = []string{TimeSlotMorning, TimeSlotEvening}

// 天数编码：0 表示周一，6 表示周日
var dayNames = []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

func DayName(day int32) string {
	if day < 0 || int(day) >= len(dayNames) {
		return fmt.Sprintf("未知(%d)", day)
	}
	return dayNames[day]
}

func TimeSlotLabel(slot string) string {
	switch slot {
	case TimeSlotMorning:
		return "10:00 - 16:00"
	case TimeSlotEvening:
		return "16:00 - 22:00"
	default:
		return slot
	}
}

type Shift struct {
	ID          int64  `json:"id"`
	DayOfWeek   int32  `json:"dayOfWeek"`
	TimeSlot    string `json:"timeSlot"`
	MaxCapacity int32  `json:"maxCapacity"`
}

// Label 返回用于展示和提示信息的班次名称，如 "周一 10:00 - 16:00"
func (s *Shift) Label() string {
	return fmt.Sprintf("%s %s", DayName(s.DayOfWeek), TimeSlotLabel(s.TimeSlot))
}

// CatalogShifts 生成完整的班次目录：7 天 x 2 个时间段共 14 个班次，
// 按天数和时间段排序，(天数, 时间段) 组合不会重复
func CatalogShifts(maxCapacity int32) []Shift {
	shifts := make([]Shift, 0, len(dayNames)*len(TimeSlots))
	for day := int32(0); int(day) < len(dayNames); day++ {
		for _, slot := range TimeSlots {
			shifts = append(shifts, Shift{
				DayOfWeek:   day,
				TimeSlot:    slot,
				MaxCapacity: maxCapacity,
			})
		}
	}
	return shifts
}
