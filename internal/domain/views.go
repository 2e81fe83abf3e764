package domain

// ShiftOccupancy 是单个班次的占用情况，用于渲染选择表单
type ShiftOccupancy struct {
	Count  int32    `json:"count"`
	Names  []string `json:"names"`
	IsFull bool     `json:"isFull"`
}

// DayShifts 是按天分组后的班次列表
type DayShifts struct {
	Day     int32   `json:"day"`
	DayName string  `json:"dayName"`
	Shifts  []Shift `json:"shifts"`
}

// AvailabilityView 是选择表单所需的全部数据，
// SelectedShiftIDs 用于回显该员工当前已登记的班次
type AvailabilityView struct {
	ShiftsByDay      []DayShifts              `json:"shiftsByDay"`
	OccupancyByShift map[int64]ShiftOccupancy `json:"occupancyByShift"`
	SelectedShiftIDs []int64                  `json:"selectedShiftIDs"`
}

// RosterShift 是名单视图中的单个班次，员工姓名按提交时间排序
type RosterShift struct {
	Shift     Shift    `json:"shift"`
	Employees []string `json:"employees"`
	Count     int32    `json:"count"`
}

// RosterDay 是按天分组后的名单，没有任何登记的班次也会出现在其中
type RosterDay struct {
	Day     int32         `json:"day"`
	DayName string        `json:"dayName"`
	Shifts  []RosterShift `json:"shifts"`
}
