package domain

import "time"

// Reservation 表示某个员工对某个班次的一次空闲时间登记。
// 一个员工对同一个班次最多只能有一条登记，员工每次提交都会整体替换之前的登记
type Reservation struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employeeID"`
	ShiftID     int64     `json:"shiftID"`
	SubmittedAt time.Time `json:"submittedAt"`
}
