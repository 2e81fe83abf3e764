package domain

import (
	"errors"
	"fmt"
)

// 以下错误都属于业务上的拒绝，不是系统故障，
// 调用方收到后保持原有状态不变，提示用户修改后重新提交即可
var (
	ErrEmptyName        = errors.New("姓名不能为空")
	ErrNoSelection      = errors.New("请至少选择一个班次")
	ErrTooFewDays       = errors.New("选择的班次至少需要覆盖 3 个不同的天")
	ErrTooManyDays      = errors.New("选择的班次最多只能覆盖 5 个不同的天")
	ErrShiftNotFound    = errors.New("选择的班次不存在")
	ErrEmployeeNotFound = errors.New("员工不存在，请重新输入姓名")
)

// ShiftFullError 表示某个班次的登记人数已达到容量上限。
// 既可能在提交前的预检查中返回，也可能在事务提交时因并发提交而返回
type ShiftFullError struct {
	ShiftID int64
	Label   string
}

func (e *ShiftFullError) Error() string {
	return fmt.Sprintf("班次 %s 的登记人数已满", e.Label)
}
