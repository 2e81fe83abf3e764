package utils

import (
	"math/rand"

	"github.com/storeops-dev/shift-availability/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

// RandomShiftSelection 用 Fisher-Yates 洗牌算法随机挑出 3~5 个不同的天，
// 每天再随机选择 1~2 个班次，生成一份一定能通过天数校验的选择
func RandomShiftSelection(shifts []*domain.Shift) []int64 {
	byDay := make(map[int32][]*domain.Shift)
	days := make([]int32, 0, 7)
	for _, shift := range shifts {
		if _, exists := byDay[shift.DayOfWeek]; !exists {
			days = append(days, shift.DayOfWeek)
		}
		byDay[shift.DayOfWeek] = append(byDay[shift.DayOfWeek], shift)
	}

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(3) + 3
	if n > len(days) {
		n = len(days)
	}

	ids := make([]int64, 0, n*2)
	for _, day := range days[:n] {
		dayShifts := byDay[day]
		if rand.Intn(2) == 0 || len(dayShifts) == 1 {
			ids = append(ids, dayShifts[rand.Intn(len(dayShifts))].ID)
			continue
		}
		for _, shift := range dayShifts {
			ids = append(ids, shift.ID)
		}
	}
	return ids
}
