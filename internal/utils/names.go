package utils

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeFullName 对姓名做归一化：去掉首尾空白、压缩连续空白、每个单词首字母大写。
// 保证同一个人的不同输入（"jane doe"、" Jane  Doe "）都会映射到同一条员工记录
func NormalizeFullName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return cases.Title(language.Und).String(strings.Join(fields, " "))
}

// NameSortKey 生成用于展示排序的键：中文按拼音，其余字符转为小写。
// 名单中同一班次下的姓名列表用这个键排序，保证展示顺序稳定
func NameSortKey(name string) string {
	args := pinyin.NewArgs()
	var b strings.Builder
	for _, r := range name {
		if py := pinyin.SinglePinyin(r, args); len(py) > 0 {
			b.WriteString(py[0])
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
