package diagnostics

import (
	"regexp"
	"strconv"
	"strings"
)

// Assertions 是诊断报告中与本工具相关的结论。nil 表示报告中未出现对应条目。
type Assertions struct {
	UTF8InEnvironment *bool
	TerminfoExists    *bool
	Colors            *int
}

// Parser 从诊断产物中提取结论。
// 当前实现匹配探测工具的自由文本输出，后续结构化格式只需提供新的 Parser。
type Parser interface {
	Parse(content string) Assertions
}

const (
	utf8AbsentMarker     = "UTF-8 in environment: No"
	terminfoAbsentMarker = "Terminfo entry exists: No"
)

var colorsRe = regexp.MustCompile(`colors\s+.*:\s*(\d+)`)

// TextParser 按字面子串匹配探测工具的文本输出。
// 只识别否定结论；没有出现否定标记时相应字段保持 nil。
type TextParser struct{}

func (TextParser) Parse(content string) Assertions {
	var a Assertions
	if strings.Contains(content, utf8AbsentMarker) {
		a.UTF8InEnvironment = boolPtr(false)
	}
	if strings.Contains(content, terminfoAbsentMarker) {
		a.TerminfoExists = boolPtr(false)
	}
	if m := colorsRe.FindStringSubmatch(content); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			a.Colors = &n
		}
	}
	return a
}

func boolPtr(b bool) *bool { return &b }
