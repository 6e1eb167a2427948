package classify

import "unicode"

// 各分类使用显式的码点区间表，区间按起点升序且互不重叠，
// unicode.Is 在区间较多时按二分查找匹配。

// BoxDrawing 为 Box Drawing 区块 U+2500–U+257F。
var BoxDrawing = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2500, Hi: 0x257F, Stride: 1},
	},
}

// Emoji 覆盖表情、符号与象形文字（含补充区块）、交通与地图、
// 国旗（区域指示符）、Dingbats 以及带圈/带框字符。
var Emoji = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2460, Hi: 0x24FF, Stride: 1}, // enclosed alphanumerics
		{Lo: 0x2702, Hi: 0x27B0, Stride: 1}, // dingbats
	},
	R32: []unicode.Range32{
		{Lo: 0x1F100, Hi: 0x1F1FF, Stride: 1}, // enclosed alphanumeric supplement, regional indicators
		{Lo: 0x1F200, Hi: 0x1F251, Stride: 1}, // enclosed ideographic supplement
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // symbols & pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport & map
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // supplemental symbols & pictographs
	},
}

// CJK 覆盖平假名、片假名、中日韩统一表意文字与韩文音节。
var CJK = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3040, Hi: 0x30FF, Stride: 1}, // hiragana + katakana
		{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1},
		{Lo: 0xAC00, Hi: 0xD7AF, Stride: 1},
	},
}

// ZeroWidth 为零宽字符与 BOM。
var ZeroWidth = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200B, Hi: 0x200F, Stride: 1},
		{Lo: 0x2060, Hi: 0x2064, Stride: 1},
		{Lo: 0xFEFF, Hi: 0xFEFF, Stride: 1},
	},
}

// Combining 为常用组合附加符号区块。
var Combining = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0300, Hi: 0x036F, Stride: 1},
		{Lo: 0x1AB0, Hi: 0x1AFF, Stride: 1},
		{Lo: 0x1DC0, Hi: 0x1DFF, Stride: 1},
		{Lo: 0x20D0, Hi: 0x20FF, Stride: 1},
		{Lo: 0xFE20, Hi: 0xFE2F, Stride: 1},
	},
}

// countRunes 统计落在 table 中的码点个数。
func countRunes(text string, table *unicode.RangeTable) int {
	n := 0
	for _, r := range text {
		if unicode.Is(table, r) {
			n++
		}
	}
	return n
}

// countRuns 统计由 table 中码点组成的极大连续片段个数。
func countRuns(text string, table *unicode.RangeTable) int {
	runs := 0
	in := false
	for _, r := range text {
		if unicode.Is(table, r) {
			if !in {
				runs++
				in = true
			}
			continue
		}
		in = false
	}
	return runs
}
