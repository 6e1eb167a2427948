// Package decoder 将 transcript 原始字节转换为文本。
// 先做严格 UTF-8 校验，失败时记录首个非法字节的偏移，
// 再以 U+FFFD 替换每个非法子序列，保证下游分类器总能拿到可用的文本视图。
package decoder

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"

	"github.com/supperghost/termsre/pkg/models"
)

const (
	FindingDecodeError  = "transcript.decode.first_failure"
	FindingReplacements = "transcript.decode.replacement"
)

// DecodedTranscript 是 transcript 解码后的不可变视图。
type DecodedTranscript struct {
	Text string
	// 是否发生了有损替换。
	Lossy bool
	// 首个非法序列的字节偏移，严格解码成功时为 -1。
	FirstInvalid int
	// 结果文本中 U+FFFD 的数量，包含原文中本就存在的替换字符。
	Replacements int
}

// Decode 解码 transcript 字节，永不失败。
func Decode(data []byte) DecodedTranscript {
	if utf8.Valid(data) {
		text := string(data)
		return DecodedTranscript{
			Text:         text,
			FirstInvalid: -1,
			Replacements: strings.Count(text, string(utf8.RuneError)),
		}
	}

	var b strings.Builder
	b.Grow(len(data) + 16)
	first := -1
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			if first < 0 {
				first = i
			}
			b.WriteRune(utf8.RuneError)
			i += invalidPrefixLen(data[i:])
			continue
		}
		b.Write(data[i : i+size])
		i += size
	}

	text := b.String()
	return DecodedTranscript{
		Text:         text,
		Lossy:        true,
		FirstInvalid: first,
		Replacements: strings.Count(text, string(utf8.RuneError)),
	}
}

// invalidPrefixLen 返回以 b[0] 开头的最长非法子序列长度（maximal subpart），
// 即一个合法前导字节后跟的、仍可能构成合法字符的续字节个数加一。
// 与常见解码器的替换粒度一致：截断的多字节序列只替换为一个 U+FFFD。
func invalidPrefixLen(b []byte) int {
	c := b[0]
	need := 0
	lo, hi := byte(0x80), byte(0xBF)
	switch {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}

	n := 1
	for n <= need && n < len(b) {
		x := b[n]
		if n == 1 {
			if x < lo || x > hi {
				break
			}
		} else if x < 0x80 || x > 0xBF {
			break
		}
		n++
	}
	return n
}

// Findings 根据解码结果生成编码相关的 Finding：
// 严格解码失败一条，替换字符计数一条，二者相互独立。
func Findings(dt DecodedTranscript) []models.Finding {
	var findings []models.Finding
	if dt.FirstInvalid >= 0 {
		findings = append(findings, models.Issue(
			FindingDecodeError,
			fmt.Sprintf("UTF-8 decode error in typescript at position %d", dt.FirstInvalid),
		))
	}
	if dt.Replacements > 0 {
		findings = append(findings, models.Issue(
			FindingReplacements,
			fmt.Sprintf("Found %d replacement characters (�) - encoding issue", dt.Replacements),
		))
	}
	return findings
}

// GuessCharset 猜测非 UTF-8 字节最可能的编码，无法判断时返回空串。
func GuessCharset(data []byte) string {
	res, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || res == nil {
		return ""
	}
	return res.Charset
}

// chardet 的部分编码名与 iconv 不一致，其余名称 iconv 可直接识别（大小写不敏感）。
var iconvNames = map[string]string{
	"GB-18030":   "GB18030",
	"IBM420_ltr": "IBM420",
	"IBM420_rtl": "IBM420",
	"IBM424_ltr": "IBM424",
	"IBM424_rtl": "IBM424",
}

// IconvName 将 GuessCharset 返回的编码名转换为 iconv -f 可接受的名称。
func IconvName(charset string) string {
	if name, ok := iconvNames[charset]; ok {
		return name
	}
	return charset
}
