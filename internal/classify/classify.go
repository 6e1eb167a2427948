// Package classify 提供对 transcript 文本的独立扫描器。
// 每个 Classifier 都是纯函数：只读文本，返回自己的 Finding，不共享状态。
package classify

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/supperghost/termsre/pkg/models"
)

// DefaultBackspaceThreshold 是退格字符计数的提示阈值。
const DefaultBackspaceThreshold = 10

const (
	enterAltScreen = "\x1b[?1049h"
	exitAltScreen  = "\x1b[?1049l"
)

// Classifier 对文本做一类模式扫描。
type Classifier interface {
	Name() string
	Classify(text string) []models.Finding
}

// Func 将普通函数适配为 Classifier。
type Func struct {
	name string
	fn   func(text string) []models.Finding
}

// New 以名称和扫描函数构造 Classifier。
func New(name string, fn func(text string) []models.Finding) Func {
	return Func{name: name, fn: fn}
}

func (f Func) Name() string { return f.name }

func (f Func) Classify(text string) []models.Finding { return f.fn(text) }

// Default 返回默认的分类器集合，顺序即 Finding 的输出顺序。
func Default(backspaceThreshold int) []Classifier {
	return []Classifier{
		New("altscreen", AltScreen),
		New("box", BoxChars),
		New("emoji", EmojiRuns),
		New("cjk", CJKRuns),
		New("backspace", func(text string) []models.Finding {
			return Backspaces(text, backspaceThreshold)
		}),
		New("zerowidth", ZeroWidthChars),
		New("combining", CombiningMarks),
	}
}

// AltScreen 检测进入或退出备用屏幕缓冲区的控制序列，无论出现多少次都只给出一条提示。
func AltScreen(text string) []models.Finding {
	if strings.Contains(text, enterAltScreen) || strings.Contains(text, exitAltScreen) {
		return []models.Finding{models.Info("transcript.altscreen", "Alternate screen buffer used (normal for TUI apps)")}
	}
	return nil
}

// BoxChars 统计制表符字符个数。
func BoxChars(text string) []models.Finding {
	if n := countRunes(text, BoxDrawing); n > 0 {
		return []models.Finding{models.Info("transcript.box", fmt.Sprintf("Found %d box drawing characters", n))}
	}
	return nil
}

// EmojiRuns 统计连续 emoji 片段个数。
func EmojiRuns(text string) []models.Finding {
	if n := countRuns(text, Emoji); n > 0 {
		return []models.Finding{models.Info("transcript.emoji", fmt.Sprintf("Found %d emoji sequences", n))}
	}
	return nil
}

// CJKRuns 统计连续 CJK 片段个数。
func CJKRuns(text string) []models.Finding {
	if n := countRuns(text, CJK); n > 0 {
		return []models.Finding{models.Info("transcript.cjk", fmt.Sprintf("Found %d CJK character sequences", n))}
	}
	return nil
}

// Backspaces 统计 BS(0x08) 与 DEL(0x7F)，超过阈值才提示。
func Backspaces(text string, threshold int) []models.Finding {
	n := strings.Count(text, "\x08") + strings.Count(text, "\x7f")
	if n > threshold {
		return []models.Finding{models.Info("transcript.backspace", fmt.Sprintf("Found %d backspace characters", n))}
	}
	return nil
}

// ZeroWidthChars 统计零宽字符。
func ZeroWidthChars(text string) []models.Finding {
	if n := countRunes(text, ZeroWidth); n > 0 {
		return []models.Finding{models.Info("transcript.zerowidth", fmt.Sprintf("Found %d zero-width characters", n))}
	}
	return nil
}

// CombiningMarks 统计组合附加符号。
func CombiningMarks(text string) []models.Finding {
	if n := countRunes(text, Combining); n > 0 {
		return []models.Finding{models.Info("transcript.combining", fmt.Sprintf("Found %d combining marks", n))}
	}
	return nil
}

// RunAll 执行全部分类器并按注册顺序拼接结果。
// parallel 为 true 时并发执行，输出顺序与串行一致。
func RunAll(ctx context.Context, classifiers []Classifier, text string, parallel bool) ([]models.Finding, error) {
	results := make([][]models.Finding, len(classifiers))

	if parallel {
		g, gCtx := errgroup.WithContext(ctx)
		for i, c := range classifiers {
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				results[i] = c.Classify(text)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, c := range classifiers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = c.Classify(text)
		}
	}

	var findings []models.Finding
	for _, r := range results {
		findings = append(findings, r...)
	}
	return findings, nil
}
