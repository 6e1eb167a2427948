package report

import (
	"github.com/supperghost/termsre/pkg/models"
)

// Report 是一次会话校验的最终结果，构造后不再修改。
type Report struct {
	Session     string              `json:"session"`
	Info        []models.Finding    `json:"info"`
	Warnings    []models.Finding    `json:"warnings"`
	Issues      []models.Finding    `json:"issues"`
	Suggestions []models.Suggestion `json:"suggestions"`
	// 输入产物摘要，由调用方在聚合后填入。
	Artifacts []models.ArtifactInfo `json:"artifacts,omitempty"`
}

// Aggregate 将各插件结果按严重级别分桶。
// 桶内保持结果顺序及每个结果内部的 Finding 顺序。
// 未知的严重级别按 warning 处理，不会被降为 info。
func Aggregate(session string, results ...models.Result) Report {
	r := Report{
		Session:     session,
		Info:        []models.Finding{},
		Warnings:    []models.Finding{},
		Issues:      []models.Finding{},
		Suggestions: []models.Suggestion{},
	}
	for _, res := range results {
		for _, f := range res.Findings {
			switch f.Severity {
			case models.SeverityIssue:
				r.Issues = append(r.Issues, f)
			case models.SeverityInfo:
				r.Info = append(r.Info, f)
			default:
				r.Warnings = append(r.Warnings, f)
			}
		}
		r.Suggestions = append(r.Suggestions, res.Suggestions...)
	}
	return r
}

// Failed 当且仅当存在 issue 级别的 Finding 时返回 true，与 warning 数量无关。
func (r Report) Failed() bool {
	return len(r.Issues) > 0
}

// ExitCode 返回进程退出码：失败为 1，否则为 0。
func (r Report) ExitCode() int {
	if r.Failed() {
		return 1
	}
	return 0
}

// Findings 按 info、warning、issue 的顺序返回全部 Finding。
func (r Report) Findings() []models.Finding {
	all := make([]models.Finding, 0, len(r.Info)+len(r.Warnings)+len(r.Issues))
	all = append(all, r.Info...)
	all = append(all, r.Warnings...)
	all = append(all, r.Issues...)
	return all
}
