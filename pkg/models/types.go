package models

// Severity 表示诊断发现的严重级别。
type Severity string

const (
	// SeverityInfo 为提示级别，仅供参考。
	SeverityInfo Severity = "info"
	// SeverityWarning 为告警级别，不影响退出码。
	SeverityWarning Severity = "warning"
	// SeverityIssue 为阻断级别，出现任意一条即判定会话校验失败。
	SeverityIssue Severity = "issue"
)

// Valid 判断 s 是否为已知的严重级别。
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityIssue:
		return true
	}
	return false
}

// Finding 表示一次诊断中的单条发现。
// 严重级别在创建时确定，之后不再调整。
type Finding struct {
	// 插件内部的发现 ID，便于排错与归档。
	ID string `json:"id"`
	// 严重级别。
	Severity Severity `json:"severity"`
	// 面向用户的描述。
	Message string `json:"message"`
}

// Info 构造一条提示级别的发现。
func Info(id, message string) Finding {
	return Finding{ID: id, Severity: SeverityInfo, Message: message}
}

// Warning 构造一条告警级别的发现。
func Warning(id, message string) Finding {
	return Finding{ID: id, Severity: SeverityWarning, Message: message}
}

// Issue 构造一条阻断级别的发现。
func Issue(id, message string) Finding {
	return Finding{ID: id, Severity: SeverityIssue, Message: message}
}

// Suggestion 表示针对某个 Finding 给出的修复建议。
type Suggestion struct {
	// 与某个 Finding 关联的 ID，留空表示通用建议。
	FindingID string `json:"finding_id,omitempty"`
	// 建议的简要标题。
	Title string `json:"title"`
	// 具体操作建议或说明。
	Details string `json:"details,omitempty"`
}

// Result 表示某个插件一次执行的整体结果。
type Result struct {
	// 产出该结果的插件名称。
	Plugin string `json:"plugin"`
	// 诊断发现列表，按发现顺序排列。
	Findings []Finding `json:"findings"`
	// 建议列表。
	Suggestions []Suggestion `json:"suggestions"`
}

// ArtifactInfo 是报告中对单个输入产物的摘要。
type ArtifactInfo struct {
	Kind    string `json:"kind"`
	File    string `json:"file"`
	Present bool   `json:"present"`
	MIME    string `json:"mime,omitempty"`
}
