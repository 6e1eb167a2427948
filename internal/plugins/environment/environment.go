package environment

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/supperghost/termsre/internal/collectors"
	"github.com/supperghost/termsre/internal/core"
	"github.com/supperghost/termsre/pkg/models"
)

// PluginName 是环境变量与 locale 诊断插件的名称常量。
const PluginName = "environment"

// Plugin 实现了 core.Plugin 接口，检查 environment.txt 与 locale.txt 的 UTF-8 与 TERM 配置。
type Plugin struct{}

// New 创建一个新的环境诊断插件实例。
func New() core.Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) Description() string {
	return "环境变量与 locale 的 UTF-8 / TERM 一致性诊断"
}

// Run 执行一次诊断，包含两个场景：环境变量基线与 locale 基线。
func (p *Plugin) Run(ctx context.Context, s *collectors.Session) (models.Result, error) {
	_ = ctx

	var (
		allFindings    []models.Finding
		allSuggestions []models.Suggestion
	)

	// 场景 1：环境变量基线
	if a, ok := s.Artifact(collectors.KindEnvironment); ok {
		f, sg := CheckEnvironment(ParseAssignments(a.Text()))
		allFindings = append(allFindings, f...)
		allSuggestions = append(allSuggestions, sg...)
	} else if !s.Unreadable(collectors.KindEnvironment) {
		allFindings = append(allFindings, models.Warning("environment.missing", "Missing environment.txt file"))
	}

	// 场景 2：locale 基线
	if a, ok := s.Artifact(collectors.KindLocale); ok {
		allFindings = append(allFindings, CheckLocale(ParseAssignments(a.Text()))...)
	} else if !s.Unreadable(collectors.KindLocale) {
		allFindings = append(allFindings, models.Warning("locale.missing", "Missing locale.txt file"))
	}

	return models.Result{
		Plugin:      PluginName,
		Findings:    allFindings,
		Suggestions: allSuggestions,
	}, nil
}

// Assignment 是一行 KEY=VALUE。
type Assignment struct {
	Key   string
	Value string
}

// ParseAssignments 按行解析 KEY=VALUE，容忍格式错误：
// 没有 '=' 或键为空的行被忽略；值两侧的双引号会被去掉（locale 命令的输出格式）。
func ParseAssignments(content string) []Assignment {
	var out []Assignment
	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out = append(out, Assignment{Key: key, Value: unquote(value)})
	}
	return out
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

// lookup 返回 key 的最后一次赋值。
func lookup(vars []Assignment, key string) (string, bool) {
	var (
		value string
		found bool
	)
	for _, a := range vars {
		if a.Key == key {
			value, found = a.Value, true
		}
	}
	return value, found
}

// HasUTF8Marker 判断 locale 值是否声明了 UTF-8 编码，大小写不敏感，兼容 utf8 写法。
func HasUTF8Marker(v string) bool {
	u := strings.ToUpper(v)
	return strings.Contains(u, "UTF-8") || strings.Contains(u, "UTF8")
}

// CheckEnvironment 检查 LANG、LC_ALL 与 TERM。
func CheckEnvironment(vars []Assignment) ([]models.Finding, []models.Suggestion) {
	var (
		findings    []models.Finding
		suggestions []models.Suggestion
	)

	if lang, ok := lookup(vars, "LANG"); !ok || !HasUTF8Marker(lang) {
		findings = append(findings, models.Issue("environment.lang", "LANG not set to UTF-8 locale"))
		suggestions = append(suggestions, models.Suggestion{
			FindingID: "environment.lang",
			Title:     "Set LANG to a UTF-8 locale",
			Details:   "export LANG=en_US.UTF-8",
		})
	}

	if lcAll, ok := lookup(vars, "LC_ALL"); !ok || !HasUTF8Marker(lcAll) {
		findings = append(findings, models.Warning("environment.lc_all", "LC_ALL not set to UTF-8 locale"))
		suggestions = append(suggestions, models.Suggestion{
			FindingID: "environment.lc_all",
			Title:     "Set LC_ALL to a UTF-8 locale",
			Details:   "export LC_ALL=en_US.UTF-8",
		})
	}

	term, ok := lookup(vars, "TERM")
	switch {
	case !ok || strings.TrimSpace(term) == "":
		findings = append(findings, models.Issue("environment.term", "TERM variable not set"))
		suggestions = append(suggestions, models.Suggestion{
			FindingID: "environment.term",
			Title:     "Export a TERM value with a terminfo entry",
			Details:   "export TERM=xterm-256color",
		})
	case !strings.Contains(term, "256color"):
		findings = append(findings, models.Warning("environment.term", fmt.Sprintf("TERM=%s - consider using 256color variant", term)))
		suggestions = append(suggestions, models.Suggestion{
			FindingID: "environment.term",
			Title:     "Use a 256color TERM variant",
			Details:   fmt.Sprintf("export TERM=%s", suggestTerm(term)),
		})
	}

	return findings, suggestions
}

// suggestTerm 给出 term 对应的 256color 变体，例如 screen -> screen-256color。
func suggestTerm(term string) string {
	base, _, _ := strings.Cut(term, "-")
	switch base {
	case "screen", "tmux", "xterm", "rxvt", "putty", "konsole", "gnome":
		return base + "-256color"
	}
	return "xterm-256color"
}

// CheckLocale 汇总值非空且未声明 UTF-8 的 locale 变量，最多产出一条 warning。
// 值为空的变量视为未设置，不予报告。
func CheckLocale(vars []Assignment) []models.Finding {
	var nonUTF8 []string
	for _, a := range vars {
		if strings.TrimSpace(a.Value) == "" {
			continue
		}
		if HasUTF8Marker(a.Value) {
			continue
		}
		nonUTF8 = append(nonUTF8, a.Key)
	}
	if len(nonUTF8) == 0 {
		return nil
	}
	return []models.Finding{models.Warning(
		"locale.non_utf8",
		"Non-UTF-8 locale variables: "+strings.Join(nonUTF8, ", "),
	)}
}
