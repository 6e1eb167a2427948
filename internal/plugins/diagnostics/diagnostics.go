package diagnostics

import (
	"context"
	"fmt"

	"github.com/supperghost/termsre/internal/collectors"
	"github.com/supperghost/termsre/internal/core"
	"github.com/supperghost/termsre/pkg/models"
)

// PluginName 是能力报告交叉校验插件的名称常量。
const PluginName = "diagnostics"

// DefaultMinColors 是推荐的最低颜色数。
const DefaultMinColors = 256

// Plugin 实现了 core.Plugin 接口，转述探测工具在 diagnostics.txt 中给出的结论。
type Plugin struct {
	parser    Parser
	minColors int
}

// New 创建一个新的诊断插件实例；parser 为 nil 时使用 TextParser。
func New(parser Parser, minColors int) core.Plugin {
	if parser == nil {
		parser = TextParser{}
	}
	return &Plugin{parser: parser, minColors: minColors}
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) Description() string {
	return "终端能力报告 (diagnostics.txt) 交叉校验"
}

func (p *Plugin) Run(ctx context.Context, s *collectors.Session) (models.Result, error) {
	_ = ctx
	res := models.Result{Plugin: PluginName}

	a, ok := s.Artifact(collectors.KindDiagnostics)
	if !ok {
		if !s.Unreadable(collectors.KindDiagnostics) {
			res.Findings = append(res.Findings, models.Info("diagnostics.missing", "No diagnostics file available"))
		}
		return res, nil
	}

	res.Findings, res.Suggestions = Evaluate(p.parser.Parse(a.Text()), p.minColors)
	return res, nil
}

// Evaluate 将结论转换为 Finding。
func Evaluate(a Assertions, minColors int) ([]models.Finding, []models.Suggestion) {
	var (
		findings    []models.Finding
		suggestions []models.Suggestion
	)

	if a.UTF8InEnvironment != nil && !*a.UTF8InEnvironment {
		findings = append(findings, models.Issue("diagnostics.utf8", "Diagnostics show UTF-8 not in environment"))
	}
	if a.TerminfoExists != nil && !*a.TerminfoExists {
		findings = append(findings, models.Issue("diagnostics.terminfo", "Terminal type not found in terminfo database"))
		suggestions = append(suggestions, models.Suggestion{
			FindingID: "diagnostics.terminfo",
			Title:     "Install the terminfo entry or pick a known TERM",
			Details:   "infocmp $TERM || export TERM=xterm-256color",
		})
	}
	if a.Colors != nil && *a.Colors < minColors {
		findings = append(findings, models.Warning(
			"diagnostics.colors",
			fmt.Sprintf("Terminal only supports %d colors (recommend %d+)", *a.Colors, minColors),
		))
	}

	return findings, suggestions
}
