package transcript

import (
	"context"
	"fmt"

	"github.com/supperghost/termsre/internal/classify"
	"github.com/supperghost/termsre/internal/collectors"
	"github.com/supperghost/termsre/internal/core"
	"github.com/supperghost/termsre/internal/decoder"
	"github.com/supperghost/termsre/pkg/models"
)

// PluginName 是 transcript 诊断插件的名称常量。
const PluginName = "transcript"

const findingMissing = "transcript.missing"

// Options 控制分类器行为。
type Options struct {
	BackspaceThreshold int
	Parallel           bool
}

// Plugin 实现了 core.Plugin 接口：解码 typescript 并运行全部模式分类器。
type Plugin struct {
	classifiers []classify.Classifier
	parallel    bool
}

// New 创建一个新的 transcript 诊断插件实例。
func New(opts Options) core.Plugin {
	return &Plugin{
		classifiers: classify.Default(opts.BackspaceThreshold),
		parallel:    opts.Parallel,
	}
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) Description() string {
	return "会话录制 (typescript) 的编码与字符模式诊断"
}

func (p *Plugin) Run(ctx context.Context, s *collectors.Session) (models.Result, error) {
	res := models.Result{Plugin: PluginName}

	a, ok := s.Artifact(collectors.KindTranscript)
	if !ok {
		if !s.Unreadable(collectors.KindTranscript) {
			res.Findings = append(res.Findings, models.Issue(findingMissing, "Missing typescript file - session may not have been recorded"))
			res.Suggestions = append(res.Suggestions, models.Suggestion{
				FindingID: findingMissing,
				Title:     "Record the session with script(1)",
				Details:   fmt.Sprintf("script -q %s", a.Kind.FileName()),
			})
		}
		return res, nil
	}

	dt := decoder.Decode(a.Data)
	res.Findings = append(res.Findings, decoder.Findings(dt)...)
	if dt.Lossy {
		res.Suggestions = append(res.Suggestions, decodeSuggestion(a.Data))
	}

	found, err := classify.RunAll(ctx, p.classifiers, dt.Text, p.parallel)
	if err != nil {
		return res, fmt.Errorf("classify transcript: %w", err)
	}
	res.Findings = append(res.Findings, found...)

	return res, nil
}

func decodeSuggestion(data []byte) models.Suggestion {
	s := models.Suggestion{
		FindingID: decoder.FindingDecodeError,
		Title:     "Re-record the session with a UTF-8 locale",
		Details:   "export LANG=en_US.UTF-8 LC_ALL=en_US.UTF-8",
	}
	s.Details += charsetHint(decoder.GuessCharset(data))
	return s
}

func charsetHint(cs string) string {
	if cs == "" || cs == "UTF-8" {
		return ""
	}
	return fmt.Sprintf("\ntranscript bytes look like %s; convert with: iconv -f %s -t UTF-8 typescript", cs, decoder.IconvName(cs))
}
