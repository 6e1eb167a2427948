package metadata

import (
	"context"

	"github.com/supperghost/termsre/internal/collectors"
	"github.com/supperghost/termsre/internal/core"
	"github.com/supperghost/termsre/pkg/models"
)

// PluginName 是会话元数据插件的名称常量。
const PluginName = "metadata"

// Plugin 实现了 core.Plugin 接口，输出 metadata.json 中的会话描述。
type Plugin struct{}

// New 创建一个新的元数据插件实例。
func New() core.Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) Description() string {
	return "会话元数据 (metadata.json) 概览"
}

// Run 格式错误已由加载阶段报告，这里只处理缺失与解析成功两种情况。
func (p *Plugin) Run(ctx context.Context, s *collectors.Session) (models.Result, error) {
	_ = ctx
	res := models.Result{Plugin: PluginName}

	if _, ok := s.Artifact(collectors.KindMetadata); !ok {
		if !s.Unreadable(collectors.KindMetadata) {
			res.Findings = append(res.Findings, models.Warning("metadata.missing", "Missing metadata.json file"))
		}
		return res, nil
	}

	md := s.Metadata()
	if md == nil {
		return res, nil
	}

	res.Findings = append(res.Findings,
		models.Info("metadata.name", "Session: "+orDefault(md.Name, "unknown")),
		models.Info("metadata.description", "Description: "+orDefault(md.Description, "N/A")),
		models.Info("metadata.created", "Created: "+orDefault(md.Created, "unknown")),
	)
	if md.MinimalConfig {
		res.Findings = append(res.Findings, models.Info("metadata.minimal_config", "Using minimal configuration"))
	}
	if md.TmuxIsolated {
		res.Findings = append(res.Findings, models.Info("metadata.tmux_isolated", "Running in isolated tmux session"))
	}
	return res, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
