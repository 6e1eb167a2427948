package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/supperghost/termsre/internal/collectors"
	"github.com/supperghost/termsre/internal/report"
	"github.com/supperghost/termsre/pkg/models"
)

// LoaderName 是加载阶段结构性错误在报告中的来源名称。
const LoaderName = "artifacts"

// Runner 负责插件注册、列出和按名称运行。
// 插件按注册顺序执行，报告中同一级别内的 Finding 顺序由此确定。
type Runner struct {
	plugins []Plugin
	index   map[string]Plugin
	logger  *zap.Logger
}

// NewRunner 使用给定的插件集合创建一个新的 Runner。
// nil 插件、空名称以及重名插件（保留先注册者）会被忽略。
func NewRunner(plugins []Plugin, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		index:  make(map[string]Plugin, len(plugins)),
		logger: logger,
	}
	for _, p := range plugins {
		if p == nil {
			continue
		}
		name := p.Name()
		if name == "" {
			continue
		}
		if _, dup := r.index[name]; dup {
			continue
		}
		r.index[name] = p
		r.plugins = append(r.plugins, p)
	}
	return r
}

// ListPlugins 按注册顺序返回已注册的插件。
func (r *Runner) ListPlugins() []Plugin {
	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Run 根据名称运行指定插件。
func (r *Runner) Run(ctx context.Context, name string, s *collectors.Session) (models.Result, error) {
	p, ok := r.index[name]
	if !ok {
		return models.Result{}, fmt.Errorf("unknown plugin: %s", name)
	}
	return r.runPlugin(ctx, p, s), nil
}

// Validate 加载会话目录并依次运行插件，返回聚合后的报告。
// modules 为空时运行全部插件。仅当目录不存在或不是目录时返回错误。
func (r *Runner) Validate(ctx context.Context, dir string, modules ...string) (report.Report, error) {
	selected, err := r.selectPlugins(modules)
	if err != nil {
		return report.Report{}, err
	}

	s, loadFindings, err := collectors.Load(ctx, dir, r.logger)
	if err != nil {
		return report.Report{}, err
	}

	results := make([]models.Result, 0, len(selected)+1)
	results = append(results, models.Result{Plugin: LoaderName, Findings: loadFindings})
	for _, p := range selected {
		if err := ctx.Err(); err != nil {
			return report.Report{}, err
		}
		results = append(results, r.runPlugin(ctx, p, s))
	}

	rep := report.Aggregate(s.Name, results...)
	rep.Artifacts = s.Summary()
	r.logger.Info("session validated",
		zap.String("session", s.Name),
		zap.Int("issues", len(rep.Issues)),
		zap.Int("warnings", len(rep.Warnings)),
		zap.Int("info", len(rep.Info)),
	)
	return rep, nil
}

// runPlugin 执行单个插件；插件返回的错误降级为一条 warning，不影响其他插件。
func (r *Runner) runPlugin(ctx context.Context, p Plugin, s *collectors.Session) models.Result {
	log := r.logger.With(zap.String("plugin", p.Name()))
	log.Debug("plugin started")

	res, err := p.Run(ctx, s)
	if err != nil {
		log.Warn("plugin failed", zap.Error(err))
		res.Findings = append(res.Findings, models.Warning(
			p.Name()+".error",
			fmt.Sprintf("Error analyzing %s: %v", p.Name(), err),
		))
	}
	if res.Plugin == "" {
		res.Plugin = p.Name()
	}
	res.Findings = r.checkSeverities(p.Name(), res.Findings)

	log.Debug("plugin finished", zap.Int("findings", len(res.Findings)))
	return res
}

// checkSeverities 将严重级别非法的 Finding 改写为 warning，并在消息中注明来源插件。
// 返回新切片，不修改插件持有的数据。
func (r *Runner) checkSeverities(plugin string, findings []models.Finding) []models.Finding {
	if len(findings) == 0 {
		return findings
	}
	out := make([]models.Finding, len(findings))
	for i, f := range findings {
		if f.Severity.Valid() {
			out[i] = f
			continue
		}
		r.logger.Warn("invalid finding severity",
			zap.String("plugin", plugin),
			zap.String("finding", f.ID),
			zap.String("severity", string(f.Severity)),
		)
		out[i] = models.Warning(f.ID, fmt.Sprintf("Plugin %s reported invalid severity %q: %s", plugin, f.Severity, f.Message))
	}
	return out
}

func (r *Runner) selectPlugins(modules []string) ([]Plugin, error) {
	if len(modules) == 0 {
		return r.plugins, nil
	}
	want := make(map[string]bool, len(modules))
	for _, m := range modules {
		if _, ok := r.index[m]; !ok {
			return nil, fmt.Errorf("unknown plugin: %s", m)
		}
		want[m] = true
	}
	var selected []Plugin
	for _, p := range r.plugins {
		if want[p.Name()] {
			selected = append(selected, p)
		}
	}
	return selected, nil
}
