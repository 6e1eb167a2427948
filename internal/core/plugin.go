package core

import (
	"context"

	"github.com/supperghost/termsre/internal/collectors"
	"github.com/supperghost/termsre/pkg/models"
)

// Plugin 定义了所有诊断插件需要实现的最小接口。
type Plugin interface {
	// Name 返回插件的唯一名称，用于 CLI 与配置中引用。
	Name() string
	// Description 返回插件的简要说明，便于 list 命令展示。
	Description() string
	// Run 基于已加载的会话执行一次诊断。会话只读，插件之间互不依赖。
	Run(ctx context.Context, s *collectors.Session) (models.Result, error)
}
