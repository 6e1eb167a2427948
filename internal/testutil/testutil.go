// Package testutil 提供各包测试共用的会话样例与 mock。
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/supperghost/termsre/internal/collectors"
	"github.com/supperghost/termsre/pkg/models"
)

// HealthyDiagnostics 是终端配置正确时探测工具输出的 diagnostics.txt 内容。
const HealthyDiagnostics = `============================================================
  Terminal Capabilities
============================================================
TERM type: xterm-256color
Terminfo entry exists: Yes

Capabilities:
  colors     (Number of colors              ): 256
  lines      (Terminal lines                ): 48

============================================================
  Unicode/UTF-8 Support
============================================================
UTF-8 in environment: Yes
`

// HealthyFiles 返回不会产生任何 issue 与 warning 的一组产物内容，键为文件名。
func HealthyFiles() map[string]string {
	return map[string]string{
		"metadata.json":   `{"name":"demo","description":"vim rendering","created":"2026-01-02T03:04:05","minimal_config":true,"tmux_isolated":false}`,
		"environment.txt": "SHELL=/bin/zsh\nLANG=en_US.UTF-8\nLC_ALL=en_US.UTF-8\nTERM=xterm-256color\nCOLORTERM=truecolor\n",
		"locale.txt":      "LANG=\"en_US.UTF-8\"\nLC_CTYPE=\"en_US.UTF-8\"\nLC_ALL=\n",
		"typescript":      "Script started\n$ ls\nREADME.md\n$ exit\n",
		"diagnostics.txt": HealthyDiagnostics,
	}
}

// WriteSession 在 t.TempDir() 下创建名为 name 的会话目录并写入 files。
func WriteSession(t *testing.T, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for file, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
	}
	return dir
}

// Without 返回去掉指定文件后的副本。
func Without(files map[string]string, names ...string) map[string]string {
	out := make(map[string]string, len(files))
	for k, v := range files {
		out[k] = v
	}
	for _, n := range names {
		delete(out, n)
	}
	return out
}

// With 返回将 name 设为 content 后的副本。
func With(files map[string]string, name, content string) map[string]string {
	out := Without(files)
	out[name] = content
	return out
}

// MockPlugin 是基于 testify/mock 的 core.Plugin 实现。
type MockPlugin struct {
	mock.Mock
}

func (m *MockPlugin) Name() string {
	return m.Called().String(0)
}

func (m *MockPlugin) Description() string {
	return m.Called().String(0)
}

func (m *MockPlugin) Run(ctx context.Context, s *collectors.Session) (models.Result, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(models.Result), args.Error(1)
}
