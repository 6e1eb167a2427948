package collectors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/supperghost/termsre/pkg/models"
)

// ErrNotDirectory 表示给定的会话路径不存在或不是目录，是唯一的致命错误。
var ErrNotDirectory = errors.New("session path is not a directory")

// Metadata 对应 metadata.json 的结构。
type Metadata struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Created       string `json:"created"`
	MinimalConfig bool   `json:"minimal_config"`
	TmuxIsolated  bool   `json:"tmux_isolated"`
}

// Session 是一次录制的终端会话。由 Load 构造，之后只读。
type Session struct {
	Name       string
	Dir        string
	artifacts  map[Kind]Artifact
	unreadable map[Kind]bool
	metadata   *Metadata
	summary    []models.ArtifactInfo
}

// Artifact 返回指定类型的产物；ok 表示文件存在且读取成功。
func (s *Session) Artifact(kind Kind) (Artifact, bool) {
	a, ok := s.artifacts[kind]
	if !ok || !a.Present {
		return Artifact{Kind: kind}, false
	}
	return a, true
}

// Unreadable 报告产物文件存在但无法读取，或内容不是文本。此时已由加载阶段给出 issue，
// 插件不应再为其补充“缺失”类的 Finding。
func (s *Session) Unreadable(kind Kind) bool {
	return s.unreadable[kind]
}

// Summary 按 Kinds 顺序返回每个产物的存在情况与 MIME 类型。
func (s *Session) Summary() []models.ArtifactInfo {
	out := make([]models.ArtifactInfo, len(s.summary))
	copy(out, s.summary)
	return out
}

// Metadata 返回解析成功的元数据，缺失或格式错误时返回 nil。
func (s *Session) Metadata() *Metadata {
	return s.metadata
}

// NewSession 直接由内存中的产物构造会话，主要供测试与上层复用。
func NewSession(name string, artifacts ...Artifact) *Session {
	s := &Session{Name: name, artifacts: make(map[Kind]Artifact, len(artifacts))}
	for _, a := range artifacts {
		a.Present = true
		s.artifacts[a.Kind] = a
	}
	if a, ok := s.artifacts[KindMetadata]; ok {
		if md, err := parseMetadata(a.Data); err == nil {
			s.metadata = md
		}
	}
	return s
}

// Load 读取会话目录中的全部产物。
// 单个产物读取或解析失败只会产生 issue 级别的 Finding，不会中断其余产物的加载。
func Load(ctx context.Context, dir string, logger *zap.Logger) (*Session, []models.Finding, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	s := &Session{
		Name:       filepath.Base(filepath.Clean(dir)),
		Dir:        dir,
		artifacts:  make(map[Kind]Artifact, len(Kinds)),
		unreadable: make(map[Kind]bool),
	}

	var findings []models.Finding
	for _, kind := range Kinds {
		a, err := NewFileCollector(kind).Collect(ctx, dir)
		s.summary = append(s.summary, models.ArtifactInfo{
			Kind:    string(kind),
			File:    kind.FileName(),
			Present: a.Present,
			MIME:    a.MIME,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, nil, ctxErr
			}
			logger.Warn("artifact unreadable", zap.String("artifact", string(kind)), zap.Error(err))
			s.unreadable[kind] = true
			findings = append(findings, models.Issue(
				fmt.Sprintf("artifact.%s.unreadable", kind),
				fmt.Sprintf("Cannot read %s: %v", kind.FileName(), err),
			))
			continue
		}
		if !a.Present {
			logger.Debug("artifact absent", zap.String("artifact", string(kind)))
			continue
		}
		logger.Debug("artifact loaded",
			zap.String("artifact", string(kind)),
			zap.Int("bytes", len(a.Data)),
			zap.String("mime", a.MIME),
		)
		if a.Binary {
			logger.Warn("artifact is not text", zap.String("artifact", string(kind)), zap.String("mime", a.MIME))
			s.unreadable[kind] = true
			findings = append(findings, models.Issue(
				fmt.Sprintf("artifact.%s.binary", kind),
				fmt.Sprintf("%s is not a text file (detected %s)", kind.FileName(), a.MIME),
			))
			continue
		}
		s.artifacts[kind] = a
	}

	if a, ok := s.Artifact(KindMetadata); ok {
		md, err := parseMetadata(a.Data)
		if err != nil {
			logger.Warn("metadata malformed", zap.Error(err))
			findings = append(findings, models.Issue("artifact.metadata.invalid", "Invalid metadata.json format"))
		} else {
			s.metadata = md
		}
	}

	return s, findings, nil
}

func parseMetadata(data []byte) (*Metadata, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New("metadata must be a JSON object")
	}
	var md Metadata
	if err := sonic.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &md, nil
}
