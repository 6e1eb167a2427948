package collectors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// Kind 标识会话目录中的一类产物。
type Kind string

const (
	KindMetadata    Kind = "metadata"
	KindEnvironment Kind = "environment"
	KindLocale      Kind = "locale"
	KindTranscript  Kind = "transcript"
	KindDiagnostics Kind = "diagnostics"
)

// Kinds 按固定顺序列出全部产物类型，加载与报告都按该顺序进行。
var Kinds = []Kind{KindMetadata, KindEnvironment, KindLocale, KindTranscript, KindDiagnostics}

var fileNames = map[Kind]string{
	KindMetadata:    "metadata.json",
	KindEnvironment: "environment.txt",
	KindLocale:      "locale.txt",
	KindTranscript:  "typescript",
	KindDiagnostics: "diagnostics.txt",
}

// FileName 返回产物在会话目录中的文件名。
func (k Kind) FileName() string {
	return fileNames[k]
}

// Artifact 表示一次采集到的产物。Present 为 false 时其余字段为空。
type Artifact struct {
	Kind    Kind
	Path    string
	Present bool
	Data    []byte
	// 内容嗅探得到的 MIME 类型，写入日志与 JSON 报告。
	MIME string
	// Binary 表示内容被识别为某种非文本格式（压缩包、图片、可执行文件等）。
	Binary bool
}

// Text 以字符串形式返回产物内容。
func (a Artifact) Text() string {
	return string(a.Data)
}

// Collector 负责从会话目录中采集单个产物。
type Collector interface {
	Kind() Kind
	// Collect 读取产物；文件不存在时返回 Present=false 且 err 为 nil。
	Collect(ctx context.Context, dir string) (Artifact, error)
}

// FileCollector 按固定文件名读取产物。
type FileCollector struct {
	kind Kind
}

// NewFileCollector 为指定类型创建采集器。
func NewFileCollector(kind Kind) *FileCollector {
	return &FileCollector{kind: kind}
}

func (c *FileCollector) Kind() Kind {
	return c.kind
}

func (c *FileCollector) Collect(ctx context.Context, dir string) (Artifact, error) {
	a := Artifact{
		Kind: c.kind,
		Path: filepath.Join(dir, c.kind.FileName()),
	}
	if err := ctx.Err(); err != nil {
		return a, err
	}

	st, err := os.Stat(a.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return a, nil
	}
	if err != nil {
		return a, fmt.Errorf("stat %s: %w", a.Path, err)
	}
	if st.IsDir() {
		return a, fmt.Errorf("%s is a directory", a.Path)
	}

	data, err := os.ReadFile(a.Path)
	if err != nil {
		return a, fmt.Errorf("read %s: %w", a.Path, err)
	}

	a.Present = true
	a.Data = data
	mt := mimetype.Detect(data)
	a.MIME = mt.String()
	a.Binary = isBinaryFormat(mt)
	return a, nil
}

// isBinaryFormat 只在识别出具体的非文本格式时返回 true。
// 无法识别的内容（application/octet-stream）不算：含退格等控制字符的录制也会落到这里。
func isBinaryFormat(mt *mimetype.MIME) bool {
	if mt.Is("application/octet-stream") {
		return false
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return false
		}
	}
	return true
}
