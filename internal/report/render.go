package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/bytedance/sonic"
)

// Renderer 将报告输出到 writer。
type Renderer interface {
	Render(w io.Writer, r Report) error
}

// NewRenderer 根据格式名返回渲染器，支持 text 与 json。
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return TextRenderer{}, nil
	case "json":
		return JSONRenderer{}, nil
	}
	return nil, fmt.Errorf("unsupported report format: %s", format)
}

const textTemplate = `Validating session: {{.Session}}
{{rule}}

{{if .Info}}
📋 Information:
{{range .Info}}   ℹ️  {{.Message}}
{{end}}{{end}}{{if .Warnings}}
⚠️  Warnings:
{{range .Warnings}}   ⚠️  {{.Message}}
{{end}}{{end}}{{if .Issues}}
❌ Issues:
{{range .Issues}}   ❌ {{.Message}}
{{end}}{{end}}{{if .Suggestions}}
💡 Suggestions:
{{range .Suggestions}}   💡 {{.Title}}
{{if .Details}}{{indent .Details}}
{{end}}{{end}}{{end}}
{{if .Issues}}❌ Found {{len .Issues}} issue(s) that need attention{{else}}✅ No critical issues found!{{end}}
{{if .Warnings}}⚠️  Found {{len .Warnings}} warning(s)
{{end}}
`

var textTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"rule": func() string { return strings.Repeat("=", 60) },
	"indent": func(s string) string {
		lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
		for i, l := range lines {
			lines[i] = "      " + l
		}
		return strings.Join(lines, "\n")
	},
}).Parse(textTemplate))

// TextRenderer 输出面向人的文本报告：依次为提示、告警、问题。
type TextRenderer struct{}

func (TextRenderer) Render(w io.Writer, r Report) error {
	if w == nil {
		w = os.Stdout
	}
	if err := textTmpl.Execute(w, r); err != nil {
		return fmt.Errorf("render text report: %w", err)
	}
	return nil
}

// JSONRenderer 输出缩进的 JSON 报告，空列表序列化为 [] 而不是 null。
type JSONRenderer struct{}

func (JSONRenderer) Render(w io.Writer, r Report) error {
	if w == nil {
		w = os.Stdout
	}
	data, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
