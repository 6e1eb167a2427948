package diagnostics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supperghost/termsre/internal/collectors"
	"github.com/supperghost/termsre/pkg/models"
)

const probeOutput = `TERM type: xterm
Terminfo entry exists: No

Capabilities:
  colors     (Number of colors              ): 8
  lines      (Terminal lines                ): 24

UTF-8 in environment: No
`

func TestTextParser(t *testing.T) {
	a := TextParser{}.Parse(probeOutput)

	require.NotNil(t, a.UTF8InEnvironment)
	assert.False(t, *a.UTF8InEnvironment)
	require.NotNil(t, a.TerminfoExists)
	assert.False(t, *a.TerminfoExists)
	require.NotNil(t, a.Colors)
	assert.Equal(t, 8, *a.Colors)
}

func TestTextParser_PositiveReport(t *testing.T) {
	a := TextParser{}.Parse("UTF-8 in environment: Yes\nTerminfo entry exists: Yes\n")

	assert.Nil(t, a.UTF8InEnvironment)
	assert.Nil(t, a.TerminfoExists)
	assert.Nil(t, a.Colors)
}

func TestEvaluate_AllNegative(t *testing.T) {
	findings, suggestions := Evaluate(TextParser{}.Parse(probeOutput), DefaultMinColors)

	assert.Equal(t, []models.Finding{
		models.Issue("diagnostics.utf8", "Diagnostics show UTF-8 not in environment"),
		models.Issue("diagnostics.terminfo", "Terminal type not found in terminfo database"),
		models.Warning("diagnostics.colors", "Terminal only supports 8 colors (recommend 256+)"),
	}, findings)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "diagnostics.terminfo", suggestions[0].FindingID)
}

func TestEvaluate_SixteenColors(t *testing.T) {
	findings, _ := Evaluate(TextParser{}.Parse("colors      : 16"), DefaultMinColors)

	require.Len(t, findings, 1)
	assert.Equal(t, models.SeverityWarning, findings[0].Severity)
	assert.Equal(t, "Terminal only supports 16 colors (recommend 256+)", findings[0].Message)
}

func TestEvaluate_EnoughColors(t *testing.T) {
	findings, _ := Evaluate(TextParser{}.Parse("  colors     (Number of colors              ): 256\n"), DefaultMinColors)
	assert.Empty(t, findings)

	findings, _ = Evaluate(TextParser{}.Parse("colors : 88"), 64)
	assert.Empty(t, findings)
}

type stubParser struct {
	got string
	out Assertions
}

func (p *stubParser) Parse(content string) Assertions {
	p.got = content
	return p.out
}

func TestPlugin_UsesInjectedParser(t *testing.T) {
	colors := 8
	parser := &stubParser{out: Assertions{Colors: &colors}}
	s := collectors.NewSession("s", collectors.Artifact{
		Kind: collectors.KindDiagnostics,
		Data: []byte(`{"colors": 8}`),
	})

	res, err := New(parser, DefaultMinColors).Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, `{"colors": 8}`, parser.got)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "diagnostics.colors", res.Findings[0].ID)
}

func TestPlugin_MissingArtifact(t *testing.T) {
	res, err := New(nil, DefaultMinColors).Run(context.Background(), collectors.NewSession("s"))
	require.NoError(t, err)
	assert.Equal(t, []models.Finding{
		models.Info("diagnostics.missing", "No diagnostics file available"),
	}, res.Findings)
}
