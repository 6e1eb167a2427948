package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supperghost/termsre/pkg/models"
)

func sampleResults() []models.Result {
	return []models.Result{
		{
			Plugin: "a",
			Findings: []models.Finding{
				models.Info("a.1", "first info"),
				models.Issue("a.2", "first issue"),
				models.Info("a.3", "second info"),
			},
		},
		{
			Plugin: "b",
			Findings: []models.Finding{
				models.Warning("b.1", "only warning"),
				models.Issue("b.2", "second issue"),
			},
			Suggestions: []models.Suggestion{{FindingID: "b.2", Title: "fix it", Details: "line one\nline two"}},
		},
	}
}

func TestAggregate_BucketsPreserveOrder(t *testing.T) {
	r := Aggregate("sess", sampleResults()...)

	assert.Equal(t, "sess", r.Session)
	assert.Equal(t, []models.Finding{models.Info("a.1", "first info"), models.Info("a.3", "second info")}, r.Info)
	assert.Equal(t, []models.Finding{models.Warning("b.1", "only warning")}, r.Warnings)
	assert.Equal(t, []models.Finding{models.Issue("a.2", "first issue"), models.Issue("b.2", "second issue")}, r.Issues)
	require.Len(t, r.Suggestions, 1)

	var ids []string
	for _, f := range r.Findings() {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"a.1", "a.3", "b.1", "a.2", "b.2"}, ids)
}

func TestReport_FailedOnlyOnIssues(t *testing.T) {
	warnOnly := Aggregate("s", models.Result{Findings: []models.Finding{
		models.Warning("w1", "w"), models.Warning("w2", "w"), models.Info("i", "i"),
	}})
	assert.False(t, warnOnly.Failed())
	assert.Equal(t, 0, warnOnly.ExitCode())

	withIssue := Aggregate("s", models.Result{Findings: []models.Finding{models.Issue("x", "x")}})
	assert.True(t, withIssue.Failed())
	assert.Equal(t, 1, withIssue.ExitCode())

	empty := Aggregate("s")
	assert.False(t, empty.Failed())
	assert.Empty(t, empty.Findings())
}

func TestAggregate_UnknownSeverityIsNotInfo(t *testing.T) {
	r := Aggregate("s", models.Result{Findings: []models.Finding{
		{ID: "x.critical", Severity: "critical", Message: "bad"},
		{ID: "x.empty", Message: "zero value"},
	}})
	assert.Empty(t, r.Info)
	assert.Len(t, r.Warnings, 2)
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TextRenderer{}.Render(&buf, Aggregate("sess", sampleResults()...)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Validating session: sess\n"+strings.Repeat("=", 60)+"\n"))
	assert.Contains(t, out, "   ℹ️  first info\n")
	assert.Contains(t, out, "   ⚠️  only warning\n")
	assert.Contains(t, out, "   ❌ second issue\n")
	assert.Contains(t, out, "   💡 fix it\n      line one\n      line two\n")
	assert.Contains(t, out, "❌ Found 2 issue(s) that need attention\n")
	assert.Contains(t, out, "⚠️  Found 1 warning(s)\n")

	info := strings.Index(out, "📋 Information:")
	warn := strings.Index(out, "⚠️  Warnings:")
	issues := strings.Index(out, "❌ Issues:")
	require.True(t, info >= 0 && warn >= 0 && issues >= 0)
	assert.Less(t, info, warn)
	assert.Less(t, warn, issues)
}

func TestTextRenderer_Clean(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TextRenderer{}.Render(&buf, Aggregate("ok")))
	out := buf.String()

	assert.Contains(t, out, "✅ No critical issues found!\n")
	assert.NotContains(t, out, "Information:")
	assert.NotContains(t, out, "Warnings:")
	assert.NotContains(t, out, "warning(s)")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONRenderer{}.Render(&buf, Aggregate("sess", sampleResults()...)))

	var decoded Report
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, Aggregate("sess", sampleResults()...), decoded)

	buf.Reset()
	require.NoError(t, JSONRenderer{}.Render(&buf, Aggregate("empty")))
	assert.Contains(t, buf.String(), `"issues": []`)
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)
	assert.IsType(t, TextRenderer{}, r)

	r, err = NewRenderer("JSON")
	require.NoError(t, err)
	assert.IsType(t, JSONRenderer{}, r)

	_, err = NewRenderer("xml")
	assert.Error(t, err)
}
