package decoder

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supperghost/termsre/pkg/models"
)

func TestDecode_ValidUTF8(t *testing.T) {
	dt := Decode([]byte("hello ┌─┐ 你好 😀\n"))

	assert.False(t, dt.Lossy)
	assert.Equal(t, -1, dt.FirstInvalid)
	assert.Equal(t, 0, dt.Replacements)
	assert.Equal(t, "hello ┌─┐ 你好 😀\n", dt.Text)
	assert.Empty(t, Findings(dt))
}

func TestDecode_LiteralReplacementCharacter(t *testing.T) {
	dt := Decode([]byte("broken � glyph"))

	assert.False(t, dt.Lossy)
	assert.Equal(t, -1, dt.FirstInvalid)
	assert.Equal(t, 1, dt.Replacements)

	findings := Findings(dt)
	require.Len(t, findings, 1)
	assert.Equal(t, FindingReplacements, findings[0].ID)
	assert.Equal(t, models.SeverityIssue, findings[0].Severity)
}

func TestDecode_InvalidBytes(t *testing.T) {
	dt := Decode([]byte("ab\xffcd\xfe"))

	assert.True(t, dt.Lossy)
	assert.Equal(t, 2, dt.FirstInvalid)
	assert.Equal(t, "ab�cd�", dt.Text)
	assert.Equal(t, 2, dt.Replacements)

	findings := Findings(dt)
	require.Len(t, findings, 2)
	assert.Equal(t, models.Issue(FindingDecodeError, "UTF-8 decode error in typescript at position 2"), findings[0])
	assert.Equal(t, models.Issue(FindingReplacements, "Found 2 replacement characters (�) - encoding issue"), findings[1])
}

func TestDecode_MaximalSubpart(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		first int
	}{
		{"truncated three-byte", "a\xe2\x82b", "a�b", 1},
		{"truncated four-byte at end", "x\xf0\x9f\x98", "x�", 1},
		{"surrogate is per byte", "\xed\xa0\x80", "���", 0},
		{"overlong two-byte", "\xc0\xafz", "��z", 0},
		{"lone continuation", "ok\x80ok", "ok�ok", 2},
		{"valid after invalid", "\xff😀", "�😀", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt := Decode([]byte(tt.in))
			assert.Equal(t, tt.want, dt.Text)
			assert.Equal(t, tt.first, dt.FirstInvalid)
		})
	}
}

func TestFindings_CountMatchesReplacements(t *testing.T) {
	// N 个非法子序列：恰好一条首错 Finding，加一条计数等于替换字符数的 Finding。
	inputs := [][]byte{
		[]byte("\x80"),
		[]byte("a\x80b\x81c\x82"),
		[]byte("\xe2\x82 \xe2\x82 \xe2\x82"),
		append([]byte("pre � "), 0xff),
	}

	for _, in := range inputs {
		dt := Decode(in)
		findings := Findings(dt)
		require.Len(t, findings, 2)

		var firstFailure, counts int
		for _, f := range findings {
			switch f.ID {
			case FindingDecodeError:
				firstFailure++
			case FindingReplacements:
				counts++
				assert.Contains(t, f.Message, "Found "+strconv.Itoa(dt.Replacements)+" replacement")
			}
		}
		assert.Equal(t, 1, firstFailure)
		assert.Equal(t, 1, counts)
	}
}

func TestGuessCharset_NotUTF8(t *testing.T) {
	data := []byte("Caf\xe9 cr\xe8me br\xfbl\xe9e, na\xefve r\xe9sum\xe9 fa\xe7ade \xe0 la carte")
	assert.NotEqual(t, "UTF-8", GuessCharset(data))
}

func TestIconvName(t *testing.T) {
	assert.Equal(t, "GB18030", IconvName("GB-18030"))
	assert.Equal(t, "IBM424", IconvName("IBM424_rtl"))
	assert.Equal(t, "ISO-8859-1", IconvName("ISO-8859-1"))
	assert.Equal(t, "Shift_JIS", IconvName("Shift_JIS"))
}
