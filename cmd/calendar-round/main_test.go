package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar-round/internal/config"
	"github.com/tartampluch/go-calendar-round/internal/cr"
)

func newTestCLI() (*cli, *bytes.Buffer) {
	var out bytes.Buffer
	return &cli{stdout: &out, stderr: &bytes.Buffer{}}, &out
}

func english() *commonFlags {
	return &commonFlags{Lang: config.DefaultLanguage}
}

func TestCommandSet_Registers(t *testing.T) {
	c, _ := newTestCLI()
	assert.NotPanics(t, func() { newCommandSet(c) }, "flag struct tags must be well formed")
}

func TestNext(t *testing.T) {
	c, out := newTestCLI()
	require.NoError(t, c.next(context.Background(), english(), []string{"8 Ajaw 4 Kumk'u"}))
	assert.Equal(t, "9 Imix 5 Kumk'u\n", out.String())
}

func TestShift(t *testing.T) {
	tests := []struct {
		lang string
		date string
		days string
		want string
	}{
		{"en", "1 Imix 0 Pop", "260", "1 Imix 0 K'ank'in"},
		{"en", "8 Ajaw * Kumk'u", "-1", "7 Kawak * *"},
		{"es", "4 Ajaw 8 Kumk'u", "1", "5 Imix 9 Cumkú"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			c, out := newTestCLI()
			err := c.shift(context.Background(), &commonFlags{Lang: tt.lang}, []string{tt.date, tt.days})
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out.String())
		})
	}
}

func TestShift_BadDays(t *testing.T) {
	c, _ := newTestCLI()
	err := c.shift(context.Background(), english(), []string{"4 Ajaw 8 Kumk'u", "tomorrow"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrDaysParse)
}

func TestMatch(t *testing.T) {
	c, out := newTestCLI()
	require.NoError(t, c.match(context.Background(), english(), []string{"* Ajaw * *", "4 Ajaw 8 Kumk'u"}))
	assert.Equal(t, "Equal: no\nMatch: yes\n", out.String())

	c, out = newTestCLI()
	require.NoError(t, c.match(context.Background(), english(), []string{"4 Ajaw 8 Kumk'u", "5 Imix 9 Kumk'u"}))
	assert.Equal(t, "Equal: no\nMatch: no\nDays until: 1\n", out.String())
}

func TestSearch(t *testing.T) {
	c, out := newTestCLI()
	fl := &searchFlags{commonFlags: *english(), Limit: 3}
	require.NoError(t, c.search(context.Background(), fl, []string{"* Ajaw * *"}))
	assert.Equal(t, "4 Ajaw 8 Kumk'u\n11 Ajaw 3 Pop\n5 Ajaw 3 Wo'\n", out.String())

	c, out = newTestCLI()
	fl = &searchFlags{commonFlags: *english()}
	require.NoError(t, c.search(context.Background(), fl, []string{"8 Ajaw 4 Kumk'u"}))
	assert.Equal(t, "No matching dates\n", out.String())

	c, _ = newTestCLI()
	fl = &searchFlags{commonFlags: *english(), From: "4 Ajaw * *"}
	assert.ErrorIs(t, c.search(context.Background(), fl, []string{"* Ajaw * *"}), cr.ErrWildcard)
}

func TestValidate(t *testing.T) {
	c, out := newTestCLI()
	require.NoError(t, c.validate(context.Background(), english(), []string{"* Ajaw * *"}))
	assert.Equal(t, "* Ajaw * *: Valid (Partial)\n", out.String())

	c, out = newTestCLI()
	err := c.validate(context.Background(), english(), []string{"8 Ajaw 4 Kumk'u"})
	assert.ErrorIs(t, err, cr.ErrUnreachable)
	assert.True(t, strings.HasPrefix(out.String(), "8 Ajaw 4 Kumk'u: Invalid: "))

	c, _ = newTestCLI()
	assert.ErrorIs(t, c.validate(context.Background(), english(), []string{"8 Ajaw"}), cr.ErrSyntax)
}

func TestResolve_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.txt")
	content := "# anchors\n13 Ajaw 18 Kumk'u\n14 Ajaw * *\nbogus\n"
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))

	c, out := newTestCLI()
	fl := &resolveFlags{commonFlags: *english(), Source: path, Limit: 2}
	require.NoError(t, c.resolve(context.Background(), fl, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "13 Ajaw 18 Kumk'u: 1 match(es)", lines[0])
	assert.Equal(t, "  13 Ajaw 18 Kumk'u", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "14 Ajaw * *: Invalid: "))
	assert.Equal(t, "1 line(s) skipped", lines[3])
}

func TestResolve_WildcardFromRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.txt")
	require.NoError(t, os.WriteFile(path, []byte("* Ajaw * *\n"), config.FilePermUserRW))

	c, out := newTestCLI()
	fl := &resolveFlags{commonFlags: *english(), Source: path, From: "* * * *"}
	assert.ErrorIs(t, c.resolve(context.Background(), fl, nil), cr.ErrWildcard)
	assert.Empty(t, out.String())
}

func TestUnknownLanguage(t *testing.T) {
	c, _ := newTestCLI()
	err := c.next(context.Background(), &commonFlags{Lang: "de"}, []string{"4 Ajaw 8 Kumk'u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrLangUnknown)
}

func TestVersion(t *testing.T) {
	c, out := newTestCLI()
	require.NoError(t, c.version(context.Background(), nil, nil))
	assert.Contains(t, out.String(), config.AppName)
	assert.Contains(t, out.String(), config.Version)
	assert.Contains(t, out.String(), "commit "+config.Commit)
	assert.Contains(t, out.String(), "built "+config.Date)
}

func TestIsURL(t *testing.T) {
	assert.True(t, isURL("http://example.com/p.txt"))
	assert.True(t, isURL("https://example.com/p.txt"))
	assert.False(t, isURL("patterns.txt"))
	assert.False(t, isURL("ftp://example.com/p.txt"))
}
