package prompt_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sonnq3591/plg-hsdt/pkg/prompt"
)

func TestDefault(t *testing.T) {
	c, err := prompt.Default()
	require.NoError(t, err)

	tests := []struct {
		name      string
		maxTokens int
	}{
		{prompt.TenderName, 300},
		{prompt.SupplyScope, 2000},
		{prompt.LegalBasis, 1500},
		{prompt.WorkPurpose, 1500},
		{prompt.StepCount, 50},
		{prompt.ProcedureSection, 4000},
	}
	for _, tt := range tests {
		p, err := c.Get(tt.name)
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.maxTokens, p.MaxTokens, tt.name)
		require.Equal(t, tt.name, p.Name)
		require.Contains(t, p.User, prompt.DocumentToken, tt.name)
	}
}

func TestPrompt_Request(t *testing.T) {
	c, err := prompt.Default()
	require.NoError(t, err)

	req := c.MustGet(prompt.LegalBasis).Request("  Các Văn bản Luật  ")
	require.Equal(t, "Các Văn bản Luật", req.User)
	require.Equal(t, 1500, req.MaxTokens)
	require.Equal(t, prompt.LegalBasis, req.Name)
	require.True(t, strings.HasPrefix(req.System, "You are an expert"))

	req = c.MustGet(prompt.TenderName).Request("NỘI DUNG")
	require.Contains(t, req.User, "NỘI DUNG TBMT:\nNỘI DUNG\n")
	require.NotContains(t, req.User, prompt.DocumentToken)
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[step_count]
max_tokens = 20

[tender_name]
user = "Tên gói thầu trong: {document}"
`), 0o600))

	c, err := prompt.Load(path)
	require.NoError(t, err)

	step := c.MustGet(prompt.StepCount)
	require.Equal(t, 20, step.MaxTokens)
	require.Contains(t, step.User, "STEP COUNT")

	tender := c.MustGet(prompt.TenderName)
	require.Equal(t, "Tên gói thầu trong: x", tender.Request("x").User)
	require.Equal(t, 300, tender.MaxTokens)
}

func TestLoad_BadOverride(t *testing.T) {
	dir := t.TempDir()

	_, err := prompt.Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)

	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[step_count]\nmax_tokens = \"many\"\n"), 0o600))
	_, err = prompt.Load(path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[step_count]\ncolour = \"red\"\n"), 0o600))
	_, err = prompt.Load(path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[new_one]\nmax_tokens = 10\n"), 0o600))
	c, err := prompt.Load(path)
	require.NoError(t, err)
	_, err = c.Get("new_one")
	require.Error(t, err)
}

func TestGet_Unknown(t *testing.T) {
	c, err := prompt.Default()
	require.NoError(t, err)

	_, err = c.Get("nope")
	require.Error(t, err)
	require.Panics(t, func() { c.MustGet("nope") })
}
