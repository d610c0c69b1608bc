package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertdigital/ml4ir/internal/testutils"
)

const searchSignature = `
fields:
  - name: query
    required: true
  - name: locale
`

func TestReadPayload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"query": "shoes"}`), 0o644))

	tests := []struct {
		name    string
		arg     string
		stdin   string
		want    map[string]any
		wantErr bool
	}{
		{name: "File", arg: path, want: map[string]any{"query": "shoes"}},
		{name: "Stdin", arg: "-", stdin: `{"locale": "en"}`, want: map[string]any{"locale": "en"}},
		{name: "Inline", arg: ` {"query": null}`, want: map[string]any{"query": nil}},
		{name: "Null document", arg: "-", stdin: "null", want: map[string]any{}},
		{name: "Not an object", arg: "-", stdin: `["query"]`, wantErr: true},
		{name: "Missing file", arg: filepath.Join(dir, "nope.json"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPayload(strings.NewReader(tt.stdin), tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, map[string]any(got))
		})
	}
}

func TestCommands(t *testing.T) {
	dir := testutils.SetupSignatureDir(t, map[string]string{"search.yaml": searchSignature})
	envPath := filepath.Join(dir, "missing.env")

	tests := []struct {
		name     string
		args     []string
		contains []string
		wantErr  bool
	}{
		{
			name:     "Check",
			args:     []string{"check"},
			contains: []string{"✔ search (2 fields, 1 required)"},
		},
		{
			name:     "Validate accepted",
			args:     []string{"validate", "search", `{"query": "shoes"}`},
			contains: []string{`"ok": true`},
		},
		{
			name:     "Validate rejected",
			args:     []string{"validate", "search", `{"locale": "en"}`},
			contains: []string{`"ok": false`, `"missing_required"`},
			wantErr:  true,
		},
		{
			name:     "Schema",
			args:     []string{"schema", "search"},
			contains: []string{`"required"`, `"query"`},
		},
		{
			name:     "Fields",
			args:     []string{"fields", "search"},
			contains: []string{"| 1 | `query` | string | yes |"},
		},
		{
			name:    "Unknown model",
			args:    []string{"fields", "ranking"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(append(tt.args, "--dir", dir, "--env", envPath, "--log-level", "error"))

			err := rootCmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}
