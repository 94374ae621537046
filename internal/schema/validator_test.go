package schema

import (
	"errors"
	"strings"
	"testing"
)

const validManifest = `{
  "version": "2.0.0",
  "description": "A sample tool",
  "homepage": "https://github.com/owner/sample-tool",
  "bin": [["sample-tool-win-x64.exe", "sample-tool"]],
  "shortcuts": [["sample-tool.exe", "sample-tool"]],
  "license": "MIT",
  "architecture": {
    "64bit": {
      "url": "https://host/v2.0.0/sample-tool-win-x64.zip",
      "hash": "sha256:abc"
    }
  },
  "checkver": {"github": "https://github.com/owner/sample-tool"},
  "autoupdate": {
    "architecture": {
      "64bit": {"url": "https://host/v$version/sample-tool-win-x64.zip"}
    }
  }
}`

func TestValidateManifest_Embedded(t *testing.T) {
	if _, err := compileManifestSchema(); err != nil {
		t.Fatalf("embedded schema does not compile: %v", err)
	}
}

func TestValidateManifest(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid manifest",
			data: validManifest,
		},
		{
			name: "plain bin and no hash",
			data: `{
				"version": "1.0", "description": "", "homepage": "https://example.com",
				"bin": "tool.exe", "license": "unknown",
				"architecture": {"64bit": {"url": "https://example.com/tool.exe"}},
				"checkver": {"github": "https://github.com/o/tool"},
				"autoupdate": {"architecture": {"64bit": {"url": "https://example.com/tool.exe"}}}
			}`,
		},
		{
			name:    "missing version",
			data:    `{"description": "x"}`,
			wantErr: true,
		},
		{
			name: "unknown architecture key",
			data: `{
				"version": "1.0", "description": "", "homepage": "https://example.com",
				"bin": "tool.exe", "license": "MIT",
				"architecture": {"ppc": {"url": "https://example.com/tool.exe"}},
				"checkver": {"github": "https://github.com/o/tool"},
				"autoupdate": {"architecture": {"64bit": {"url": "https://example.com/tool.exe"}}}
			}`,
			wantErr: true,
		},
		{
			name: "malformed hash",
			data: `{
				"version": "1.0", "description": "", "homepage": "https://example.com",
				"bin": "tool.exe", "license": "MIT",
				"architecture": {"64bit": {"url": "https://example.com/tool.exe", "hash": "not a hash"}},
				"checkver": {"github": "https://github.com/o/tool"},
				"autoupdate": {"architecture": {"64bit": {"url": "https://example.com/tool.exe"}}}
			}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			data:    `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManifest([]byte(tt.data))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestValidateManifest_ErrorLocation(t *testing.T) {
	err := ValidateManifest([]byte(`{"version": "1.0"}`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	msg := err.Error()
	if strings.Contains(msg, "file://") {
		t.Errorf("error should not reference the working directory: %s", msg)
	}
	if !strings.Contains(msg, manifestSchemaURL) {
		t.Errorf("error should name the schema %s: %s", manifestSchemaURL, msg)
	}
}
