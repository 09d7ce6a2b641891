package langdetect

import "testing"

func TestTagForFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{
			name:    "go by extension",
			file:    "main.go",
			content: "package main\n\nfunc main() {}\n",
			want:    "go",
		},
		{
			name:    "python by extension",
			file:    "script.py",
			content: "def main():\n    pass\n",
			want:    "python",
		},
		{
			name:    "dockerfile by well-known name",
			file:    "Dockerfile",
			content: "FROM alpine\nRUN true\n",
			want:    "dockerfile",
		},
		{
			name:    "shell maps to bash",
			file:    "setup.sh",
			content: "#!/bin/sh\necho hi\n",
			want:    "bash",
		},
		{
			name:    "shebang on extensionless script",
			file:    "runner",
			content: "#!/usr/bin/env python3\nprint('x')\n",
			want:    "python",
		},
		{
			name:    "nested path uses the base name",
			file:    "cmd/app/main.go",
			content: "package main\n",
			want:    "go",
		},
		{
			name:    "unknown falls back to text",
			file:    "data.xyzzy",
			content: "\x01\x02\x03",
			want:    PlainTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := TagForFile(tt.file, []byte(tt.content))
			if got != tt.want {
				t.Errorf("TagForFile(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func TestNormalize_TagIsFenceSafe(t *testing.T) {
	t.Parallel()

	for _, lang := range []string{"Go", "Protocol Buffer", "Shell", "C++", "F#"} {
		tag := normalize(lang)
		for _, r := range tag {
			if r == '.' || r == ' ' || r == '`' {
				t.Errorf("normalize(%q) = %q contains unsafe rune %q", lang, tag, r)
			}
		}
	}
}
