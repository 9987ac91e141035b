package errors

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name        string
		err         *CompileError
		source      string
		file        string
		wantContain []string
	}{
		{
			name:    "parse error with file and line",
			err:     Parse(2, "expected %s but found %s", "eol", "id"),
			source:  "fun main()\nin x\nendfun\n",
			file:    "test.ram",
			wantContain: []string{
				"test.ram:2: ",
				"syntax error",
				"   2 | in x",
				"^",
				"expected eol but found id",
			},
		},
		{
			name:    "semantic error without file",
			err:     Semantic(3, "redeclaration of variable '%s'", "x"),
			source:  "line1\nline2\nline3 with error\nline4",
			file:    "",
			wantContain: []string{
				"semantic error",
				"   3 | line3 with error",
				"^",
				"redeclaration of variable 'x'",
			},
		},
		{
			name:   "io error carries no line",
			err:    IO(nil, "cannot read %s", "missing.ram"),
			source: "",
			file:   "missing.ram",
			wantContain: []string{
				"missing.ram: ",
				"error",
				"cannot read missing.ram",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.err, tt.source, tt.file, false)
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Format() output missing expected string\nwant substring: %q\ngot:\n%s", want, got)
				}
			}
		})
	}
}

func TestErrorMessageIncludesLine(t *testing.T) {
	err := Parse(7, "unexpected token")
	if got := err.Error(); !strings.Contains(got, "line 7") {
		t.Errorf("expected Error() to mention the line number, got %q", got)
	}
}

func TestErrorMessageOmitsLineWhenZero(t *testing.T) {
	err := IO(nil, "pipe closed")
	if got := err.Error(); strings.Contains(got, "line 0") {
		t.Errorf("expected Error() to omit a zero line number, got %q", got)
	}
}

func TestLabelsByKind(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindLex, "syntax error"},
		{KindParse, "syntax error"},
		{KindSemantic, "semantic error"},
		{KindIO, "error"},
	}
	for _, tt := range tests {
		if got := tt.kind.Label(); got != tt.want {
			t.Errorf("Kind(%d).Label() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
