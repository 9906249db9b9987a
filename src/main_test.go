package main

import "testing"

func TestReopenPath(t *testing.T) {
	tests := []struct {
		file string
		out  string
		want string
	}{
		{"in.rle", "out.rle", "in.rle"},
		{"", "out.rle", "out.rle"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := reopenPath(&EnvOptions{file: tt.file, out: tt.out}); got != tt.want {
			t.Errorf("file %q out %q: got %q, want %q", tt.file, tt.out, got, tt.want)
		}
	}
}
