package main

import "testing"

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "hello", "hello"},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"tab", "a\tb", "a b"},
		{"control", "a\x01b\x7f", "ab"},
		{"invalid utf8", "x\xffy", "xy"},
		{"rtf", "{\\rtf1\\ansi{\\fonttbl\\f0\\fswiss Helvetica;}\n\\f0 Hello\\par\nWorld}", "Hello\nWorld"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanClipboardText(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripRTF(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"not rtf", "{plain}", "{plain}"},
		{"escapes", `{\rtf1 a\{b\}c\\d}`, `a{b}c\d`},
		{"color table", `{\rtf1{\colortbl;\red255\green0\blue0;}{\*\expandedcolortbl;;}\cf1 red}`, "red"},
		{"line", `{\rtf1 one\line two}`, "one\ntwo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripRTF(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
