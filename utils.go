package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// readClipboardText prefers pbpaste's plain-text flavor on macOS, where the
// generic reader can hand back RTF.
func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// cleanClipboardText reduces pasted content to plain lines. Invalid UTF-8,
// RTF markup and control characters are dropped; line endings become \n and
// tabs a space.
func cleanClipboardText(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = stripRTF(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case r < 32 || r == 0x7f:
			return -1
		}
		return r
	}, text)
}

// stripRTF keeps the visible text of an RTF document. Metadata groups,
// control words and raw line breaks are skipped; \par and \line become
// line breaks.
func stripRTF(text string) string {
	if !strings.HasPrefix(text, "{\\rtf") {
		return text
	}
	var out strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '{':
			if isRTFDestination(runes[i+1:]) {
				i = skipGroup(runes, i)
			}
			continue
		case '}', '\n', '\r':
			continue
		case '\\':
		default:
			out.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			break
		}
		next := runes[i+1]
		if next == '\\' || next == '{' || next == '}' {
			out.WriteRune(next)
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && isASCIILetter(runes[j]) {
			j++
		}
		word := string(runes[i+1 : j])
		for j < len(runes) && (runes[j] == '-' || (runes[j] >= '0' && runes[j] <= '9')) {
			j++
		}
		if j < len(runes) && runes[j] == ' ' {
			j++
		}
		if word == "par" || word == "line" {
			out.WriteRune('\n')
		}
		i = j - 1
	}
	return strings.TrimSpace(out.String())
}

var rtfDestinations = []string{"\\*", "\\fonttbl", "\\colortbl", "\\stylesheet", "\\info", "\\expandedcolortbl"}

// isRTFDestination reports whether a group starting at rest holds metadata
// rather than text.
func isRTFDestination(rest []rune) bool {
	head := string(rest[:min(len(rest), 20)])
	for _, d := range rtfDestinations {
		if strings.HasPrefix(head, d) {
			return true
		}
	}
	return false
}

// skipGroup returns the index of the brace closing the group opened at i.
func skipGroup(runes []rune, i int) int {
	depth := 0
	for ; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(runes) - 1
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
