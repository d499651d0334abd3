package ui

import "testing"

func TestFormatterWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := Error.Sprintf("bad %s", "peg"); got != "[error] bad peg" {
		t.Errorf("Error.Sprintf() = %q", got)
	}

	if got := Path.Sprint("a.txt"); got != "a.txt" {
		t.Errorf("Path.Sprint() = %q", got)
	}

	if got := Warning.Sprint("vault"); got != "[warn] vault" {
		t.Errorf("Warning.Sprint() = %q", got)
	}
}
