package markdown

import "testing"

func TestPlainStripsSyntax(t *testing.T) {
	t.Parallel()

	src := "# Heading\n\nSome *emphasis* and a [link](https://example.com/page).\n\n- item one\n- item two\n"
	got := Plain(src)
	want := "Heading Some emphasis and a link. item one item two"
	if got != want {
		t.Fatalf("Plain = %q, want %q", got, want)
	}
}

func TestPlainEmpty(t *testing.T) {
	t.Parallel()

	if got := Plain("   \n"); got != "" {
		t.Fatalf("Plain(blank) = %q, want empty", got)
	}
}
