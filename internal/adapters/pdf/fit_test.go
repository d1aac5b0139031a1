package pdf

import (
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
)

func TestFit_KeepsNonASCIIWhenTruncating(t *testing.T) {
	p := fpdf.New("L", "mm", "Letter", "")
	p.AddPage()
	p.SetFont("Helvetica", "", 8.5)
	tr := p.UnicodeTranslatorFromDescriptor("")

	name := "Åsa Östergren-Lindqvist Söderberg"
	got := fit(p, tr, name, 30)

	if !strings.HasPrefix(got, tr("Åsa Öst")) {
		t.Errorf("fit(%q) = %q, want prefix %q", name, got, tr("Åsa Öst"))
	}
	if !strings.HasSuffix(got, tr("…")) {
		t.Errorf("fit(%q) = %q, want trailing ellipsis", name, got)
	}
	if strings.Contains(got, "�") {
		t.Errorf("fit(%q) = %q contains replacement characters", name, got)
	}
	if w := p.GetStringWidth(got); w > 30 {
		t.Errorf("width %.1f exceeds 30", w)
	}
}

func TestFit_ShortTextUnchanged(t *testing.T) {
	p := fpdf.New("L", "mm", "Letter", "")
	p.AddPage()
	p.SetFont("Helvetica", "", 8.5)
	tr := p.UnicodeTranslatorFromDescriptor("")

	if got, want := fit(p, tr, "Malmö", 30), tr("Malmö"); got != want {
		t.Errorf("fit = %q, want %q", got, want)
	}
	if got := fit(p, tr, "Stockholm", 0.1); got != "" {
		t.Errorf("fit into no room = %q, want empty", got)
	}
}
