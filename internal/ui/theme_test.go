package ui

import "testing"

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Nord"); got.Name != "Nord" {
		t.Fatalf("GetTheme(Nord).Name = %q", got.Name)
	}
	if got := GetTheme("unknown"); got.Name != "Dracula" {
		t.Fatalf("GetTheme fallback = %q, want Dracula", got.Name)
	}
	if got := GetTheme(""); got.Name != "Dracula" {
		t.Fatalf("GetTheme empty = %q, want Dracula", got.Name)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	seen := map[string]bool{}
	name := "Dracula"
	for i := 0; i < len(themeOrder); i++ {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != "Dracula" {
		t.Fatalf("cycle did not wrap: ended at %q", name)
	}
	for _, want := range themeOrder {
		if !seen[want] {
			t.Fatalf("cycle skipped %q", want)
		}
	}

	if got := NextTheme("bogus"); got != "Dracula" {
		t.Fatalf("NextTheme(bogus) = %q, want Dracula", got)
	}
}

func TestThemesHaveCompleteColorSets(t *testing.T) {
	for name, th := range themes {
		for field, value := range map[string]string{
			"Text":    th.Text,
			"Muted":   th.Muted,
			"Accent":  th.Accent,
			"Success": th.Success,
			"Danger":  th.Danger,
			"Border":  th.Border,
		} {
			if value == "" {
				t.Fatalf("theme %s missing %s", name, field)
			}
		}
	}
}
