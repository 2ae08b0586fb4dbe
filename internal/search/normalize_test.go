package search

import "testing"

// TestNormalize проверяет каноническую форму для типичных входов.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"пустая строка", "", ""},
		{"только разделители", "***///---", ""},
		{"нижний регистр", "Avengers", "avengers"},
		{"пунктуация в пробел", "Avengers: Endgame", "avengers endgame"},
		{"схлопывание пробелов", "avengers    endgame", "avengers endgame"},
		{"обрезка краёв", "  avengers  ", "avengers"},
		{"имя файла", "Avengers.Endgame.2019.1080p.BluRay.mkv", "avengers endgame 2019 1080p bluray mkv"},
		{"подчёркивания и дефисы", "war_and-peace", "war and peace"},
		{"не-латиница заменяется", "кино avengers", "avengers"},
		{"цифры сохраняются", "2001 a space odyssey", "2001 a space odyssey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, ожидалось %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestNormalize_Idempotent проверяет идемпотентность нормализации.
func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Avengers: Endgame (2019)",
		"  MIXED.case_FILE-name.mkv  ",
		"a1 b2 c3",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize не идемпотентна для %q: %q != %q", input, once, twice)
		}
	}
}

// TestBuildHaystack проверяет объединение названия и имени файла.
func TestBuildHaystack(t *testing.T) {
	got := BuildHaystack("Avengers: Endgame", "Avengers.Endgame.2019.1080p.mkv")
	want := "avengers endgame avengers endgame 2019 1080p mkv"
	if got != want {
		t.Errorf("BuildHaystack = %q, ожидалось %q", got, want)
	}

	// Оба поля пустые — пустой haystack
	if got := BuildHaystack("", ""); got != "" {
		t.Errorf("BuildHaystack(\"\", \"\") = %q, ожидалась пустая строка", got)
	}
}
