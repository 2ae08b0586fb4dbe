// Пакет search — поисковое ядро Movie API: нормализация текста,
// разбор запроса, эвристический scoring и ранжирование с пагинацией.
// Все функции пакета детерминированы и не зависят от локали.
package search

import "strings"

// Normalize приводит текст к канонической поисковой форме:
// нижний регистр, все символы вне [a-z0-9] заменяются пробелом,
// серии пробелов схлопываются в один, края обрезаются.
// Тотальная функция: пустой вход даёт пустую строку.
// Идемпотентна: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
			pendingSpace = false
			continue
		}
		// Любой другой символ — разделитель
		pendingSpace = true
	}

	return b.String()
}

// BuildHaystack строит нормализованный поисковый текст записи
// из названия и имени файла. Вычисляется один раз при загрузке каталога.
func BuildHaystack(title, fileName string) string {
	return Normalize(title + " " + fileName)
}
