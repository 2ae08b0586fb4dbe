// query.go — разбор поискового запроса: значимые токены и подсказка года.
package search

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidQuery — пустой или вырожденный поисковый запрос
// (после нормализации не осталось ни одного значимого токена).
var ErrInvalidQuery = errors.New("пустой или вырожденный поисковый запрос")

// yearPattern — 4-значное число, похожее на год выпуска (19xx/20xx).
var yearPattern = regexp.MustCompile(`(19|20)[0-9]{2}`)

// Query — разобранный поисковый запрос.
type Query struct {
	// Raw — исходная строка запроса (для эха в ответе)
	Raw string
	// Tokens — значимые токены нормализованного запроса (длина >= 2)
	Tokens []string
	// Year — подсказка года: первое вхождение 19xx/20xx, пустая строка — нет
	Year string
}

// Analyze разбирает сырой запрос: нормализует, выделяет значимые токены
// (длина >= 2, одиночные символы отбрасываются как шум) и подсказку года.
// Возвращает ErrInvalidQuery, если запрос пуст или токенов не осталось.
func Analyze(raw string) (*Query, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrInvalidQuery
	}

	normalized := Normalize(raw)

	var tokens []string
	for _, tok := range strings.Fields(normalized) {
		if len(tok) >= 2 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil, ErrInvalidQuery
	}

	return &Query{
		Raw:    raw,
		Tokens: tokens,
		Year:   yearPattern.FindString(normalized),
	}, nil
}

// isNumeric возвращает true, если токен состоит только из цифр.
// Такие токены исключены из substring-правила scorer'а — они участвуют
// в счёте только через подсказку года.
func isNumeric(tok string) bool {
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(tok) > 0
}
