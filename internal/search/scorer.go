// scorer.go — эвристический расчёт релевантности записи для запроса.
// Счёт — сумма независимых правил с фиксированными весами; результат
// полностью воспроизводим при одинаковых входных данных.
package search

import "strings"

// Mode — режим сопоставления токенов.
type Mode string

const (
	// ModeRanked — частичное совпадение: любой токен добавляет вес,
	// записи с итоговым счётом <= 0 исключаются. Режим по умолчанию.
	ModeRanked Mode = "ranked"
	// ModeStrict — строгий AND: каждый нечисловой токен обязан
	// встретиться в haystack, иначе запись исключается целиком.
	ModeStrict Mode = "strict"
)

// Веса правил. Константы зафиксированы для воспроизводимости.
const (
	tokenMatchWeight  = 50
	yearPresentWeight = 25
	yearAbsentPenalty = 10

	quality1080pBoost = 10
	quality720pBoost  = 5
	quality480pBoost  = 2

	hindiBoost   = 5
	englishBoost = 3
)

// scoreRule — одно независимое правило scoring'а.
// Правила применяются аддитивно в фиксированном порядке.
type scoreRule struct {
	name  string
	apply func(q *Query, haystack string) int
}

// rules — упорядоченный набор правил релевантности.
var rules = []scoreRule{
	{name: "token_match", apply: scoreTokens},
	{name: "year_hint", apply: scoreYear},
	{name: "quality", apply: scoreQuality},
	{name: "language", apply: scoreLanguage},
}

// Scorer — расчёт релевантности в выбранном режиме сопоставления.
type Scorer struct {
	mode Mode
}

// NewScorer создаёт Scorer. Неизвестный режим трактуется как ranked.
func NewScorer(mode Mode) *Scorer {
	if mode != ModeStrict {
		mode = ModeRanked
	}
	return &Scorer{mode: mode}
}

// Mode возвращает текущий режим сопоставления.
func (s *Scorer) Mode() Mode { return s.mode }

// Score возвращает релевантность записи с данным haystack для запроса q.
// Счёт <= 0 означает «не совпало» — вызывающий код исключает такие записи.
// В строгом режиме отсутствие любого нечислового токена обнуляет счёт.
func (s *Scorer) Score(q *Query, haystack string) int {
	if s.mode == ModeStrict && !allTokensMatch(q, haystack) {
		return 0
	}

	total := 0
	for _, rule := range rules {
		total += rule.apply(q, haystack)
	}
	return total
}

// scoreTokens — +50 за каждый нечисловой токен, найденный как подстрока.
// Чисто числовые токены пропускаются: год уже учтён правилом year_hint,
// а случайные числовые совпадения (номера дорожек) не должны давать вес.
func scoreTokens(q *Query, haystack string) int {
	score := 0
	for _, tok := range q.Tokens {
		if isNumeric(tok) {
			continue
		}
		if strings.Contains(haystack, tok) {
			score += tokenMatchWeight
		}
	}
	return score
}

// scoreYear — +25 если подсказка года найдена в haystack, иначе -10.
// Без подсказки года правило нейтрально.
func scoreYear(q *Query, haystack string) int {
	if q.Year == "" {
		return 0
	}
	if strings.Contains(haystack, q.Year) {
		return yearPresentWeight
	}
	return -yearAbsentPenalty
}

// scoreQuality — бонус за качество, взаимоисключающий:
// учитывается только наивысшее найденное.
func scoreQuality(_ *Query, haystack string) int {
	switch {
	case strings.Contains(haystack, "1080p"):
		return quality1080pBoost
	case strings.Contains(haystack, "720p"):
		return quality720pBoost
	case strings.Contains(haystack, "480p"):
		return quality480pBoost
	}
	return 0
}

// scoreLanguage — языковые бонусы, применяются независимо друг от друга.
func scoreLanguage(_ *Query, haystack string) int {
	score := 0
	if strings.Contains(haystack, "hindi") {
		score += hindiBoost
	}
	if strings.Contains(haystack, "english") {
		score += englishBoost
	}
	return score
}

// allTokensMatch проверяет, что каждый нечисловой токен запроса
// встречается в haystack (строгий режим).
func allTokensMatch(q *Query, haystack string) bool {
	for _, tok := range q.Tokens {
		if isNumeric(tok) {
			continue
		}
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}

// BoostLiterals — подстроки, дающие положительный вес независимо от токенов
// запроса. Используется SQL-движком для построения superset-префильтра
// кандидатов: запись без единого такого совпадения не может набрать счёт > 0.
func BoostLiterals() []string {
	return []string{"1080p", "720p", "480p", "hindi", "english"}
}
