package address

import (
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/trie"
)

type gazetteer struct {
	t *trie.Trie[struct{}]
}

func newGazetteer(names ...string) *gazetteer {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return &gazetteer{t: trie.NewTrie(m, trie.WordMode)}
}

func (g *gazetteer) find(words []string) (start, n int, value struct{}, ok bool) {
	return g.t.Find(words)
}

func (g *gazetteer) contains(words []string) bool {
	return g.t.Contains(words)
}

var citiesRU = newGazetteer(
	"Москва", "Санкт-Петербург", "Петербург", "СПб", "Новосибирск",
	"Екатеринбург", "Казань", "Нижний Новгород", "Челябинск", "Самара",
	"Омск", "Ростов-на-Дону", "Уфа", "Красноярск", "Воронеж", "Пермь",
	"Волгоград", "Краснодар", "Саратов", "Тюмень", "Тольятти", "Ижевск",
	"Барнаул", "Ульяновск", "Иркутск", "Хабаровск", "Ярославль",
	"Владивосток", "Махачкала", "Томск", "Оренбург", "Кемерово",
	"Новокузнецк", "Рязань", "Астрахань", "Пенза", "Липецк", "Калининград",
	"Тула", "Киров", "Чебоксары", "Курск", "Сочи", "Ставрополь", "Тверь",
	"Мурманск", "Архангельск", "Великий Новгород", "Псков", "Смоленск",
	"Минск", "Алматы", "Астана", "Киев", "Ереван", "Тбилиси", "Ташкент",
	"Бишкек",
)

var countriesRU = newGazetteer(
	"Россия", "РФ", "Российская Федерация", "Беларусь", "Белоруссия",
	"Казахстан", "Украина", "Германия", "Армения", "Грузия", "Узбекистан",
	"Кыргызстан", "Киргизия", "Азербайджан", "Молдова", "Таджикистан",
)

var countriesLatin = newGazetteer(
	"Germany", "Deutschland", "Russia", "Russian Federation", "USA",
	"United States", "United States of America", "United Kingdom", "UK",
	"Austria", "Österreich", "Switzerland", "Schweiz", "France", "Poland",
	"Polska", "Belarus", "Kazakhstan", "Ukraine", "Netherlands", "Italy",
	"Spain", "Czech Republic", "Czechia", "Latvia", "Lithuania", "Estonia",
)
