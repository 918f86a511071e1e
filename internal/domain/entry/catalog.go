package entry

// Nutrition - пищевая ценность одной банки.
type Nutrition struct {
	Kcal     int `json:"kcal"`
	Caffeine int `json:"caffeine"` // мг
	Sugar    int `json:"sugar"`    // г
	Sodium   int `json:"sodium"`   // мг
	Volume   int `json:"volume"`   // мл
}

// Drink - позиция фиксированного каталога. Каталог известен обеим сторонам:
// клиент валидирует drink_id до записи, сервер принимает только известные id.
type Drink struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nutrition Nutrition `json:"nutrition"`
}

// Catalog - полный список известных напитков. Порядок фиксированный.
var Catalog = []Drink{
	{ID: "ultra-zero-white", Name: "Ultra Zero White", Nutrition: Nutrition{Kcal: 5, Caffeine: 150, Sugar: 0, Sodium: 200, Volume: 500}},
	{ID: "original-green", Name: "Original Green", Nutrition: Nutrition{Kcal: 228, Caffeine: 160, Sugar: 55, Sodium: 370, Volume: 500}},
	{ID: "ultra-blue-hawaiian", Name: "Ultra Blue Hawaiian", Nutrition: Nutrition{Kcal: 5, Caffeine: 150, Sugar: 0, Sodium: 200, Volume: 500}},
	{ID: "classic-zero-sugar", Name: "Classic Zero Sugar", Nutrition: Nutrition{Kcal: 15, Caffeine: 140, Sugar: 0, Sodium: 240, Volume: 500}},
	{ID: "mango-loco", Name: "Mango Loco", Nutrition: Nutrition{Kcal: 210, Caffeine: 160, Sugar: 50, Sodium: 180, Volume: 500}},
	{ID: "aussie-lemonade", Name: "Aussie Lemonade", Nutrition: Nutrition{Kcal: 5, Caffeine: 150, Sugar: 0, Sodium: 150, Volume: 500}},
}

// KnownDrink проверяет, есть ли напиток в каталоге.
func KnownDrink(id string) bool {
	for _, d := range Catalog {
		if d.ID == id {
			return true
		}
	}
	return false
}

// DrinkByID возвращает позицию каталога по id.
func DrinkByID(id string) (Drink, bool) {
	for _, d := range Catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Drink{}, false
}
