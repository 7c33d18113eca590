package catalog

import "github.com/sello-market/sello-backend/internal/models"

// Demo storefront data. Prices are whole rubles.

func seedSellers() []models.CatalogSeller {
	return []models.CatalogSeller{
		{ID: "s-01", Name: "Store Matvey", City: "Москва"},
		{ID: "s-02", Name: "Borovsky Retail", City: "Санкт-Петербург"},
		{ID: "s-03", Name: "Zhuk Select", City: "Казань"},
	}
}

func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:       "p-01",
			Title:    "Aether Runner V2",
			Brand:    "Aether",
			Price:    12990,
			Category: "Кроссовки",
			SellerID: "s-01",
			Colors:   []string{"Белый", "Графит"},
			Sizes:    []string{"40", "41", "42", "43"},
			Badge:    "Новинка",
		},
		{
			ID:       "p-02",
			Title:    "Noir Shell Parka",
			Brand:    "Noir",
			Price:    24990,
			Category: "Куртки",
			SellerID: "s-02",
			Colors:   []string{"Чёрный"},
			Sizes:    []string{"S", "M", "L"},
			Badge:    "Хит",
		},
		{
			ID:       "p-03",
			Title:    "Linea Tote 24",
			Brand:    "Linea",
			Price:    10990,
			Category: "Сумки",
			SellerID: "s-03",
			Colors:   []string{"Песочный", "Олива"},
			Sizes:    []string{"OS"},
		},
		{
			ID:       "p-04",
			Title:    "Vertex Raw Denim",
			Brand:    "Vertex",
			Price:    8990,
			Category: "Джинсы",
			SellerID: "s-01",
			Colors:   []string{"Индиго"},
			Sizes:    []string{"30", "31", "32", "33"},
		},
		{
			ID:       "p-05",
			Title:    "Forma Minimal Cap",
			Brand:    "Forma",
			Price:    2990,
			Category: "Аксессуары",
			SellerID: "s-02",
			Colors:   []string{"Серый", "Синий"},
			Sizes:    []string{"OS"},
			Badge:    "-15%",
		},
		{
			ID:       "p-06",
			Title:    "Aether Glide",
			Brand:    "Aether",
			Price:    11990,
			Category: "Кроссовки",
			SellerID: "s-03",
			Colors:   []string{"Белый"},
			Sizes:    []string{"41", "42", "43"},
		},
	}
}
