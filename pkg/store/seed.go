package store

import "nexusinv-api/pkg/models"

// seedCatalog は永続化データが無い場合に使う初期カタログ（電子機器、価格はINR）
func seedCatalog() []models.Product {
	return []models.Product{
		{
			ID:       "1",
			Name:     "iPhone 15 Pro",
			Category: "Smartphones",
			Price:    134900,
			Quantity: 25,
			SKU:      "APL-PH-15P",
			Image:    "https://images.unsplash.com/photo-1696446701796-da61225697cc?w=200&q=80",
		},
		{
			ID:       "2",
			Name:     "Sony WH-1000XM5",
			Category: "Audio",
			Price:    29990,
			Quantity: 40,
			SKU:      "SNY-HD-XM5",
			Image:    "https://images.unsplash.com/photo-1618366712010-f4ae9c647dcb?w=200&q=80",
		},
		{
			ID:       "3",
			Name:     "MacBook Air M3",
			Category: "Laptops",
			Price:    114900,
			Quantity: 10,
			SKU:      "APL-MB-M3",
			Image:    "https://images.unsplash.com/photo-1517336714731-489689fd1ca4?w=200&q=80",
		},
		{
			ID:       "4",
			Name:     "DJI Mini 4 Pro",
			Category: "Drones",
			Price:    98990,
			Quantity: 8,
			SKU:      "DJI-DRN-M4",
			Image:    "https://images.unsplash.com/photo-1579829366248-204fe8413f31?w=200&q=80",
		},
		{
			ID:       "5",
			Name:     "Samsung 49\" Odyssey",
			Category: "Monitors",
			Price:    145999,
			Quantity: 5,
			SKU:      "SAM-MON-G9",
			Image:    "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?w=200&q=80",
		},
		{
			ID:       "6",
			Name:     "PlayStation 5 Slim",
			Category: "Gaming",
			Price:    54990,
			Quantity: 15,
			SKU:      "SNY-PS5-SLM",
			Image:    "https://images.unsplash.com/photo-1606144042614-b0417c0ed120?w=200&q=80",
		},
		{
			ID:       "7",
			Name:     "iPad Air M2",
			Category: "Tablets",
			Price:    59900,
			Quantity: 12,
			SKU:      "APL-IPD-AM2",
			Image:    "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=200&q=80",
		},
		{
			ID:       "8",
			Name:     "Canon EOS R50",
			Category: "Cameras",
			Price:    75990,
			Quantity: 6,
			SKU:      "CAN-EOS-R50",
			Image:    "https://images.unsplash.com/photo-1516035069371-29a1b244cc32?w=200&q=80",
		},
		{
			ID:       "9",
			Name:     "Samsung Galaxy Watch 6",
			Category: "Wearables",
			Price:    29999,
			Quantity: 20,
			SKU:      "SAM-WCH-G6",
			Image:    "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=200&q=80",
		},
		{
			ID:       "10",
			Name:     "Google Nest Hub (2nd Gen)",
			Category: "Smart Home",
			Price:    7999,
			Quantity: 30,
			SKU:      "GGL-NST-H2",
			Image:    "https://images.unsplash.com/photo-1558089748-129f886f76fc?w=200&q=80",
		},
		{
			ID:       "11",
			Name:     "NVIDIA RTX 4070 Super",
			Category: "PC Components",
			Price:    65000,
			Quantity: 4,
			SKU:      "NVD-RTX-4070S",
			Image:    "https://images.unsplash.com/photo-1591488320449-011701bb6704?w=200&q=80",
		},
		{
			ID:       "12",
			Name:     "Samsung T7 Shield 1TB",
			Category: "Storage",
			Price:    12999,
			Quantity: 45,
			SKU:      "SAM-SSD-T7",
			Image:    "https://images.unsplash.com/photo-1597872200969-2b65d56bd16b?w=200&q=80",
		},
		{
			ID:       "13",
			Name:     "GoPro Hero 12 Black",
			Category: "Action Cameras",
			Price:    44990,
			Quantity: 10,
			SKU:      "GOP-HER-12",
			Image:    "https://images.unsplash.com/photo-1564466021188-1e4b8a3b0007?w=200&q=80",
		},
		{
			ID:       "14",
			Name:     "TP-Link Deco XE75",
			Category: "Networking",
			Price:    28999,
			Quantity: 8,
			SKU:      "TPL-DEC-XE75",
			Image:    "https://images.unsplash.com/photo-1544197150-b99a580bbcbf?w=200&q=80",
		},
		{
			ID:       "15",
			Name:     "Keychron K2 Keyboard",
			Category: "Accessories",
			Price:    8499,
			Quantity: 18,
			SKU:      "KEY-K2-V2",
			Image:    "https://images.unsplash.com/photo-1595225476474-87563907a212?w=200&q=80",
		},
	}
}
