package catalog

import "time"

func seedDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// SeedProducts returns the fixed storefront catalog. Prices are in whole
// rupees.
func SeedProducts() []Product {
	return []Product{
		{
			ID: "1", Name: "UltraTech Cement", Price: 420, Category: CategoryHeavy,
			Unit:        "50kg Bag",
			Description: "Premium portland pozzolana cement for strong foundations.",
			Tags:        []string{"concrete", "construction", "foundation", "mortar"},
			Rating:      4.8,
			Reviews: []Review{
				{ID: "r1", UserName: "Ramesh K.", Rating: 5, Comment: "Best quality cement, sets very fast.", Date: seedDate("2023-10-15")},
				{ID: "r2", UserName: "Amit S.", Rating: 4, Comment: "Good packaging, timely delivery.", Date: seedDate("2023-11-02")},
			},
		},
		{
			ID: "2", Name: "Red Clay Bricks", Price: 12, Category: CategoryHeavy,
			Unit:        "Piece",
			Description: "Standard red clay bricks, high durability.",
			Tags:        []string{"wall", "masonry", "building"},
			Rating:      4.2,
			Reviews: []Review{
				{ID: "r3", UserName: "Suresh B.", Rating: 4, Comment: "Solid bricks, very few broken pieces.", Date: seedDate("2023-09-20")},
			},
		},
		{
			ID: "3", Name: "Bosch Power Drill", Price: 4500, Category: CategoryTools,
			Unit:        "Piece",
			Description: "600W Impact Drill for concrete and wood.",
			Tags:        []string{"machine", "hole", "screw", "electric"},
			Rating:      4.9,
			Reviews: []Review{
				{ID: "r4", UserName: "Vikram Singh", Rating: 5, Comment: "Powerful machine. Bosch never disappoints.", Date: seedDate("2023-12-10")},
				{ID: "r5", UserName: "Arun P.", Rating: 5, Comment: "Great for home DIY projects.", Date: seedDate("2023-12-12")},
			},
		},
		{
			ID: "4", Name: "Claw Hammer", Price: 350, Category: CategoryTools,
			Unit:        "Piece",
			Description: "Drop forged steel head with fiberglass handle.",
			Tags:        []string{"nail", "carpentry", "hand tool"},
			Rating:      4.5,
		},
		{
			ID: "5", Name: "Copper Wire 2.5mm", Price: 1800, Category: CategoryElectrical,
			Unit:        "90m Roll",
			Description: "Flame retardant PVC insulated copper wire.",
			Tags:        []string{"wiring", "power", "circuit", "cable"},
			Rating:      4.7,
		},
		{
			ID: "6", Name: "LED Bulb 9W", Price: 120, Category: CategoryElectrical,
			Unit:        "Piece",
			Description: "Cool daylight LED bulb, energy efficient.",
			Tags:        []string{"light", "lamp", "energy"},
			Rating:      4.3,
		},
		{
			ID: "7", Name: "PVC Pipe 4 inch", Price: 450, Category: CategoryPlumbing,
			Unit:        "10ft Length",
			Description: "Heavy duty PVC pipe for drainage.",
			Tags:        []string{"water", "drain", "sewage", "tube"},
			Rating:      4.1,
		},
		{
			ID: "8", Name: "Brass Bib Tap", Price: 280, Category: CategoryPlumbing,
			Unit:        "Piece",
			Description: "Chrome plated brass tap with aerator.",
			Tags:        []string{"faucet", "water", "bathroom", "kitchen"},
			Rating:      3.8,
			Reviews: []Review{
				{ID: "r6", UserName: "Kunal", Rating: 3, Comment: "Good finish but flow is a bit restricted.", Date: seedDate("2023-08-05")},
			},
		},
		{
			ID: "9", Name: "Asian Paints White", Price: 3200, Category: CategoryFinishing,
			Unit:        "20L Bucket",
			Description: "Premium acrylic emulsion for interior walls.",
			Tags:        []string{"color", "wall", "decor", "coating"},
			Rating:      4.6,
		},
		{
			ID: "10", Name: "Paint Roller Kit", Price: 450, Category: CategoryFinishing,
			Unit:        "Set",
			Description: "9-inch roller with tray and extension pole.",
			Tags:        []string{"brush", "painting", "tool"},
			Rating:      4.4,
		},
		{
			ID: "11", Name: "River Sand", Price: 80, Category: CategoryHeavy,
			Unit:        "Cubic Ft",
			Description: "Washed river sand for plastering and concrete.",
			Tags:        []string{"concrete", "mix", "construction"},
			Rating:      4.5,
		},
		{
			ID: "12", Name: "Measuring Tape 5m", Price: 150, Category: CategoryTools,
			Unit:        "Piece",
			Description: "Heavy duty steel measuring tape.",
			Tags:        []string{"measure", "length", "size"},
			Rating:      4.0,
		},
		{
			ID: "13", Name: "Screwdriver Set", Price: 380, Category: CategoryTools,
			Unit:        "Set of 6",
			Description: "Magnetic tip screwdriver set with insulated handles.",
			Tags:        []string{"tool", "screw", "repair"},
			Rating:      4.7,
		},
		{
			ID: "14", Name: "Water Tank 500L", Price: 3500, Category: CategoryPlumbing,
			Unit:        "Piece",
			Description: "Triple layer UV protected water storage tank.",
			Tags:        []string{"water", "storage", "plastic"},
			Rating:      4.8,
		},
	}
}
