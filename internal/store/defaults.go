package store

import "github.com/vbonduro/fieldlog/internal/domain"

// DefaultCategories is the fixed set written the first time categories are
// initialized.
func DefaultCategories() []domain.ServiceCategory {
	return []domain.ServiceCategory{
		{ID: "1", Name: "Drain Cleaning", Icon: domain.IconRat, ColorTheme: domain.ColorBlue},
		{ID: "2", Name: "Debris Removal", Icon: domain.IconTruck, ColorTheme: domain.ColorAmber},
		{ID: "3", Name: "Space Washing", Icon: domain.IconDroplets, ColorTheme: domain.ColorCyan},
		{ID: "4", Name: "Tree Pruning", Icon: domain.IconTrees, ColorTheme: domain.ColorGreen},
		{ID: "5", Name: "Public Lighting", Icon: domain.IconLightbulb, ColorTheme: domain.ColorYellow},
		{ID: "6", Name: "Pothole Repair", Icon: domain.IconPickaxe, ColorTheme: domain.ColorStone},
	}
}

func DefaultCrews() []domain.Crew {
	return []domain.Crew{
		{ID: "t1", Name: "Alpha Crew - Morning"},
		{ID: "t2", Name: "Beta Crew - Afternoon"},
		{ID: "t3", Name: "Night Crew"},
	}
}
