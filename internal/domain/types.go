package domain

import "strings"

// ID identifies a category, crew, or service record. Every collection uses
// the same identifier type so comparisons never need coercion.
type ID string

func (id ID) String() string { return string(id) }

// IsZero reports whether id is blank.
func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// Ref returns a pointer to a copy of id, for use as a nullable reference.
func (id ID) Ref() *ID { return &id }

type Icon string

const (
	IconRat       Icon = "Rat"
	IconTruck     Icon = "Truck"
	IconDroplets  Icon = "Droplets"
	IconTrees     Icon = "Trees"
	IconLightbulb Icon = "Lightbulb"
	IconPickaxe   Icon = "Pickaxe"
	IconBriefcase Icon = "Briefcase"
)

var icons = map[Icon]bool{
	IconRat: true, IconTruck: true, IconDroplets: true, IconTrees: true,
	IconLightbulb: true, IconPickaxe: true, IconBriefcase: true,
}

func (i Icon) Valid() bool { return icons[i] }

type ColorTheme string

const (
	ColorBlue   ColorTheme = "blue"
	ColorAmber  ColorTheme = "amber"
	ColorCyan   ColorTheme = "cyan"
	ColorGreen  ColorTheme = "green"
	ColorYellow ColorTheme = "yellow"
	ColorStone  ColorTheme = "stone"
	ColorSlate  ColorTheme = "slate"
	ColorIndigo ColorTheme = "indigo"
)

var colorHex = map[ColorTheme]string{
	ColorBlue:   "#2563eb",
	ColorAmber:  "#d97706",
	ColorCyan:   "#0891b2",
	ColorGreen:  "#16a34a",
	ColorYellow: "#ca8a04",
	ColorStone:  "#57534e",
	ColorSlate:  "#475569",
	ColorIndigo: "#4f46e5",
}

func (c ColorTheme) Valid() bool {
	_, ok := colorHex[c]
	return ok
}

// Hex returns the chart colour for the theme, slate for unknown themes.
func (c ColorTheme) Hex() string {
	if hex, ok := colorHex[c]; ok {
		return hex
	}
	return colorHex[ColorSlate]
}

type ServiceCategory struct {
	ID         ID         `json:"id"`
	Name       string     `json:"name"`
	Icon       Icon       `json:"icon"`
	ColorTheme ColorTheme `json:"colorTheme"`
}

type Crew struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// ServiceRecord is one logged instance of completed field work.
//
// CategoryID is a weak reference: it may be nil, or point at a category
// that has since been deleted. Consumers treat both cases as uncategorized.
// CrewName is a copy taken at creation time, not a reference.
type ServiceRecord struct {
	ID         ID       `json:"id"`
	CategoryID *ID      `json:"categoryId"`
	OccurredAt string   `json:"occurredAt"`
	Location   string   `json:"location"`
	Notes      string   `json:"notes"`
	CrewName   string   `json:"crewName"`
	Photos     []string `json:"photos"`
	CreatedAt  int64    `json:"createdAt"`
}

// HasCategory reports whether the record references id.
func (r *ServiceRecord) HasCategory(id ID) bool {
	return r.CategoryID != nil && *r.CategoryID == id
}

// UncategorizedLabel is shown for records whose category is missing or
// no longer exists.
const UncategorizedLabel = "Uncategorized"

// UnassignedCrew is stored when a record is created without a crew name.
const UnassignedCrew = "Crew not specified"
