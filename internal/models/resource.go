package models

// Resource is a material kind on the island. Values are in Isleventory order
// and double as indices into Quantities.
type Resource int

const (
	PalmLeaf Resource = iota
	Branch
	Stone
	Clam
	Laver
	Coral
	Islewort
	Sand
	Vine
	Sap
	Apple
	Log
	PalmLog
	CopperOre
	Limestone
	RockSalt
	Clay
	Tinsand
	Sugarcane
	CottonBoll
	Hemp
	Islefish
	Squid
	Jellyfish
	IronOre
	Quartz
	Leucogranite
	Isleblooms
	Resin
	Coconut
	BeehiveChip
	WoodOpal
	Coal
	Glimshroom
	EffervescentWater
	Shale
	Marble
	MythrilOre
	Spectrine
	DuriumSand
	YellowCopperOre
	GoldOre
	HawksEyeSand
	CrystalFormation
	Alyssum
	Garnet
	SpruceLog
	Hammerhead
	SilverOre
	CaveShrimp

	// Produce
	Popoto
	Cabbage
	Isleberry
	Pumpkin
	Onion
	Tomato
	Wheat
	Corn
	Parsnip
	Radish
	Paprika
	Leek
	RunnerBean
	Beet
	Eggplant
	Zucchini
	Watermelon
	SweetPopoto
	Broccoli
	BuffaloBean

	// Leavings
	Fleece
	Claw
	Fur
	Feather
	Egg
	Carapace
	Fang
	Horn
	Milk
)

// ResourceCount is the number of distinct resources.
const ResourceCount = int(Milk) + 1

var resourceNames = [ResourceCount]string{
	"PalmLeaf",
	"Branch",
	"Stone",
	"Clam",
	"Laver",
	"Coral",
	"Islewort",
	"Sand",
	"Vine",
	"Sap",
	"Apple",
	"Log",
	"PalmLog",
	"CopperOre",
	"Limestone",
	"RockSalt",
	"Clay",
	"Tinsand",
	"Sugarcane",
	"CottonBoll",
	"Hemp",
	"Islefish",
	"Squid",
	"Jellyfish",
	"IronOre",
	"Quartz",
	"Leucogranite",
	"Isleblooms",
	"Resin",
	"Coconut",
	"BeehiveChip",
	"WoodOpal",
	"Coal",
	"Glimshroom",
	"EffervescentWater",
	"Shale",
	"Marble",
	"MythrilOre",
	"Spectrine",
	"DuriumSand",
	"YellowCopperOre",
	"GoldOre",
	"HawksEyeSand",
	"CrystalFormation",
	"Alyssum",
	"Garnet",
	"SpruceLog",
	"Hammerhead",
	"SilverOre",
	"CaveShrimp",
	"Popoto",
	"Cabbage",
	"Isleberry",
	"Pumpkin",
	"Onion",
	"Tomato",
	"Wheat",
	"Corn",
	"Parsnip",
	"Radish",
	"Paprika",
	"Leek",
	"RunnerBean",
	"Beet",
	"Eggplant",
	"Zucchini",
	"Watermelon",
	"SweetPopoto",
	"Broccoli",
	"BuffaloBean",
	"Fleece",
	"Claw",
	"Fur",
	"Feather",
	"Egg",
	"Carapace",
	"Fang",
	"Horn",
	"Milk",
}

// String returns the CamelCase name used in Isleventory files.
func (r Resource) String() string {
	if r < 0 || int(r) >= ResourceCount {
		return "Unknown"
	}
	return resourceNames[r]
}

// Key returns the snake_case name used in the JSON data files.
func (r Resource) Key() string {
	return snakeCase(r.String())
}

// Valid reports whether r is a known resource.
func (r Resource) Valid() bool {
	return r >= 0 && int(r) < ResourceCount
}

// AllResources returns every resource in Isleventory order.
func AllResources() []Resource {
	out := make([]Resource, ResourceCount)
	for i := range out {
		out[i] = Resource(i)
	}
	return out
}

var resourceByKey = func() map[string]Resource {
	m := make(map[string]Resource, ResourceCount)
	for i, name := range resourceNames {
		m[normalizeName(name)] = Resource(i)
	}
	return m
}()

// ParseResource resolves a resource name written as CamelCase, snake_case or
// with spaces. Matching ignores case.
func ParseResource(name string) (Resource, bool) {
	r, ok := resourceByKey[normalizeName(name)]
	return r, ok
}

// ResourceNames returns the CamelCase names of all resources.
func ResourceNames() []string {
	out := make([]string, ResourceCount)
	copy(out, resourceNames[:])
	return out
}
