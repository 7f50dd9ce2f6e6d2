package tui

// fieldTip returns a one-line explanation of a known loot parameter for the
// editor footer. Unknown fields get no tip rather than a guess.
func fieldTip(name string) string {
	switch name {
	case "nominal":
		return "Target number of items of this type in the world"
	case "lifetime":
		return "Seconds the item persists before despawning"
	case "restock":
		return "Seconds before the economy may respawn this type"
	case "min":
		return "Minimum count before the spawner tops the type up"
	case "quantmin":
		return "Minimum quantity percent for stackables (-1 disables)"
	case "quantmax":
		return "Maximum quantity percent for stackables (-1 disables)"
	case "cost":
		return "Spawn priority weight relative to other types"
	case "flags":
		return "Spawn location toggles (cargo, hoarder, map, player, crafted, deloot)"
	case "category":
		return "Loot category this type spawns under"
	case "usage":
		return "Area usage tag controlling where the type appears"
	case "value":
		return "Tier tag controlling loot zone rarity"
	case "tag":
		return "Placement tag (floor, shelves) within spawn points"
	default:
		return ""
	}
}
