package converter

import (
	"github.com/terrarium-earth/odysseus/heracles"
	"strings"
)

func inferTitle(task heracles.Task) string {
	switch t := task.(type) {
	case heracles.ItemTask:
		return "Acquire: " + t.Item
	case heracles.StatTask:
		return "Increase " + t.Stat
	case heracles.ChangedDimensionTask:
		return "Visit " + t.To
	case heracles.AdvancementTask:
		if len(t.Advancements) == 0 {
			return "Complete Advancement"
		}
		return "Complete " + t.Advancements[0]
	case heracles.StructureTask:
		return "Find " + orDefault(t.Structures, "Structure")
	case heracles.BiomeTask:
		return "Visit " + orDefault(t.Biomes, "Biome")
	case heracles.CheckTask:
		return "Check this Task"
	case heracles.BlockInteractionTask:
		return "Interact " + t.Block
	case heracles.EntityInteractionTask:
		return "Interact: " + t.Entity
	case heracles.KillEntityTask:
		return "Kill: " + t.Entity.Type
	case heracles.LocationTask:
		return "Visit a Location"
	case heracles.XPTask:
		return "Acquire XP"
	}
	return ""
}

// inferIcon picks an item that represents the task. Tag references have no
// single item and get no icon.
func inferIcon(task heracles.Task) *heracles.Icon {
	switch t := task.(type) {
	case heracles.ItemTask:
		return iconUnlessTag(t.Item, "")
	case heracles.StatTask:
		return heracles.ItemIcon("minecraft:spyglass")
	case heracles.ChangedDimensionTask:
		return heracles.ItemIcon("minecraft:netherrack")
	case heracles.AdvancementTask:
		return heracles.ItemIcon("minecraft:knowledge_book")
	case heracles.StructureTask:
		return heracles.ItemIcon("minecraft:structure_block")
	case heracles.BiomeTask:
		return heracles.ItemIcon("minecraft:birch_sapling")
	case heracles.CheckTask:
		return heracles.ItemIcon("minecraft:green_wool")
	case heracles.BlockInteractionTask:
		return iconUnlessTag(t.Block, "")
	case heracles.EntityInteractionTask:
		return iconUnlessTag(t.Entity, "_spawn_egg")
	case heracles.KillEntityTask:
		return iconUnlessTag(t.Entity.Type, "_spawn_egg")
	case heracles.LocationTask:
		return heracles.ItemIcon("minecraft:compass")
	case heracles.XPTask:
		return heracles.ItemIcon("minecraft:experience_bottle")
	}
	return nil
}

func iconUnlessTag(id, suffix string) *heracles.Icon {
	if id == "" || strings.HasPrefix(id, "#") {
		return nil
	}
	return heracles.ItemIcon(convertItemID(id + suffix))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
