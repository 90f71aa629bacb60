package converter

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ftbquests "github.com/terrarium-earth/odysseus/ftb-quests"
	"github.com/terrarium-earth/odysseus/heracles"
	"github.com/terrarium-earth/odysseus/snbt"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func base(id, kind string) ftbquests.Base {
	return ftbquests.Base{ID: ftbquests.ID(id), Type: kind}
}

func damageTag(damage snbt.Value, extra ...string) *snbt.Compound {
	c := snbt.NewCompound()
	c.Set("Damage", damage)
	for _, k := range extra {
		c.Set(k, "x")
	}
	return c
}

var convertTaskTestData = map[string]struct {
	task ftbquests.Task
	want heracles.Task
}{
	"checkmark": {
		ftbquests.CheckmarkTask{Base: base("1", "ftbquests:checkmark")},
		heracles.CheckTask{},
	},
	"item string": {
		ftbquests.ItemTask{Base: base("1", "item"), Item: ftbquests.Item{ID: "minecraft:stick"}, Count: ptr[int64](1)},
		heracles.ItemTask{Item: "minecraft:stick", Amount: ptr[int64](1)},
	},
	"item quest book": {
		ftbquests.ItemTask{Base: base("1", "item"), Item: ftbquests.Item{ID: "ftbquests:book", Count: ptr[int64](2)}},
		heracles.ItemTask{Item: heracles.QuestBookItem, Amount: ptr[int64](2)},
	},
	"item zero damage stripped": {
		ftbquests.ItemTask{Base: base("1", "item"), Item: ftbquests.Item{ID: "minecraft:iron_sword", Tag: damageTag(int64(0))}},
		heracles.ItemTask{Item: "minecraft:iron_sword"},
	},
	"item damage kept": {
		ftbquests.ItemTask{Base: base("1", "item"), Item: ftbquests.Item{ID: "minecraft:iron_sword", Tag: damageTag(snbt.Long("3"))}},
		heracles.ItemTask{Item: "minecraft:iron_sword", NBT: damageTag(snbt.Long("3"))},
	},
	"item other nbt kept": {
		ftbquests.ItemTask{Base: base("1", "item"), Item: ftbquests.Item{ID: "minecraft:bow", Tag: damageTag(snbt.Long("0"), "Enchantments")}},
		heracles.ItemTask{Item: "minecraft:bow", NBT: func() *snbt.Compound {
			c := snbt.NewCompound()
			c.Set("Enchantments", "x")
			return c
		}()},
	},
	"item tag filter": {
		ftbquests.ItemTask{Base: base("1", "item"), Item: ftbquests.Item{ID: "itemfilters:tag", Tag: func() *snbt.Compound {
			c := snbt.NewCompound()
			c.Set("value", "forge:ingots/iron")
			return c
		}()}},
		heracles.ItemTask{Item: "#forge:ingots/iron"},
	},
	"advancement": {
		ftbquests.AdvancementTask{Base: base("1", "advancement"), Advancement: "minecraft:story/mine_stone"},
		heracles.AdvancementTask{Advancements: []string{"minecraft:story/mine_stone"}},
	},
	"biome": {
		ftbquests.BiomeTask{Base: base("1", "biome"), Biome: "#minecraft:is_ocean"},
		heracles.BiomeTask{Biomes: "#minecraft:is_ocean"},
	},
	"dimension": {
		ftbquests.DimensionTask{Base: base("1", "dimension"), Dimension: "minecraft:the_nether"},
		heracles.ChangedDimensionTask{From: "minecraft:overworld", To: "minecraft:the_nether"},
	},
	"kill": {
		ftbquests.KillTask{Base: base("1", "kill"), Entity: "minecraft:zombie", Value: 5},
		heracles.KillEntityTask{Entity: heracles.EntityPredicate{Type: "minecraft:zombie"}, Amount: ptr[int64](5)},
	},
	"location": {
		ftbquests.LocationTask{Base: base("1", "location"), Dimension: "minecraft:overworld", Position: []float64{10, 64, -3}, Size: []float64{2, 0, 4}},
		heracles.LocationTask{Predicate: heracles.LocationPredicate{
			Position:  &heracles.PositionPredicate{X: heracles.Between(9, 11), Y: heracles.Exactly(64), Z: heracles.Between(-5, -1)},
			Dimension: "minecraft:overworld",
		}},
	},
	"location ignoring dimension": {
		ftbquests.LocationTask{Base: base("1", "location"), Dimension: "minecraft:overworld", IgnoreDimension: true, Position: []float64{1, 2, 3}},
		heracles.LocationTask{Predicate: heracles.LocationPredicate{
			Position: &heracles.PositionPredicate{X: heracles.Exactly(1), Y: heracles.Exactly(2), Z: heracles.Exactly(3)},
		}},
	},
	"stat": {
		ftbquests.StatTask{Base: base("1", "stat"), Stat: "minecraft:jump", Value: 10},
		heracles.StatTask{Stat: "minecraft:jump", Target: 10},
	},
	"structure": {
		ftbquests.StructureTask{Base: base("1", "structure"), Structure: "minecraft:village"},
		heracles.StructureTask{Structures: "minecraft:village"},
	},
	"xp points": {
		ftbquests.XPTask{Base: base("1", "xp"), Value: 30, Points: true},
		heracles.XPTask{Amount: 30, XPType: heracles.XPPoints},
	},
	"xp levels": {
		ftbquests.XPTask{Base: base("1", "xp"), Value: 3},
		heracles.XPTask{Amount: 3, XPType: heracles.XPLevel},
	},
	"observe block": {
		ftbquests.ObservationTask{Base: base("1", "observation"), ObserveType: ftbquests.ObserveBlock, ToObserve: "minecraft:beacon"},
		heracles.BlockInteractionTask{Block: "minecraft:beacon"},
	},
	"observe block tag": {
		ftbquests.ObservationTask{Base: base("1", "observation"), ObserveType: ftbquests.ObserveBlockTag, ToObserve: "minecraft:logs"},
		heracles.BlockInteractionTask{Block: "#minecraft:logs"},
	},
	"observe entity": {
		ftbquests.ObservationTask{Base: base("1", "observation"), ObserveType: ftbquests.ObserveEntityType, ToObserve: "minecraft:cow"},
		heracles.EntityInteractionTask{Entity: "minecraft:cow"},
	},
	"observe block state": {
		ftbquests.ObservationTask{Base: base("1", "observation"), ObserveType: ftbquests.ObserveBlockState, ToObserve: "minecraft:furnace[facing=north,lit=true]"},
		heracles.BlockInteractionTask{Block: "minecraft:furnace", State: map[string]string{"facing": "north", "lit": "true"}},
	},
}

func TestConvertTask(t *testing.T) {
	for k, v := range convertTaskTestData {
		t.Run(k, func(t *testing.T) {
			task, err := ConvertTask(v.task, ftbquests.QuestFile{})
			require.NoError(t, err)
			assert.Equal(t, v.want, task)
		})
	}
}

func TestConvertTask_Header(t *testing.T) {
	b := base("1", "checkmark")
	b.Title = "Press me"
	b.Icon = &ftbquests.Item{ID: "ftbquests:book"}
	task, err := ConvertTask(ftbquests.CheckmarkTask{Base: b}, ftbquests.QuestFile{})
	require.NoError(t, err)
	assert.Equal(t, heracles.Element{Title: "Press me", Icon: heracles.ItemIcon(heracles.QuestBookItem)}, task.Header())
}

func TestConvertTask_Unsupported(t *testing.T) {
	for _, task := range []ftbquests.Task{
		ftbquests.UnsupportedTask{Base: base("1", "energy")},
		ftbquests.UnsupportedTask{Base: base("1", "ftbquests:fluid")},
		ftbquests.CustomTask{Base: base("1", "custom")},
		ftbquests.ObservationTask{Base: base("1", "observation"), ObserveType: 9},
	} {
		t.Run(task.Header().Type, func(t *testing.T) {
			converted, err := ConvertTask(task, ftbquests.QuestFile{})
			assert.Nil(t, converted)
			var warning *ConversionWarning
			require.ErrorAs(t, err, &warning)
			assert.ErrorIs(t, err, ErrUnsupportedType)
			if task.Header().Type != "observation" {
				assert.Equal(t, "Don't know how to convert task of type "+task.Header().Type+".", warning.Message)
			}
		})
	}
}

var consumeTestData = map[string]struct {
	explicit, fallback *bool
	want               string
}{
	"unset":               {nil, nil, ""},
	"default true":        {nil, ptr(true), heracles.CollectManual},
	"default false":       {nil, ptr(false), heracles.CollectAutomatic},
	"explicit true":       {ptr(true), ptr(false), heracles.CollectManual},
	"explicit false":      {ptr(false), ptr(true), heracles.CollectAutomatic},
	"explicit true only":  {ptr(true), nil, heracles.CollectManual},
	"explicit false only": {ptr(false), nil, heracles.CollectAutomatic},
}

func TestConvertTask_ConsumeItems(t *testing.T) {
	for k, v := range consumeTestData {
		t.Run(k, func(t *testing.T) {
			task := ftbquests.ItemTask{Base: base("1", "item"), Item: ftbquests.Item{ID: "minecraft:dirt"}, ConsumeItems: v.explicit}
			converted, err := ConvertTask(task, ftbquests.QuestFile{DefaultConsumeItems: v.fallback})
			require.NoError(t, err)
			assert.Equal(t, v.want, converted.(heracles.ItemTask).Collection)
		})
	}
}

func TestParseObserved(t *testing.T) {
	block, state, nbt, err := parseObserved(`minecraft:chest[facing=east,type=single]{Items:[{id:"minecraft:stone",Count:1b}],Lock:"a,b"}`)
	require.NoError(t, err)
	assert.Equal(t, "minecraft:chest", block)
	assert.Equal(t, map[string]string{"facing": "east", "type": "single"}, state)
	assert.Equal(t, []string{"Items", "Lock"}, nbt.Keys())
	lock, _ := nbt.Get("Lock")
	assert.Equal(t, "a,b", lock)

	block, state, nbt, err = parseObserved(`minecraft:spawner{SpawnData:{id:"minecraft:zombie"}}`)
	require.NoError(t, err)
	assert.Equal(t, "minecraft:spawner", block)
	assert.Nil(t, state)
	assert.Equal(t, []string{"SpawnData"}, nbt.Keys())

	block, state, nbt, err = parseObserved("minecraft:stone")
	require.NoError(t, err)
	assert.Equal(t, "minecraft:stone", block)
	assert.Nil(t, state)
	assert.Nil(t, nbt)
}

func TestConvertTask_ObservationMalformed(t *testing.T) {
	for _, s := range []string{
		"minecraft:chest[facing=east",
		"minecraft:chest{Lock:",
		"[lit=true]",
		"minecraft:chest[lit=true]junk",
	} {
		t.Run(s, func(t *testing.T) {
			task := ftbquests.ObservationTask{Base: base("9", "observation"), ObserveType: ftbquests.ObserveBlockEntity, ToObserve: s}
			converted, err := ConvertTask(task, ftbquests.QuestFile{})
			assert.Nil(t, converted)
			var warning *ConversionWarning
			require.ErrorAs(t, err, &warning)
			assert.Contains(t, warning.Message, "task 9")
		})
	}
}
