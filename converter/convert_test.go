package converter

import (
	"context"
	_ "embed"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ftbquests "github.com/terrarium-earth/odysseus/ftb-quests"
	"github.com/terrarium-earth/odysseus/heracles"
	questfs "github.com/terrarium-earth/odysseus/quest-fs"
	"github.com/terrarium-earth/odysseus/snbt"
	"testing"
	"testing/fstest"
)

//go:embed testdata/getting-started.json
var gettingStartedJson string

func packFS(files map[string]string) *questfs.FSInput {
	m := make(fstest.MapFS, len(files))
	for k, v := range files {
		m[k] = &fstest.MapFile{Data: []byte(v)}
	}
	return questfs.NewFSInput(m)
}

func TestConvert_GettingStarted(t *testing.T) {
	in := packFS(map[string]string{
		"data.snbt":           `{ version: 13, default_quest_shape: "circle" }`,
		"chapter_groups.snbt": `{ chapter_groups: [{ id: "1A", title: "Main" }] }`,
		"chapters/getting_started.snbt": `{
			id: "C1"
			group: "1A"
			order_index: 0
			filename: "getting_started"
			title: "Getting Started"
			quests: [{
				id: "7F3A"
				x: 1.5d
				y: -0.5d
				tasks: [{ id: "5A", type: "item", item: "minecraft:stick", count: 1L }]
			}]
		}`,
	})
	out := questfs.NewMemoryOutput()

	warnings, err := Convert(context.Background(), in, out)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	files := out.Files()
	assert.Len(t, files, 2)
	assert.Equal(t, "Getting Started", string(files[GroupsFile]))
	assert.Equal(t, gettingStartedJson, string(files["quests/Main/gettingstarted/7F3A.json"]))
}

func TestConvert_Ordering(t *testing.T) {
	in := packFS(map[string]string{
		"data.snbt": "{}",
		"chapter_groups.snbt": `{chapter_groups: [
			{id: "1A", title: "Main"}
			{id: "2B", title: "Side/Extra"}
			{id: "3C"}
		]}`,
		"chapters/a.snbt": `{id: "C1", group: "2B", order_index: 0, title: "Side Chapter", quests: [{id: "Q1"}]}`,
		"chapters/b.snbt": `{id: "C2", group: "1A", order_index: 2, title: "&6Second", quests: [{id: "Q2"}]}`,
		"chapters/c.snbt": `{id: "C3", group: "1A", order_index: 1, title: "First", quests: [{id: "Q3"}]}`,
		"chapters/d.snbt": `{id: "C4", order_index: 3, title: "Loose", quests: [{id: "Q4"}]}`,
		"chapters/e.snbt": `{id: "C5", group: "FF", order_index: 4, title: "!!!", quests: [{id: "Q5"}]}`,
		"chapters/f.snbt": `{id: "C6", group: "3C", order_index: 5, title: "Tagged", quests: [{id: "Q6"}]}`,
		"chapters/g.snbt": `{id: "C7", order_index: 6, filename: "untitled_chapter", quests: [{id: "Q7"}]}`,
	})
	out := questfs.NewMemoryOutput()

	_, err := (&Converter{Workers: 2}).Convert(context.Background(), in, out)
	require.NoError(t, err)

	files := out.Files()
	assert.Equal(t, "First\n§6Second\nSide Chapter\nTagged\nLoose\n!!!", string(files[GroupsFile]))
	names := make([]string, 0, len(files))
	for k := range files {
		names = append(names, k)
	}
	assert.ElementsMatch(t, []string{
		GroupsFile,
		"quests/Main/first/Q3.json",
		"quests/Main/6second/Q2.json",
		"quests/Side_Extra/sidechapter/Q1.json",
		"quests/3C/tagged/Q6.json",
		"quests/loose/Q4.json",
		"quests/!!!/Q5.json",
		"quests/untitledchapter/Q7.json",
	}, names)
}

func TestConvert_Warnings(t *testing.T) {
	in := packFS(map[string]string{
		"data.snbt":            "{}",
		"chapter_groups.snbt":  "{}",
		"reward_tables/t.snbt": `{id: "AA", order_index: 0, loot_table_id: "minecraft:chests/simple_dungeon"}`,
		"chapters/w.snbt": `{
			id: "C1"
			title: "Warnings"
			quests: [
				{
					id: "Q1"
					tasks: [{id: "T1", type: "energy"}, {id: "T2", type: "checkmark"}]
					rewards: [{id: "R1", type: "random", table: 5}, {id: "R2", type: "random", table: 0}]
				}
				{id: "Q2", tasks: [{id: "T3", type: "energy"}]}
			]
		}`,
	})
	out := questfs.NewMemoryOutput()

	warnings, err := Convert(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Could not find the reward table of random reward R1.",
		"Don't know how to convert task of type energy.",
	}, warnings)

	files := out.Files()
	assert.Len(t, files, 3)
	quest := string(files["quests/warnings/Q1.json"])
	assert.Contains(t, quest, `"title": "Check this Task"`)
	assert.Contains(t, quest, `"T2": {`)
	assert.NotContains(t, quest, `"T1"`)
	assert.Contains(t, quest, `"loot_table": "minecraft:chests/simple_dungeon"`)
	assert.NotContains(t, quest, `reward=\"R1\"`)
	assert.Contains(t, quest, `reward=\"R2\"`)
}

func TestConvert_NoRewardTables(t *testing.T) {
	in := packFS(map[string]string{
		"data.snbt":           "{}",
		"chapter_groups.snbt": "{}",
		"chapters/c.snbt":     `{title: "C", quests: [{id: "Q1", rewards: [{id: "R1", type: "xp", xp: 5}]}]}`,
	})
	warnings, err := Convert(context.Background(), in, questfs.NewMemoryOutput())
	assert.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestConvert_Version(t *testing.T) {
	in := packFS(map[string]string{
		"data.snbt":           "{version: 14}",
		"chapter_groups.snbt": "{}",
	})
	out := questfs.NewMemoryOutput()
	warnings, err := Convert(context.Background(), in, out)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "version 14")
	files := out.Files()
	assert.Len(t, files, 1)
	assert.Empty(t, files[GroupsFile])
}

func TestConvert_SyntaxError(t *testing.T) {
	in := packFS(map[string]string{
		"data.snbt":           "{}",
		"chapter_groups.snbt": "{}",
		"chapters/a.snbt":     `{title: "A", quests: [{id: "Q1"}]}`,
		"chapters/b.snbt":     `{title: "B", quests: [{id: "Q2"}`,
	})
	out := questfs.NewMemoryOutput()
	_, err := Convert(context.Background(), in, out)
	var syntaxErr *snbt.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "chapters/b.snbt", syntaxErr.Source)
	assert.Empty(t, out.Files())
}

func TestConvert_MissingQuestFile(t *testing.T) {
	in := packFS(map[string]string{"chapter_groups.snbt": "{}"})
	_, err := Convert(context.Background(), in, questfs.NewMemoryOutput())
	var readErr *ftbquests.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, ftbquests.QuestFileName, readErr.Name)
}

var errDiskFull = errors.New("disk full")

type failingOutput struct {
	*questfs.MemoryOutput
	fail string
}

func (f failingOutput) WriteFile(name string, data []byte) error {
	if name == f.fail {
		return errDiskFull
	}
	return f.MemoryOutput.WriteFile(name, data)
}

func TestConvert_WriteError(t *testing.T) {
	in := packFS(map[string]string{
		"data.snbt":           "{}",
		"chapter_groups.snbt": "{}",
		"chapters/a.snbt":     `{title: "A", quests: [{id: "Q1"}, {id: "Q2"}, {id: "Q3"}]}`,
	})
	out := failingOutput{MemoryOutput: questfs.NewMemoryOutput(), fail: "quests/a/Q2.json"}
	_, err := (&Converter{Workers: 1}).Convert(context.Background(), in, out)
	assert.ErrorIs(t, err, errDiskFull)
	assert.NotContains(t, out.Files(), GroupsFile)
}

func TestConvertQuest(t *testing.T) {
	q := ftbquests.Quest{
		ID:           "Q1",
		Title:        `&aGreen \&`,
		Subtitle:     "Sub",
		Description:  []string{"&cRed", "", "plain §"},
		Icon:         &ftbquests.Item{ID: "minecraft:apple"},
		X:            -0.5,
		Y:            2.49,
		Shape:        "square",
		Dependencies: []ftbquests.ID{"FF", "10"},
		Hide:         true,
		Tasks: ftbquests.Tasks{
			ftbquests.ItemTask{Base: base("T1", "item"), Item: ftbquests.Item{ID: "minecraft:stick"}},
		},
		Rewards: ftbquests.Rewards{
			ftbquests.CommandReward{Base: base("R1", "command"), Command: "/say done"},
		},
	}
	c := chapterContext{
		pack:    &ftbquests.Pack{QuestFile: ftbquests.QuestFile{DefaultQuestShape: "circle"}},
		chapter: &ftbquests.Chapter{},
		title:   "Chapter",
	}

	quest, warnings := convertQuest(q, c)
	assert.Empty(t, warnings)
	assert.Equal(t, heracles.Display{
		Title:    "§aGreen &",
		Subtitle: &heracles.Text{Text: "Sub"},
		Description: []string{
			`<subtitle id="Q1" bold="true" centered="true" color="lightgray"/>`,
			"<hr/>",
			`<task task="T1" quest="Q1"/>`,
			"<hr/>",
			"&&cRed",
			"<br/>",
			"plain &&",
			"<hr/>",
			`<reward reward="R1" quest="Q1"/>`,
		},
		Icon:   heracles.ItemIcon("minecraft:apple"),
		Groups: map[string]heracles.GroupPlacement{"Chapter": {Position: [2]int{-16, 80}}},
	}, quest.Display)
	assert.Equal(t, heracles.HiddenInProgress, quest.Settings.Hidden)
	assert.Equal(t, []string{"FF", "10"}, quest.Dependencies)
	assert.Len(t, quest.Tasks, 1)
	assert.Len(t, quest.Rewards, 1)

	q.Invisible = true
	q.Shape = ""
	quest, _ = convertQuest(q, c)
	assert.Equal(t, heracles.HiddenCompleted, quest.Settings.Hidden)
	assert.Equal(t, heracles.CirclesBackground, quest.Display.IconBackground)
}

func TestConvertQuest_Inference(t *testing.T) {
	c := chapterContext{pack: &ftbquests.Pack{}, chapter: &ftbquests.Chapter{}}

	tagged := ftbquests.Quest{ID: "Q1", Tasks: ftbquests.Tasks{
		ftbquests.KillTask{Base: base("T1", "kill"), Entity: "#minecraft:raiders", Value: 3},
	}}
	quest, _ := convertQuest(tagged, c)
	assert.Equal(t, "Kill: #minecraft:raiders", quest.Display.Title)
	assert.Nil(t, quest.Display.Icon)
	assert.Nil(t, quest.Display.Groups)

	titled := base("T1", "kill")
	titled.Title = "Slay"
	titled.Icon = &ftbquests.Item{ID: "minecraft:iron_sword"}
	quest, _ = convertQuest(ftbquests.Quest{ID: "Q2", Tasks: ftbquests.Tasks{ftbquests.KillTask{Base: titled, Entity: "minecraft:zombie"}}}, c)
	assert.Equal(t, "Slay", quest.Display.Title)
	assert.Equal(t, heracles.ItemIcon("minecraft:iron_sword"), quest.Display.Icon)

	two := ftbquests.Quest{ID: "Q3", Tasks: ftbquests.Tasks{
		ftbquests.CheckmarkTask{Base: base("T1", "checkmark")},
		ftbquests.CheckmarkTask{Base: base("T2", "checkmark")},
	}}
	quest, _ = convertQuest(two, c)
	assert.Empty(t, quest.Display.Title)
	assert.Nil(t, quest.Display.Icon)
}

var inferTestData = map[string]struct {
	task  heracles.Task
	title string
	icon  *heracles.Icon
}{
	"item":        {heracles.ItemTask{Item: "minecraft:stick"}, "Acquire: minecraft:stick", heracles.ItemIcon("minecraft:stick")},
	"item book":   {heracles.ItemTask{Item: "ftbquests:book"}, "Acquire: ftbquests:book", heracles.ItemIcon(heracles.QuestBookItem)},
	"item tag":    {heracles.ItemTask{Item: "#forge:ingots"}, "Acquire: #forge:ingots", nil},
	"stat":        {heracles.StatTask{Stat: "minecraft:jump"}, "Increase minecraft:jump", heracles.ItemIcon("minecraft:spyglass")},
	"dimension":   {heracles.ChangedDimensionTask{To: "minecraft:the_end"}, "Visit minecraft:the_end", heracles.ItemIcon("minecraft:netherrack")},
	"advancement": {heracles.AdvancementTask{}, "Complete Advancement", heracles.ItemIcon("minecraft:knowledge_book")},
	"structure":   {heracles.StructureTask{Structures: "minecraft:fortress"}, "Find minecraft:fortress", heracles.ItemIcon("minecraft:structure_block")},
	"biome":       {heracles.BiomeTask{}, "Visit Biome", heracles.ItemIcon("minecraft:birch_sapling")},
	"check":       {heracles.CheckTask{}, "Check this Task", heracles.ItemIcon("minecraft:green_wool")},
	"block":       {heracles.BlockInteractionTask{Block: "minecraft:beacon"}, "Interact minecraft:beacon", heracles.ItemIcon("minecraft:beacon")},
	"entity":      {heracles.EntityInteractionTask{Entity: "minecraft:cow"}, "Interact: minecraft:cow", heracles.ItemIcon("minecraft:cow_spawn_egg")},
	"kill":        {heracles.KillEntityTask{Entity: heracles.EntityPredicate{Type: "minecraft:zombie"}}, "Kill: minecraft:zombie", heracles.ItemIcon("minecraft:zombie_spawn_egg")},
	"location":    {heracles.LocationTask{}, "Visit a Location", heracles.ItemIcon("minecraft:compass")},
	"xp":          {heracles.XPTask{}, "Acquire XP", heracles.ItemIcon("minecraft:experience_bottle")},
}

func TestInfer(t *testing.T) {
	for k, v := range inferTestData {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, v.title, inferTitle(v.task))
			assert.Equal(t, v.icon, inferIcon(v.task))
		})
	}
}
