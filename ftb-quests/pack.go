package ftb_quests

import (
	"encoding/json"
	"fmt"
	"github.com/terrarium-earth/odysseus/snbt"
)

type Pack struct {
	QuestFile    QuestFile
	Groups       []ChapterGroup
	Chapters     []Chapter     // sorted by OrderIndex
	RewardTables []RewardTable // sorted by OrderIndex
}

// QuestFile is the pack wide data.snbt.
type QuestFile struct {
	Title               string `json:"title"`
	Version             *int   `json:"version"`
	DefaultConsumeItems *bool  `json:"default_consume_items"`
	DefaultQuestShape   string `json:"default_quest_shape"`
	DefaultRewardTeam   bool   `json:"default_reward_team"`
}

type chapterGroupsFile struct {
	ChapterGroups []ChapterGroup `json:"chapter_groups"`
}

type ChapterGroup struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

type Chapter struct {
	ID                ID      `json:"id"`
	Group             ID      `json:"group"`
	OrderIndex        int     `json:"order_index"`
	Filename          string  `json:"filename"`
	Title             string  `json:"title"`
	DefaultQuestShape string  `json:"default_quest_shape"`
	Quests            []Quest `json:"quests"`
}

type Quest struct {
	ID           ID       `json:"id"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Description  []string `json:"description"`
	Icon         *Item    `json:"icon"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Shape        string   `json:"shape"`
	Dependencies []ID     `json:"dependencies"`
	Hide         bool     `json:"hide"`
	Invisible    bool     `json:"invisible"`
	Tasks        Tasks    `json:"tasks"`
	Rewards      Rewards  `json:"rewards"`
}

type RewardTable struct {
	ID          ID           `json:"id"`
	Title       string       `json:"title"`
	OrderIndex  int          `json:"order_index"`
	LootTableID string       `json:"loot_table_id"`
	Rewards     []TableEntry `json:"rewards"`
}

type TableEntry struct {
	Item   Item           `json:"item"`
	Count  *int64         `json:"count"`
	Tag    *snbt.Compound `json:"tag"`
	Weight *float64       `json:"weight"`
}

// Item is an item reference, written either as a bare resource location or as
// an item stack compound.
type Item struct {
	ID    string
	Count *int64
	Tag   *snbt.Compound
}

var _ json.Unmarshaler = &Item{}

func (i *Item) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &i.ID)
	}
	var stack struct {
		ID         string         `json:"id"`
		Count      *int64         `json:"Count"`
		CountLower *int64         `json:"count"`
		Tag        *snbt.Compound `json:"tag"`
	}
	if err := json.Unmarshal(b, &stack); err != nil {
		return fmt.Errorf("item: %w", err)
	}
	i.ID = stack.ID
	i.Count = stack.Count
	if i.Count == nil {
		i.Count = stack.CountLower
	}
	i.Tag = stack.Tag
	return nil
}
