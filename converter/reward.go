package converter

import (
	"fmt"
	ftbquests "github.com/terrarium-earth/odysseus/ftb-quests"
	"github.com/terrarium-earth/odysseus/heracles"
)

const (
	defaultXPPoints = 100
	defaultXPLevels = 5
)

// ConvertReward maps one FTB reward onto its Heracles equivalent. tables must
// be sorted by order index. The only error returned is a *ConversionWarning,
// in which case the reward is dropped.
func ConvertReward(reward ftbquests.Reward, tables []ftbquests.RewardTable) (heracles.Reward, error) {
	base := element(reward.Header())
	switch r := reward.(type) {
	case ftbquests.CommandReward:
		return heracles.CommandReward{Element: base, Command: r.Command}, nil
	case ftbquests.ItemReward:
		return heracles.ItemReward{Element: base, Item: convertItemStack(r.Item, r.Count, r.Tag)}, nil
	case ftbquests.XPReward:
		return heracles.XPReward{Element: base, XPType: heracles.XPPoints, Amount: valueOr(r.XP, defaultXPPoints)}, nil
	case ftbquests.XPLevelsReward:
		return heracles.XPReward{Element: base, XPType: heracles.XPLevel, Amount: valueOr(r.XPLevels, defaultXPLevels)}, nil
	case ftbquests.LootReward:
		table, err := resolveTable(r.Base, r.TableRef, tables)
		if err != nil {
			return nil, err
		}
		if table.LootTableID == "" {
			return nil, warn(ErrUnsupportedType, "Don't know how to convert %s reward %s: table %s has no loot table.", r.Type, r.ID, tableName(table))
		}
		return heracles.LootTableReward{Element: base, LootTable: table.LootTableID}, nil
	case ftbquests.ChoiceReward:
		table, err := resolveTable(r.Base, r.TableRef, tables)
		if err != nil {
			return nil, err
		}
		if len(table.Rewards) == 0 {
			return nil, warn(ErrUnsupportedType, "Don't know how to convert %s reward %s: table %s has no rewards.", r.Type, r.ID, tableName(table))
		}
		rewards := make(heracles.RewardMap, len(table.Rewards))
		for i, entry := range table.Rewards {
			rewards[fmt.Sprintf("%s_%d", r.ID, i)] = heracles.ItemReward{Item: convertItemStack(entry.Item, entry.Count, entry.Tag)}
		}
		return heracles.SelectableReward{Element: base, Rewards: rewards}, nil
	}
	return nil, warn(ErrUnsupportedType, "Don't know how to convert reward of type %s.", reward.Header().Type)
}

// resolveTable looks a table up by stable id, then by position in the sorted
// table list, then falls back to the table embedded in the reward.
func resolveTable(b ftbquests.Base, ref ftbquests.TableRef, tables []ftbquests.RewardTable) (*ftbquests.RewardTable, error) {
	if ref.TableID != nil {
		for i := range tables {
			if tables[i].ID == *ref.TableID {
				return &tables[i], nil
			}
		}
	}
	if ref.Table != nil && *ref.Table >= 0 && *ref.Table < len(tables) {
		return &tables[*ref.Table], nil
	}
	if ref.TableData != nil {
		return ref.TableData, nil
	}
	return nil, warn(ErrUnresolvedTable, "Could not find the reward table of %s reward %s.", b.Type, b.ID)
}

func tableName(t *ftbquests.RewardTable) string {
	if t.Title != "" {
		return t.Title
	}
	if t.ID != "" {
		return string(t.ID)
	}
	return "(inline)"
}

func valueOr(v *int64, fallback int64) int64 {
	if v == nil {
		return fallback
	}
	return *v
}
