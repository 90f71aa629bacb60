package converter

import (
	ftbquests "github.com/terrarium-earth/odysseus/ftb-quests"
	"github.com/terrarium-earth/odysseus/heracles"
	"github.com/terrarium-earth/odysseus/snbt"
)

const (
	ftbQuestBook = "ftbquests:book"
	tagFilter    = "itemfilters:tag"
)

func convertItemID(id string) string {
	if id == ftbQuestBook {
		return heracles.QuestBookItem
	}
	return id
}

// convertItemNBT drops the zero Damage entry FTB writes on every damageable
// item. An NBT left empty is omitted.
func convertItemNBT(tag *snbt.Compound) *snbt.Compound {
	if tag.Len() == 0 {
		return nil
	}
	out := tag.Clone()
	if v, ok := out.Get("Damage"); ok && snbt.IsZeroNumber(v) {
		out.Delete("Damage")
	}
	if out.Len() == 0 {
		return nil
	}
	return out
}

func convertIcon(item *ftbquests.Item) *heracles.Icon {
	if item == nil || item.ID == "" {
		return nil
	}
	return heracles.ItemIcon(convertItemID(item.ID))
}

// tagReference returns the #namespace:path form of an item tag filter.
func tagReference(item ftbquests.Item) (string, bool) {
	if item.ID != tagFilter {
		return "", false
	}
	v, _ := item.Tag.Get("value")
	name, ok := v.(string)
	if !ok || name == "" {
		return "", false
	}
	return "#" + name, true
}

func convertItemStack(item ftbquests.Item, count *int64, tag *snbt.Compound) heracles.ItemStack {
	stack := heracles.ItemStack{
		ID:    convertItemID(item.ID),
		Count: count,
		NBT:   convertItemNBT(tag),
	}
	if stack.Count == nil {
		stack.Count = item.Count
	}
	if stack.NBT == nil {
		stack.NBT = convertItemNBT(item.Tag)
	}
	return stack
}

func element(b ftbquests.Base) heracles.Element {
	return heracles.Element{Title: b.Title, Icon: convertIcon(b.Icon)}
}
