package converter

import (
	ftbquests "github.com/terrarium-earth/odysseus/ftb-quests"
	"github.com/terrarium-earth/odysseus/heracles"
)

const defaultFromDimension = "minecraft:overworld"

// ConvertTask maps one FTB task onto its Heracles equivalent. The only error
// returned is a *ConversionWarning.
func ConvertTask(task ftbquests.Task, questFile ftbquests.QuestFile) (heracles.Task, error) {
	base := element(task.Header())
	switch t := task.(type) {
	case ftbquests.CheckmarkTask:
		return heracles.CheckTask{Element: base}, nil
	case ftbquests.ItemTask:
		return convertItemTask(base, t, questFile), nil
	case ftbquests.AdvancementTask:
		return heracles.AdvancementTask{Element: base, Advancements: []string{t.Advancement}}, nil
	case ftbquests.BiomeTask:
		return heracles.BiomeTask{Element: base, Biomes: t.Biome}, nil
	case ftbquests.DimensionTask:
		return heracles.ChangedDimensionTask{Element: base, From: defaultFromDimension, To: t.Dimension}, nil
	case ftbquests.KillTask:
		amount := t.Value
		return heracles.KillEntityTask{
			Element: base,
			Entity:  heracles.EntityPredicate{Type: t.Entity},
			Amount:  &amount,
		}, nil
	case ftbquests.LocationTask:
		return convertLocationTask(base, t), nil
	case ftbquests.StatTask:
		return heracles.StatTask{Element: base, Stat: t.Stat, Target: t.Value}, nil
	case ftbquests.StructureTask:
		return heracles.StructureTask{Element: base, Structures: t.Structure}, nil
	case ftbquests.ObservationTask:
		return convertObservationTask(base, t)
	case ftbquests.XPTask:
		xpType := heracles.XPLevel
		if t.Points {
			xpType = heracles.XPPoints
		}
		return heracles.XPTask{Element: base, Amount: t.Value, XPType: xpType}, nil
	}
	return nil, unsupportedTask(task.Header())
}

func unsupportedTask(b ftbquests.Base) *ConversionWarning {
	return warn(ErrUnsupportedType, "Don't know how to convert task of type %s.", b.Type)
}

func convertItemTask(base heracles.Element, t ftbquests.ItemTask, questFile ftbquests.QuestFile) heracles.ItemTask {
	out := heracles.ItemTask{
		Element:    base,
		Amount:     t.Count,
		Collection: collectionType(t.ConsumeItems, questFile.DefaultConsumeItems),
	}
	if out.Amount == nil {
		out.Amount = t.Item.Count
	}
	if ref, ok := tagReference(t.Item); ok {
		out.Item = ref
		return out
	}
	out.Item = convertItemID(t.Item.ID)
	out.NBT = convertItemNBT(t.Item.Tag)
	return out
}

// collectionType resolves the consume flag: the task's own value, then the
// pack default, then unset.
func collectionType(explicit, fallback *bool) string {
	consume := explicit
	if consume == nil {
		consume = fallback
	}
	switch {
	case consume == nil:
		return ""
	case *consume:
		return heracles.CollectManual
	default:
		return heracles.CollectAutomatic
	}
}

func convertLocationTask(base heracles.Element, t ftbquests.LocationTask) heracles.LocationTask {
	out := heracles.LocationTask{Element: base}
	if len(t.Position) > 0 {
		axis := func(i int) *heracles.NumericRange {
			if i >= len(t.Position) {
				return nil
			}
			pos := t.Position[i]
			if i >= len(t.Size) || t.Size[i] == 0 {
				return heracles.Exactly(pos)
			}
			half := t.Size[i] / 2
			return heracles.Between(pos-half, pos+half)
		}
		out.Predicate.Position = &heracles.PositionPredicate{X: axis(0), Y: axis(1), Z: axis(2)}
	}
	if !t.IgnoreDimension {
		out.Predicate.Dimension = t.Dimension
	}
	return out
}
