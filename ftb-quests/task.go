package ftb_quests

import (
	"encoding/json"
	"strings"
)

// Base holds the fields shared by every task and reward.
type Base struct {
	ID    ID     `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Icon  *Item  `json:"icon"`
}

func (b Base) Header() Base { return b }

// Kind is the type tag without the ftbquests namespace.
func (b Base) Kind() string {
	return strings.TrimPrefix(b.Type, "ftbquests:")
}

// Task is one of the task variants below. The set is closed.
type Task interface {
	Header() Base
	task()
}

type ObserveType int

const (
	ObserveBlock ObserveType = iota
	ObserveBlockTag
	ObserveBlockState
	ObserveBlockEntity
	ObserveBlockEntityType
	ObserveEntityType
	ObserveEntityTypeTag
)

type ItemTask struct {
	Base
	Item             Item   `json:"item"`
	Count            *int64 `json:"count"`
	ConsumeItems     *bool  `json:"consume_items"`
	OnlyFromCrafting bool   `json:"only_from_crafting"`
}

type CheckmarkTask struct {
	Base
}

type AdvancementTask struct {
	Base
	Advancement string `json:"advancement"`
	Criterion   string `json:"criterion"`
}

type BiomeTask struct {
	Base
	Biome string `json:"biome"`
}

type DimensionTask struct {
	Base
	Dimension string `json:"dimension"`
}

type KillTask struct {
	Base
	Entity string `json:"entity"`
	Value  int64  `json:"value"`
}

type LocationTask struct {
	Base
	Dimension       string    `json:"dimension"`
	IgnoreDimension bool      `json:"ignore_dimension"`
	Position        []float64 `json:"position"`
	Size            []float64 `json:"size"`
}

type StatTask struct {
	Base
	Stat  string `json:"stat"`
	Value int64  `json:"value"`
}

type StructureTask struct {
	Base
	Structure string `json:"structure"`
}

type ObservationTask struct {
	Base
	ObserveType ObserveType `json:"observe_type"`
	ToObserve   string      `json:"to_observe"`
	Timer       int64       `json:"timer"`
}

type XPTask struct {
	Base
	Value  int64 `json:"value"`
	Points bool  `json:"points"`
}

type CustomTask struct {
	Base
}

// UnsupportedTask carries a type tag this package has no variant for.
type UnsupportedTask struct {
	Base
}

func (ItemTask) task()        {}
func (CheckmarkTask) task()   {}
func (AdvancementTask) task() {}
func (BiomeTask) task()       {}
func (DimensionTask) task()   {}
func (KillTask) task()        {}
func (LocationTask) task()    {}
func (StatTask) task()        {}
func (StructureTask) task()   {}
func (ObservationTask) task() {}
func (XPTask) task()          {}
func (CustomTask) task()      {}
func (UnsupportedTask) task() {}

type Tasks []Task

var _ json.Unmarshaler = &Tasks{}

func (t *Tasks) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Tasks, 0, len(raw))
	for _, r := range raw {
		task, err := decodeTask(r)
		if err != nil {
			return err
		}
		out = append(out, task)
	}
	*t = out
	return nil
}

func decodeTask(raw json.RawMessage) (Task, error) {
	var base Base
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, err
	}
	switch base.Kind() {
	case "item":
		return decodeAs[ItemTask](raw)
	case "checkmark":
		return decodeAs[CheckmarkTask](raw)
	case "advancement":
		return decodeAs[AdvancementTask](raw)
	case "biome":
		return decodeAs[BiomeTask](raw)
	case "dimension":
		return decodeAs[DimensionTask](raw)
	case "kill":
		return decodeAs[KillTask](raw)
	case "location":
		return decodeAs[LocationTask](raw)
	case "stat":
		return decodeAs[StatTask](raw)
	case "structure":
		return decodeAs[StructureTask](raw)
	case "observation":
		return decodeAs[ObservationTask](raw)
	case "xp":
		return decodeAs[XPTask](raw)
	case "custom":
		return decodeAs[CustomTask](raw)
	}
	return UnsupportedTask{Base: base}, nil
}

func decodeAs[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}
