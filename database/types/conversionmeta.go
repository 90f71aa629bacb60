package types

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ConversionMeta is stored as JSON in the meta column.
type ConversionMeta struct {
	Format   string   `json:"format"`
	Quests   int      `json:"quests"`
	Warnings []string `json:"warnings"`
}

var _ driver.Valuer = &ConversionMeta{}

var _ sql.Scanner = &ConversionMeta{}

func (c *ConversionMeta) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *ConversionMeta) Scan(src any) error {
	switch srcRaw := src.(type) {
	case string:
		return json.Unmarshal([]byte(srcRaw), c)
	case []byte:
		return json.Unmarshal(srcRaw, c)
	}
	return fmt.Errorf("invalid type %T for conversion meta", src)
}
