package database

import (
	"context"
	"github.com/terrarium-earth/odysseus/database/types"
	"time"
)

type Conversion struct {
	ID        int64                 `json:"id"`
	Filename  string                `json:"filename"`
	Sha512    string                `json:"sha512"`
	Meta      *types.ConversionMeta `json:"meta"`
	CreatedAt time.Time             `json:"created_at"`
}

const createConversion = `INSERT INTO conversions (filename, sha512, meta)
VALUES (?, ?, ?)
RETURNING id`

type CreateConversionParams struct {
	Filename string
	Sha512   string
	Meta     *types.ConversionMeta
}

func (q *Queries) CreateConversion(ctx context.Context, arg CreateConversionParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createConversion, arg.Filename, arg.Sha512, arg.Meta)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getConversion = `SELECT id, filename, sha512, meta, created_at
FROM conversions
WHERE id = ?`

func (q *Queries) GetConversion(ctx context.Context, id int64) (Conversion, error) {
	row := q.db.QueryRowContext(ctx, getConversion, id)
	var i Conversion
	i.Meta = new(types.ConversionMeta)
	err := row.Scan(&i.ID, &i.Filename, &i.Sha512, i.Meta, &i.CreatedAt)
	return i, err
}

const listConversions = `SELECT id, filename, sha512, meta, created_at
FROM conversions
ORDER BY id DESC
LIMIT ?`

func (q *Queries) ListConversions(ctx context.Context, limit int64) ([]Conversion, error) {
	rows, err := q.db.QueryContext(ctx, listConversions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Conversion
	for rows.Next() {
		var i Conversion
		i.Meta = new(types.ConversionMeta)
		if err := rows.Scan(&i.ID, &i.Filename, &i.Sha512, i.Meta, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
