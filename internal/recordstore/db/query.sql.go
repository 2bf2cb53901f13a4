package db

import (
	"context"
)

const upsertSpell = `-- name: UpsertSpell :exec
insert into spell (id, name, level, data, scraped_at)
values (?, ?, ?, ?, ?)
on conflict (id) do update set
    name = excluded.name,
    level = excluded.level,
    data = excluded.data,
    scraped_at = excluded.scraped_at
`

type UpsertSpellParams struct {
	ID        int64
	Name      string
	Level     int64
	Data      string
	ScrapedAt int64
}

func (q *Queries) UpsertSpell(ctx context.Context, arg UpsertSpellParams) error {
	_, err := q.db.ExecContext(ctx, upsertSpell,
		arg.ID,
		arg.Name,
		arg.Level,
		arg.Data,
		arg.ScrapedAt,
	)
	return err
}

const getSpell = `-- name: GetSpell :one
select id, name, level, data, scraped_at from spell where id = ?
`

func (q *Queries) GetSpell(ctx context.Context, id int64) (Spell, error) {
	row := q.db.QueryRowContext(ctx, getSpell, id)
	var i Spell
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Level,
		&i.Data,
		&i.ScrapedAt,
	)
	return i, err
}

const listSpells = `-- name: ListSpells :many
select id, name, level, data, scraped_at from spell order by level, name
`

func (q *Queries) ListSpells(ctx context.Context) ([]Spell, error) {
	rows, err := q.db.QueryContext(ctx, listSpells)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Spell
	for rows.Next() {
		var i Spell
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Level,
			&i.Data,
			&i.ScrapedAt,
		); err != nil {
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

const upsertTrait = `-- name: UpsertTrait :exec
insert into trait (id, name, categories, description, scraped_at)
values (?, ?, ?, ?, ?)
on conflict (id) do update set
    name = excluded.name,
    categories = excluded.categories,
    description = excluded.description,
    scraped_at = excluded.scraped_at
`

type UpsertTraitParams struct {
	ID          int64
	Name        string
	Categories  string
	Description string
	ScrapedAt   int64
}

func (q *Queries) UpsertTrait(ctx context.Context, arg UpsertTraitParams) error {
	_, err := q.db.ExecContext(ctx, upsertTrait,
		arg.ID,
		arg.Name,
		arg.Categories,
		arg.Description,
		arg.ScrapedAt,
	)
	return err
}

const getTrait = `-- name: GetTrait :one
select id, name, categories, description, scraped_at from trait where id = ?
`

func (q *Queries) GetTrait(ctx context.Context, id int64) (Trait, error) {
	row := q.db.QueryRowContext(ctx, getTrait, id)
	var i Trait
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Categories,
		&i.Description,
		&i.ScrapedAt,
	)
	return i, err
}

const listTraits = `-- name: ListTraits :many
select id, name, categories, description, scraped_at from trait order by name
`

func (q *Queries) ListTraits(ctx context.Context) ([]Trait, error) {
	rows, err := q.db.QueryContext(ctx, listTraits)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Trait
	for rows.Next() {
		var i Trait
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Categories,
			&i.Description,
			&i.ScrapedAt,
		); err != nil {
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
