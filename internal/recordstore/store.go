package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"aonscraper/internal/recordstore/db"
	"aonscraper/internal/scrapers/aon"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("record not found")

// Open opens dsn and makes sure the schema exists. libsql:// and http(s)://
// urls go to a remote libsql server, anything else is a local sqlite file
// (or :memory:).
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("a database was not specified")
	}

	var database *sql.DB
	var err error
	switch {
	case strings.HasPrefix(dsn, "libsql://"),
		strings.HasPrefix(dsn, "http://"),
		strings.HasPrefix(dsn, "https://"):
		database, err = sql.Open("libsql", dsn)
		if err != nil {
			return nil, err
		}
	default:
		database, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		// sqlite only tolerates a single writer, and every connection to
		// :memory: would otherwise get its own database
		database.SetMaxOpenConns(1)
		if dsn != ":memory:" {
			_, err = database.Exec("PRAGMA journal_mode=WAL")
			if err != nil {
				database.Close()
				return nil, err
			}
		}
	}

	_, err = database.Exec(db.Schema)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return database, nil
}

// Store keeps the latest scraped copy of every record, writing a record
// again replaces it.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

func (s Store) PutSpells(ctx context.Context, spells []aon.Spell) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	now := time.Now().Unix()
	for _, spell := range spells {
		data, err := json.Marshal(spell)
		if err != nil {
			return fmt.Errorf("marshal spell %d: %w", spell.Id, err)
		}
		err = txqry.UpsertSpell(ctx, db.UpsertSpellParams{
			ID:        int64(spell.Id),
			Name:      spell.Name,
			Level:     int64(spell.Level),
			Data:      string(data),
			ScrapedAt: now,
		})
		if err != nil {
			return fmt.Errorf("put spell %d: %w", spell.Id, err)
		}
	}
	return tx.Commit()
}

func (s Store) Spell(ctx context.Context, id int) (aon.Spell, error) {
	row, err := s.qry.GetSpell(ctx, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return aon.Spell{}, fmt.Errorf("spell %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return aon.Spell{}, err
	}
	var spell aon.Spell
	err = json.Unmarshal([]byte(row.Data), &spell)
	if err != nil {
		return aon.Spell{}, fmt.Errorf("unmarshal spell %d: %w", id, err)
	}
	return spell, nil
}

// Spells lists every stored spell by level then name, rows that cannot be
// decoded are skipped.
func (s Store) Spells(ctx context.Context) ([]aon.Spell, error) {
	rows, err := s.qry.ListSpells(ctx)
	if err != nil {
		return nil, err
	}

	spells := make([]aon.Spell, 0, len(rows))
	for _, r := range rows {
		var spell aon.Spell
		err := json.Unmarshal([]byte(r.Data), &spell)
		if err != nil {
			slog.WarnContext(ctx, "failed to unmarshal db spell", "id", r.ID, "err", err)
			continue
		}
		spells = append(spells, spell)
	}
	return spells, nil
}

func (s Store) PutTraits(ctx context.Context, traits []aon.Trait) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	now := time.Now().Unix()
	for _, trait := range traits {
		categories, err := json.Marshal(trait.Categories)
		if err != nil {
			return fmt.Errorf("marshal trait %d: %w", trait.Id, err)
		}
		err = txqry.UpsertTrait(ctx, db.UpsertTraitParams{
			ID:          int64(trait.Id),
			Name:        trait.Name,
			Categories:  string(categories),
			Description: trait.Description,
			ScrapedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("put trait %d: %w", trait.Id, err)
		}
	}
	return tx.Commit()
}

func traitFromRow(row db.Trait) (aon.Trait, error) {
	trait := aon.Trait{
		Id:          int(row.ID),
		Name:        row.Name,
		Description: row.Description,
	}
	err := json.Unmarshal([]byte(row.Categories), &trait.Categories)
	if err != nil {
		return aon.Trait{}, fmt.Errorf("unmarshal trait %d categories: %w", row.ID, err)
	}
	if trait.Categories == nil {
		trait.Categories = []string{}
	}
	return trait, nil
}

func (s Store) Trait(ctx context.Context, id int) (aon.Trait, error) {
	row, err := s.qry.GetTrait(ctx, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return aon.Trait{}, fmt.Errorf("trait %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return aon.Trait{}, err
	}
	return traitFromRow(row)
}

func (s Store) Traits(ctx context.Context) ([]aon.Trait, error) {
	rows, err := s.qry.ListTraits(ctx)
	if err != nil {
		return nil, err
	}

	traits := make([]aon.Trait, 0, len(rows))
	for _, r := range rows {
		trait, err := traitFromRow(r)
		if err != nil {
			slog.WarnContext(ctx, "failed to unmarshal db trait", "err", err)
			continue
		}
		traits = append(traits, trait)
	}
	return traits, nil
}
