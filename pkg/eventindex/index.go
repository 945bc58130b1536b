package eventindex

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/hugomg/ftl-cheatsheet/pkg/eventgraph"
)

// SetupSchema creates the index tables. It is idempotent and safe to
// call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const (
		schemaEvents = `
CREATE TABLE IF NOT EXISTS events (
    name TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    fight TEXT NOT NULL DEFAULT '',
    is_root INTEGER NOT NULL DEFAULT 0
);
`
		schemaActions = `
CREATE TABLE IF NOT EXISTS event_actions (
    event_name TEXT NOT NULL,
    position INTEGER NOT NULL,
    action_html TEXT NOT NULL,
    PRIMARY KEY (event_name, position)
);
`
		schemaChoices = `
CREATE TABLE IF NOT EXISTS event_choices (
    event_name TEXT NOT NULL,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    is_blue INTEGER NOT NULL DEFAULT 0,
    target TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (event_name, position)
);
`
		schemaGroups = `
CREATE TABLE IF NOT EXISTS event_lists (
    name TEXT PRIMARY KEY
);
`
		schemaGroupEntries = `
CREATE TABLE IF NOT EXISTS event_list_entries (
    list_name TEXT NOT NULL,
    position INTEGER NOT NULL,
    weight INTEGER NOT NULL,
    target TEXT NOT NULL,
    PRIMARY KEY (list_name, position)
);
`
		schemaShips = `
CREATE TABLE IF NOT EXISTS ships (
    name TEXT PRIMARY KEY,
    destroyed TEXT NOT NULL DEFAULT '',
    dead_crew TEXT NOT NULL DEFAULT '',
    gotaway TEXT NOT NULL DEFAULT '',
    surrender TEXT NOT NULL DEFAULT ''
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	for _, stmt := range []string{schemaEvents, schemaActions, schemaChoices, schemaGroups, schemaGroupEntries, schemaShips} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("could not create index schema: %w", err)
		}
	}
	return tx.Commit()
}

// Export writes the whole graph into the database inside a single
// transaction. Existing rows for the same names are replaced, so
// re-running the tool refreshes the index in place.
func Export(ctx context.Context, db *sql.DB, g *eventgraph.Graph) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if err := exportEvents(ctx, tx, g); err != nil {
		return err
	}
	if err := exportGroups(ctx, tx, g); err != nil {
		return err
	}
	if err := exportShips(ctx, tx, g); err != nil {
		return err
	}
	return tx.Commit()
}

func exportEvents(ctx context.Context, tx *sql.Tx, g *eventgraph.Graph) error {
	insertEvent, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO events (name, text, fight, is_root) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(insertEvent)

	insertAction, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO event_actions (event_name, position, action_html) VALUES (?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare action insert: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(insertAction)

	insertChoice, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO event_choices (event_name, position, label, is_blue, target) VALUES (?, ?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare choice insert: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(insertChoice)

	for _, name := range sortedKeys(g.Events) {
		ev := g.Events[name]
		isRoot := 0
		if g.Roots[name] {
			isRoot = 1
		}
		text := strings.Join(ev.Texts, "\n")
		if _, err := insertEvent.ExecContext(ctx, name, text, ev.Fight, isRoot); err != nil {
			return fmt.Errorf("failed to insert event %s: %w", name, err)
		}
		for i, action := range ev.Actions {
			if _, err := insertAction.ExecContext(ctx, name, i, action); err != nil {
				return fmt.Errorf("failed to insert action %d of %s: %w", i, name, err)
			}
		}
		for i, choice := range ev.Choices {
			isBlue := 0
			if choice.Blue {
				isBlue = 1
			}
			if _, err := insertChoice.ExecContext(ctx, name, i, choice.Label, isBlue, choice.Target); err != nil {
				return fmt.Errorf("failed to insert choice %d of %s: %w", i, name, err)
			}
		}
	}
	return nil
}

func exportGroups(ctx context.Context, tx *sql.Tx, g *eventgraph.Graph) error {
	insertList, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO event_lists (name) VALUES (?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare list insert: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(insertList)

	insertEntry, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO event_list_entries (list_name, position, weight, target) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare list entry insert: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(insertEntry)

	for _, name := range sortedKeys(g.Groups) {
		if _, err := insertList.ExecContext(ctx, name); err != nil {
			return fmt.Errorf("failed to insert event list %s: %w", name, err)
		}
		for i, entry := range g.Groups[name] {
			if _, err := insertEntry.ExecContext(ctx, name, i, entry.Weight, entry.Target); err != nil {
				return fmt.Errorf("failed to insert entry %d of %s: %w", i, name, err)
			}
		}
	}
	return nil
}

func exportShips(ctx context.Context, tx *sql.Tx, g *eventgraph.Graph) error {
	insertShip, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO ships (name, destroyed, dead_crew, gotaway, surrender) VALUES (?, ?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare ship insert: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(insertShip)

	for _, name := range sortedKeys(g.Ships) {
		ship := g.Ships[name]
		if _, err := insertShip.ExecContext(ctx, name, ship.Destroyed, ship.DeadCrew, ship.Gotaway, ship.Surrender); err != nil {
			return fmt.Errorf("failed to insert ship %s: %w", name, err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
