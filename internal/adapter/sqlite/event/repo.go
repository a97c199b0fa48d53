// Package event implements the event store on SQLite.
// Relations live in the event_relations edge table; an event's Affects and
// AffectedBy lists are read back from its outgoing and incoming edges in
// insertion order.
package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/heartmarshall/timeline-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/timeline-backend/internal/domain"
)

var eventColumns = []string{
	"id", "tag", "category", "topic", "name", "country",
	"date_start", "date_end", "description",
}

type eventRow struct {
	ID          int64          `db:"id"`
	Tag         string         `db:"tag"`
	Category    string         `db:"category"`
	Topic       string         `db:"topic"`
	Name        string         `db:"name"`
	Country     string         `db:"country"`
	DateStart   string         `db:"date_start"`
	DateEnd     sql.NullString `db:"date_end"`
	Description string         `db:"description"`
}

type edgeRow struct {
	SourceID  int64  `db:"source_id"`
	SourceTag string `db:"source_tag"`
	TargetID  int64  `db:"target_id"`
	TargetTag string `db:"target_tag"`
}

// Repo provides event persistence backed by SQLite.
type Repo struct {
	db *sql.DB
	tx *sqlite.TxManager
	sb sq.StatementBuilderType
}

// New creates a new event repository. Mutations run through tx.
func New(db *sql.DB, tx *sqlite.TxManager) *Repo {
	return &Repo{
		db: db,
		tx: tx,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetAll returns every event in insertion order with relations populated.
func (r *Repo) GetAll(ctx context.Context) ([]domain.Event, error) {
	events, err := r.selectEvents(ctx, r.sb.Select(eventColumns...).From("events").OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("get all events: %w", err)
	}
	return events, nil
}

// GetByTag returns the event with the given tag.
// Returns domain.ErrNotFound if no such event exists.
func (r *Repo) GetByTag(ctx context.Context, tag string) (*domain.Event, error) {
	return r.getOne(ctx, sq.Eq{"tag": tag}, "tag "+tag)
}

// GetByID returns the event with the given id.
// Returns domain.ErrNotFound if no such event exists.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, fmt.Sprintf("id %d", id))
}

// GetByTags returns the events whose tags are listed, in insertion order.
// Unknown tags are ignored.
func (r *Repo) GetByTags(ctx context.Context, tags []string) ([]domain.Event, error) {
	if len(tags) == 0 {
		return []domain.Event{}, nil
	}

	query := r.sb.Select(eventColumns...).From("events").Where(sq.Eq{"tag": tags}).OrderBy("id")
	events, err := r.selectEvents(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get events by tags: %w", err)
	}
	return events, nil
}

// likeEscaper quotes LIKE metacharacters so search text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Find returns the events matching q in insertion order.
func (r *Repo) Find(ctx context.Context, q domain.EventQuery) ([]domain.Event, error) {
	query := r.sb.Select(eventColumns...).From("events").OrderBy("id")

	if q.Categories != nil {
		query = query.Where(sq.Eq{"category": q.Categories})
	}
	if q.Countries != nil {
		query = query.Where(sq.Eq{"country": q.Countries})
	}
	if text := strings.TrimSpace(q.Text); text != "" {
		pattern := "%" + likeEscaper.Replace(text) + "%"
		query = query.Where(sq.Or{
			sq.Expr(`name LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`description LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`tag LIKE ? ESCAPE '\'`, pattern),
		})
	}
	if q.Start != nil {
		query = query.Where(sq.Expr("COALESCE(date_end, date_start) >= ?", q.Start.String()))
	}
	if q.End != nil {
		query = query.Where(sq.LtOrEq{"date_start": q.End.String()})
	}

	events, err := r.selectEvents(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	return events, nil
}

// Facets returns the distinct filter values and overall date bounds.
func (r *Repo) Facets(ctx context.Context) (domain.Facets, error) {
	var (
		f   domain.Facets
		err error
	)

	if f.Categories, err = r.distinct(ctx, "category"); err != nil {
		return domain.Facets{}, err
	}
	if f.Topics, err = r.distinct(ctx, "topic"); err != nil {
		return domain.Facets{}, err
	}
	if f.Countries, err = r.distinct(ctx, "country"); err != nil {
		return domain.Facets{}, err
	}

	var lo, hi sql.NullString
	row := sqlite.QuerierFromCtx(ctx, r.db).QueryRowContext(ctx,
		`SELECT MIN(date_start), MAX(COALESCE(date_end, date_start)) FROM events`)
	if err := row.Scan(&lo, &hi); err != nil {
		return domain.Facets{}, fmt.Errorf("facets date bounds: %w", err)
	}

	if f.MinDate, err = nullDate(lo); err != nil {
		return domain.Facets{}, fmt.Errorf("facets min date: %w", err)
	}
	if f.MaxDate, err = nullDate(hi); err != nil {
		return domain.Facets{}, fmt.Errorf("facets max date: %w", err)
	}

	return f, nil
}

// Count returns the number of stored events.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	row := sqlite.QuerierFromCtx(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM events`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// Ping checks that the database is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert stores a new event and its relation edges in one transaction.
// Returns *domain.DuplicateTagError if the tag is taken. Relation tags that
// name no stored event are skipped.
func (r *Repo) Insert(ctx context.Context, ne domain.NewEvent) (*domain.Event, error) {
	var id int64

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		query := r.sb.Insert("events").
			Columns("tag", "category", "topic", "name", "country", "date_start", "date_end", "description").
			Values(ne.Tag, ne.Category, ne.Topic, ne.Name, ne.Country,
				ne.DateStart.String(), dateArg(ne.DateEnd), ne.Description).
			Suffix("RETURNING id")

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}

		if err := sqlite.QuerierFromCtx(ctx, r.db).QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
			return mapError(err, ne.Tag)
		}

		if err := r.linkAll(ctx, id, domain.DirectionAffectedBy, ne.AffectedBy); err != nil {
			return err
		}
		return r.linkAll(ctx, id, domain.DirectionAffects, ne.Affects)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Update overwrites the supplied fields of the event with the given id.
// A missing id or an empty update is a no-op. A supplied relation list
// replaces that direction's edges.
func (r *Repo) Update(ctx context.Context, id int64, u domain.EventUpdate) error {
	if u.IsEmpty() {
		return nil
	}

	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		exists, err := r.exists(ctx, id)
		if err != nil || !exists {
			return err
		}

		set := updateSet(u)
		if len(set) > 0 {
			if err := r.exec(ctx, r.sb.Update("events").SetMap(set).Where(sq.Eq{"id": id})); err != nil {
				return fmt.Errorf("update event %d: %w", id, err)
			}
		}

		if u.AffectedBy != nil {
			if err := r.exec(ctx, r.sb.Delete("event_relations").Where(sq.Eq{"target_id": id})); err != nil {
				return fmt.Errorf("clear affected_by of %d: %w", id, err)
			}
			if err := r.linkAll(ctx, id, domain.DirectionAffectedBy, *u.AffectedBy); err != nil {
				return err
			}
		}
		if u.Affects != nil {
			if err := r.exec(ctx, r.sb.Delete("event_relations").Where(sq.Eq{"source_id": id})); err != nil {
				return fmt.Errorf("clear affects of %d: %w", id, err)
			}
			if err := r.linkAll(ctx, id, domain.DirectionAffects, *u.Affects); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes the event and, through the foreign key cascade, every edge
// touching it. A missing id is a no-op.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := r.exec(ctx, r.sb.Delete("events").Where(sq.Eq{"id": id})); err != nil {
			return fmt.Errorf("delete event %d: %w", id, err)
		}
		return nil
	})
}

// AddRelationTag ensures the edge between eventTag and relatedTag exists in
// direction dir. It is idempotent, and a missing tag on either side is a no-op.
func (r *Repo) AddRelationTag(ctx context.Context, eventTag string, dir domain.Direction, relatedTag string) error {
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		id, ok, err := r.idByTag(ctx, eventTag)
		if err != nil || !ok {
			return err
		}
		return r.link(ctx, id, dir, relatedTag)
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, where sq.Sqlizer, key string) (*domain.Event, error) {
	events, err := r.selectEvents(ctx, r.sb.Select(eventColumns...).From("events").Where(where).Limit(1))
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", key, err)
	}
	if len(events) == 0 {
		return nil, mapError(sql.ErrNoRows, key)
	}
	return &events[0], nil
}

// selectEvents runs query and attaches relation lists to the result.
func (r *Repo) selectEvents(ctx context.Context, query sq.SelectBuilder) ([]domain.Event, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []eventRow
	if err := sqlscan.Select(ctx, sqlite.QuerierFromCtx(ctx, r.db), &rows, sqlStr, args...); err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(rows))
	index := make(map[int64]int, len(rows))
	for _, row := range rows {
		e, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		index[e.ID] = len(events)
		events = append(events, e)
	}

	if len(events) == 0 {
		return events, nil
	}

	if err := r.attachRelations(ctx, events, index); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *Repo) attachRelations(ctx context.Context, events []domain.Event, index map[int64]int) error {
	ids := make([]int64, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}

	query := r.sb.Select("r.source_id", "s.tag AS source_tag", "r.target_id", "t.tag AS target_tag").
		From("event_relations r").
		Join("events s ON s.id = r.source_id").
		Join("events t ON t.id = r.target_id").
		Where(sq.Or{sq.Eq{"r.source_id": ids}, sq.Eq{"r.target_id": ids}}).
		OrderBy("r.seq")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build relations select: %w", err)
	}

	var edges []edgeRow
	if err := sqlscan.Select(ctx, sqlite.QuerierFromCtx(ctx, r.db), &edges, sqlStr, args...); err != nil {
		return fmt.Errorf("load relations: %w", err)
	}

	for i := range events {
		events[i].Affects = []string{}
		events[i].AffectedBy = []string{}
	}
	for _, e := range edges {
		if i, ok := index[e.SourceID]; ok {
			events[i].Affects = append(events[i].Affects, e.TargetTag)
		}
		if i, ok := index[e.TargetID]; ok {
			events[i].AffectedBy = append(events[i].AffectedBy, e.SourceTag)
		}
	}
	return nil
}

func (r *Repo) linkAll(ctx context.Context, id int64, dir domain.Direction, tags []string) error {
	for _, tag := range domain.DedupeTags(tags) {
		if err := r.link(ctx, id, dir, tag); err != nil {
			return err
		}
	}
	return nil
}

// link adds the edge id→related for affects and related→id for affected_by.
func (r *Repo) link(ctx context.Context, id int64, dir domain.Direction, relatedTag string) error {
	relatedID, ok, err := r.idByTag(ctx, relatedTag)
	if err != nil || !ok {
		return err
	}

	source, target := id, relatedID
	if dir == domain.DirectionAffectedBy {
		source, target = relatedID, id
	}

	query := r.sb.Insert("event_relations").
		Columns("source_id", "target_id").
		Values(source, target).
		Suffix("ON CONFLICT (source_id, target_id) DO NOTHING")

	if err := r.exec(ctx, query); err != nil {
		return fmt.Errorf("link %d %s %s: %w", id, dir, relatedTag, err)
	}
	return nil
}

func (r *Repo) idByTag(ctx context.Context, tag string) (int64, bool, error) {
	var id int64
	err := sqlite.QuerierFromCtx(ctx, r.db).QueryRowContext(ctx, `SELECT id FROM events WHERE tag = ?`, tag).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("resolve tag %s: %w", tag, err)
	}
	return id, true, nil
}

func (r *Repo) exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := sqlite.QuerierFromCtx(ctx, r.db).QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup event %d: %w", id, err)
	}
	return true, nil
}

func (r *Repo) distinct(ctx context.Context, column string) ([]string, error) {
	sqlStr, args, err := r.sb.Select(column).Distinct().From("events").OrderBy(column).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build distinct %s: %w", column, err)
	}

	values := []string{}
	if err := sqlscan.Select(ctx, sqlite.QuerierFromCtx(ctx, r.db), &values, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	return values, nil
}

func (r *Repo) exec(ctx context.Context, query sq.Sqlizer) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build statement: %w", err)
	}
	_, err = sqlite.QuerierFromCtx(ctx, r.db).ExecContext(ctx, sqlStr, args...)
	return err
}

func updateSet(u domain.EventUpdate) map[string]any {
	set := map[string]any{}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Topic != nil {
		set["topic"] = *u.Topic
	}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Country != nil {
		set["country"] = *u.Country
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.DateStart != nil {
		set["date_start"] = u.DateStart.String()
	}
	if u.ClearDateEnd {
		set["date_end"] = nil
	} else if u.DateEnd != nil {
		set["date_end"] = u.DateEnd.String()
	}
	return set
}

func toDomain(row eventRow) (domain.Event, error) {
	start, err := domain.ParseDate(row.DateStart)
	if err != nil {
		return domain.Event{}, fmt.Errorf("event %s date_start: %w", row.Tag, err)
	}
	end, err := nullDate(row.DateEnd)
	if err != nil {
		return domain.Event{}, fmt.Errorf("event %s date_end: %w", row.Tag, err)
	}

	return domain.Event{
		ID:          row.ID,
		Tag:         row.Tag,
		Category:    row.Category,
		Topic:       row.Topic,
		Name:        row.Name,
		Country:     row.Country,
		DateStart:   start,
		DateEnd:     end,
		Description: row.Description,
		AffectedBy:  []string{},
		Affects:     []string{},
	}, nil
}

func nullDate(s sql.NullString) (*domain.Date, error) {
	if !s.Valid {
		return nil, nil
	}
	return domain.ParseOptionalDate(s.String)
}

func dateArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}
