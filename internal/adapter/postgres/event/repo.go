// Package event implements the event store on PostgreSQL.
// Relation edges live in event_relations and every mutation runs in a
// transaction holding the global advisory write lock.
package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/timeline-backend/internal/adapter/postgres"
	"github.com/heartmarshall/timeline-backend/internal/domain"
)

var eventColumns = []string{
	"id", "tag", "category", "topic", "name", "country",
	"date_start", "date_end", "description",
}

type eventRow struct {
	ID          int64      `db:"id"`
	Tag         string     `db:"tag"`
	Category    string     `db:"category"`
	Topic       string     `db:"topic"`
	Name        string     `db:"name"`
	Country     string     `db:"country"`
	DateStart   time.Time  `db:"date_start"`
	DateEnd     *time.Time `db:"date_end"`
	Description string     `db:"description"`
}

type edgeRow struct {
	SourceID  int64  `db:"source_id"`
	SourceTag string `db:"source_tag"`
	TargetID  int64  `db:"target_id"`
	TargetTag string `db:"target_tag"`
}

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Pool
	tx   *postgres.TxManager
	sb   sq.StatementBuilderType
}

// New creates a new event repository.
func New(pool postgres.Pool, tx *postgres.TxManager) *Repo {
	return &Repo{
		pool: pool,
		tx:   tx,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetAll returns every event ordered by id, with relations populated.
func (r *Repo) GetAll(ctx context.Context) ([]domain.Event, error) {
	events, err := r.selectEvents(ctx, r.sb.Select(eventColumns...).From("events").OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("get all events: %w", err)
	}
	return events, nil
}

// GetByTag returns an event by tag.
// Returns domain.ErrNotFound if the event does not exist.
func (r *Repo) GetByTag(ctx context.Context, tag string) (*domain.Event, error) {
	return r.getOne(ctx, sq.Eq{"tag": tag}, "tag "+tag)
}

// GetByID returns an event by primary key.
// Returns domain.ErrNotFound if the event does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, fmt.Sprintf("id %d", id))
}

// GetByTags returns the events for the given tags ordered by id.
func (r *Repo) GetByTags(ctx context.Context, tags []string) ([]domain.Event, error) {
	if len(tags) == 0 {
		return []domain.Event{}, nil
	}

	events, err := r.selectEvents(ctx, r.sb.Select(eventColumns...).From("events").
		Where(sq.Eq{"tag": tags}).OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("get events by tags: %w", err)
	}
	return events, nil
}

// likeEscaper quotes LIKE metacharacters so search text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Find returns the events matching q ordered by id.
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
			sq.Expr(`name ILIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`description ILIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`tag ILIKE ? ESCAPE '\'`, pattern),
		})
	}
	if q.Start != nil {
		query = query.Where(sq.Expr("COALESCE(date_end, date_start) >= ?", q.Start.Time()))
	}
	if q.End != nil {
		query = query.Where(sq.LtOrEq{"date_start": q.End.Time()})
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

	var lo, hi *time.Time
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`SELECT MIN(date_start), MAX(COALESCE(date_end, date_start)) FROM events`).Scan(&lo, &hi)
	if err != nil {
		return domain.Facets{}, fmt.Errorf("facets date bounds: %w", err)
	}

	f.MinDate = datePtr(lo)
	f.MaxDate = datePtr(hi)
	return f, nil
}

// Count returns the number of stored events.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// Ping checks that the database is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert stores a new event and its relation edges in one transaction.
// Returns *domain.DuplicateTagError if the tag is already used.
// Relation tags that match no stored event are skipped.
func (r *Repo) Insert(ctx context.Context, ne domain.NewEvent) (*domain.Event, error) {
	var id int64

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		sqlStr, args, err := r.sb.Insert("events").
			Columns("tag", "category", "topic", "name", "country", "date_start", "date_end", "description").
			Values(ne.Tag, ne.Category, ne.Topic, ne.Name, ne.Country,
				ne.DateStart.Time(), dateArg(ne.DateEnd), ne.Description).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}

		if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
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

// Update overwrites the supplied fields. A missing id or an empty update is
// a no-op. A supplied relation list replaces that direction's edges.
func (r *Repo) Update(ctx context.Context, id int64, u domain.EventUpdate) error {
	if u.IsEmpty() {
		return nil
	}

	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		exists, err := r.exists(ctx, id)
		if err != nil || !exists {
			return err
		}

		if set := updateSet(u); len(set) > 0 {
			if err := r.exec(ctx, r.sb.Update("events").SetMap(set).Where(sq.Eq{"id": id})); err != nil {
				return mapError(err, fmt.Sprintf("id %d", id))
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

// Delete removes the event; ON DELETE CASCADE removes its edges.
// A missing id is a no-op.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := r.exec(ctx, r.sb.Delete("events").Where(sq.Eq{"id": id})); err != nil {
			return fmt.Errorf("delete event %d: %w", id, err)
		}
		return nil
	})
}

// AddRelationTag ensures the edge between eventTag and relatedTag exists.
// Idempotent; a missing tag on either side is a no-op.
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
		return nil, mapError(err, key)
	}
	if len(events) == 0 {
		return nil, mapError(pgx.ErrNoRows, key)
	}
	return &events[0], nil
}

func (r *Repo) selectEvents(ctx context.Context, query sq.SelectBuilder) ([]domain.Event, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []eventRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, sqlStr, args...); err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(rows))
	index := make(map[int64]int, len(rows))
	for _, row := range rows {
		index[row.ID] = len(events)
		events = append(events, toDomain(row))
	}

	if len(events) == 0 {
		return events, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	sqlStr, args, err = r.sb.Select("r.source_id", "s.tag AS source_tag", "r.target_id", "t.tag AS target_tag").
		From("event_relations r").
		Join("events s ON s.id = r.source_id").
		Join("events t ON t.id = r.target_id").
		Where(sq.Or{sq.Eq{"r.source_id": ids}, sq.Eq{"r.target_id": ids}}).
		OrderBy("r.seq").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build relations select: %w", err)
	}

	var edges []edgeRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &edges, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("load relations: %w", err)
	}

	for _, e := range edges {
		if i, ok := index[e.SourceID]; ok {
			events[i].Affects = append(events[i].Affects, e.TargetTag)
		}
		if i, ok := index[e.TargetID]; ok {
			events[i].AffectedBy = append(events[i].AffectedBy, e.SourceTag)
		}
	}
	return events, nil
}

func (r *Repo) linkAll(ctx context.Context, id int64, dir domain.Direction, tags []string) error {
	for _, tag := range domain.DedupeTags(tags) {
		if err := r.link(ctx, id, dir, tag); err != nil {
			return err
		}
	}
	return nil
}

// link adds id→related for affects and related→id for affected_by.
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
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, `SELECT id FROM events WHERE tag = $1`, tag).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("resolve tag %s: %w", tag, err)
	}
	return id, true, nil
}

func (r *Repo) exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("lookup event %d: %w", id, err)
	}
	return exists, nil
}

func (r *Repo) distinct(ctx context.Context, column string) ([]string, error) {
	sqlStr, args, err := r.sb.Select(column).Distinct().From("events").OrderBy(column).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build distinct %s: %w", column, err)
	}

	values := []string{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &values, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	return values, nil
}

func (r *Repo) exec(ctx context.Context, query sq.Sqlizer) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build statement: %w", err)
	}
	_, err = postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sqlStr, args...)
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
		set["date_start"] = u.DateStart.Time()
	}
	if u.ClearDateEnd {
		set["date_end"] = nil
	} else if u.DateEnd != nil {
		set["date_end"] = u.DateEnd.Time()
	}
	return set
}

func toDomain(row eventRow) domain.Event {
	return domain.Event{
		ID:          row.ID,
		Tag:         row.Tag,
		Category:    row.Category,
		Topic:       row.Topic,
		Name:        row.Name,
		Country:     row.Country,
		DateStart:   domain.DateOf(row.DateStart),
		DateEnd:     datePtr(row.DateEnd),
		Description: row.Description,
		AffectedBy:  []string{},
		Affects:     []string{},
	}
}

func datePtr(t *time.Time) *domain.Date {
	if t == nil {
		return nil
	}
	return domain.DatePtr(domain.DateOf(*t))
}

func dateArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}
