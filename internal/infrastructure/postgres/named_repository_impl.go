package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/noteful/internal/domain/entity"
	"github.com/oksasatya/noteful/internal/domain/repository"
)

// namedTable implements repository.NamedRepository for any table shaped
// (id, name, user_id, created_at, updated_at). The table name is a constant
// chosen by the constructors below, never user input.
type namedTable[T any] struct {
	pool  *pgxpool.Pool
	table string
	build func(id, name, userID string, createdAt, updatedAt time.Time) T
}

const namedColumns = `id::text, name, user_id::text, created_at, updated_at`

func NewFolderRepository(pool *pgxpool.Pool) repository.FolderRepository {
	return &namedTable[entity.Folder]{
		pool:  pool,
		table: "folders",
		build: func(id, name, userID string, createdAt, updatedAt time.Time) entity.Folder {
			return entity.Folder{ID: id, Name: name, UserID: userID, CreatedAt: createdAt, UpdatedAt: updatedAt}
		},
	}
}

func NewTagRepository(pool *pgxpool.Pool) repository.TagRepository {
	return &namedTable[entity.Tag]{
		pool:  pool,
		table: "tags",
		build: func(id, name, userID string, createdAt, updatedAt time.Time) entity.Tag {
			return entity.Tag{ID: id, Name: name, UserID: userID, CreatedAt: createdAt, UpdatedAt: updatedAt}
		},
	}
}

func (r *namedTable[T]) scan(row pgx.Row) (T, error) {
	var (
		id, name, userID     string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &userID, &createdAt, &updatedAt); err != nil {
		var zero T
		return zero, err
	}
	return r.build(id, name, userID, createdAt, updatedAt), nil
}

func (r *namedTable[T]) collect(rows pgx.Rows) ([]T, error) {
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *namedTable[T]) List(ctx context.Context, ownerID string) ([]T, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 ORDER BY name ASC`, namedColumns, r.table),
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	return r.collect(rows)
}

func (r *namedTable[T]) Get(ctx context.Context, id, ownerID string) (*T, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND user_id = $2`, namedColumns, r.table),
		id, ownerID)
	v, err := r.scan(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &v, nil
}

func (r *namedTable[T]) FindByIDs(ctx context.Context, ids []string, ownerID string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	arr, err := uuidArray(ids)
	if err != nil {
		return nil, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 AND id = ANY($2) ORDER BY name ASC`, namedColumns, r.table),
		ownerID, arr)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.table, err)
	}
	return r.collect(rows)
}

func (r *namedTable[T]) Count(ctx context.Context, ids []string, ownerID string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	arr, err := uuidArray(ids)
	if err != nil {
		return 0, err
	}
	var n int
	err = conn(ctx, r.pool).QueryRow(ctx,
		fmt.Sprintf(`SELECT count(*) FROM %s WHERE user_id = $1 AND id = ANY($2)`, r.table),
		ownerID, arr).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table, err)
	}
	return n, nil
}

func (r *namedTable[T]) Create(ctx context.Context, name, ownerID string) (*T, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (name, user_id) VALUES ($1, $2) RETURNING %s`, r.table, namedColumns),
		name, ownerID)
	v, err := r.scan(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &v, nil
}

func (r *namedTable[T]) Rename(ctx context.Context, id, name, ownerID string) (*T, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		fmt.Sprintf(`UPDATE %s SET name = $1, updated_at = now() WHERE id = $2 AND user_id = $3 RETURNING %s`, r.table, namedColumns),
		name, id, ownerID)
	v, err := r.scan(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &v, nil
}

func (r *namedTable[T]) Delete(ctx context.Context, id, ownerID string) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.table),
		id, ownerID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	return nil
}
