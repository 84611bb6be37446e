package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/noteful/internal/domain/entity"
	"github.com/oksasatya/noteful/internal/domain/repository"
)

const noteSelect = `
	SELECT n.id::text, n.title, n.content, n.folder_id::text, n.user_id::text, n.created_at, n.updated_at,
	       COALESCE(array_agg(nt.tag_id::text) FILTER (WHERE nt.tag_id IS NOT NULL), '{}')
	FROM notes n
	LEFT JOIN note_tags nt ON nt.note_id = n.id`

type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func scanNote(row pgx.Row) (entity.Note, error) {
	var n entity.Note
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.FolderID, &n.UserID, &n.CreatedAt, &n.UpdatedAt, &n.TagIDs)
	return n, err
}

// escapeLike makes term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

func (r *NoteRepository) List(ctx context.Context, f entity.NoteFilter) ([]entity.Note, error) {
	args := []any{f.UserID}
	where := []string{"n.user_id = $1"}
	if f.SearchTerm != "" {
		args = append(args, "%"+escapeLike(f.SearchTerm)+"%")
		where = append(where, fmt.Sprintf("(n.title ILIKE $%d OR n.content ILIKE $%d)", len(args), len(args)))
	}
	if f.FolderID != "" {
		args = append(args, f.FolderID)
		where = append(where, fmt.Sprintf("n.folder_id = $%d", len(args)))
	}
	if f.TagID != "" {
		args = append(args, f.TagID)
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM note_tags x WHERE x.note_id = n.id AND x.tag_id = $%d)", len(args)))
	}
	query := noteSelect + `
	WHERE ` + strings.Join(where, " AND ") + `
	GROUP BY n.id
	ORDER BY n.updated_at DESC`

	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NoteRepository) Get(ctx context.Context, id, ownerID string) (*entity.Note, error) {
	row := conn(ctx, r.pool).QueryRow(ctx, noteSelect+`
	WHERE n.id = $1 AND n.user_id = $2
	GROUP BY n.id`, id, ownerID)
	n, err := scanNote(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &n, nil
}

func (r *NoteRepository) Create(ctx context.Context, n *entity.Note) error {
	return inTx(ctx, r.pool, func(q querier) error {
		err := q.QueryRow(ctx, `
			INSERT INTO notes (title, content, folder_id, user_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id::text, created_at, updated_at
		`, n.Title, n.Content, n.FolderID, n.UserID).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert note: %w", mapError(err))
		}
		return replaceTags(ctx, q, n.ID, n.TagIDs)
	})
}

func (r *NoteRepository) Update(ctx context.Context, n *entity.Note) error {
	return inTx(ctx, r.pool, func(q querier) error {
		err := q.QueryRow(ctx, `
			UPDATE notes
			SET title = $1, content = $2, folder_id = $3, updated_at = now()
			WHERE id = $4 AND user_id = $5
			RETURNING created_at, updated_at
		`, n.Title, n.Content, n.FolderID, n.ID, n.UserID).Scan(&n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return mapError(err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM note_tags WHERE note_id = $1`, n.ID); err != nil {
			return fmt.Errorf("clear note tags: %w", err)
		}
		return replaceTags(ctx, q, n.ID, n.TagIDs)
	})
}

func replaceTags(ctx context.Context, q querier, noteID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	arr, err := uuidArray(tagIDs)
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx, `
		INSERT INTO note_tags (note_id, tag_id)
		SELECT $1::uuid, unnest($2::uuid[])
	`, noteID, arr); err != nil {
		return fmt.Errorf("insert note tags: %w", mapError(err))
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, ownerID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (r *NoteRepository) ClearFolder(ctx context.Context, folderID, ownerID string) (int64, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE notes SET folder_id = NULL, updated_at = now()
		WHERE folder_id = $1 AND user_id = $2
	`, folderID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("clear folder on notes: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *NoteRepository) RemoveTag(ctx context.Context, tagID, ownerID string) (int64, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		WITH removed AS (
			DELETE FROM note_tags nt
			USING notes n
			WHERE nt.note_id = n.id AND nt.tag_id = $1 AND n.user_id = $2
			RETURNING nt.note_id
		)
		UPDATE notes SET updated_at = now()
		WHERE id IN (SELECT note_id FROM removed)
	`, tagID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("remove tag from notes: %w", err)
	}
	return tag.RowsAffected(), nil
}

var _ repository.NoteRepository = (*NoteRepository)(nil)
