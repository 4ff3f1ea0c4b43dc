package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/roomescape/reservation-service/internal/model"
)

// ThemeRepo manages persistence for room-escape themes.
type ThemeRepo struct {
	db *sql.DB
}

func NewThemeRepo(db *sql.DB) *ThemeRepo { return &ThemeRepo{db: db} }

// Create inserts a new theme and populates its generated ID.
func (r *ThemeRepo) Create(ctx context.Context, t *model.Theme) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO themes (name, description, thumbnail) VALUES (?,?,?)",
		t.Name, t.Description, t.Thumbnail)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID returns the theme with the given id or ErrThemeNotFound.
func (r *ThemeRepo) GetByID(ctx context.Context, id uint64) (model.Theme, error) {
	var t model.Theme
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, thumbnail FROM themes WHERE id=? LIMIT 1", id).
		Scan(&t.ID, &t.Name, &t.Description, &t.Thumbnail)
	if err == sql.ErrNoRows {
		return model.Theme{}, ErrThemeNotFound
	}
	if err != nil {
		return model.Theme{}, err
	}
	return t, nil
}

// List returns all themes ordered by name.
func (r *ThemeRepo) List(ctx context.Context) ([]model.Theme, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, thumbnail FROM themes ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Theme, 0)
	for rows.Next() {
		var t model.Theme
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Thumbnail); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes a theme. It returns ErrThemeNotFound when no row
// matched and ErrConflict when reservations still reference the theme.
func (r *ThemeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM themes WHERE id=?", id)
	if err != nil {
		if strings.Contains(err.Error(), "1451") {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrThemeNotFound
	}
	return nil
}
