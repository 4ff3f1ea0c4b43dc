package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/roomescape/reservation-service/internal/model"
	"github.com/roomescape/reservation-service/internal/utils"
)

// MemberRepo manages persistence for the `members` table.
type MemberRepo struct{ DB *sql.DB }

func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{DB: db} }

// Create hashes the password, inserts the member and returns its ID.
// Email is normalized to lower case before insertion.
func (r *MemberRepo) Create(ctx context.Context, name, email, password string, role model.Role, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO members (name, email, password_hash, role) VALUES (?,?,?,?)",
		name, email, hash, string(role))
	if err != nil {
		// MySQL duplicate-key violations surface as error 1062.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a member by normalized email. Returns sql.ErrNoRows
// when no such member exists.
func (r *MemberRepo) GetByEmail(ctx context.Context, email string) (model.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var m model.Member
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,role,created_at FROM members WHERE email=? LIMIT 1",
		email).Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash, &role, &m.CreatedAt)
	if err != nil {
		return model.Member{}, err
	}
	m.Role = model.Role(role)
	return m, nil
}

// GetByID fetches a member by id. Returns sql.ErrNoRows when absent.
func (r *MemberRepo) GetByID(ctx context.Context, id uint64) (model.Member, error) {
	var m model.Member
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,role,created_at FROM members WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash, &role, &m.CreatedAt)
	if err != nil {
		return model.Member{}, err
	}
	m.Role = model.Role(role)
	return m, nil
}
