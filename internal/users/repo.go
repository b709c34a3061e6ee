package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type User struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	City   string `json:"city,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// GetByIDs resolves user ids to displayable user records. Unknown ids
// are skipped, not an error: the caller may hold ids from a graph
// snapshot that predates a deletion.
func (r *Repo) GetByIDs(ctx context.Context, ids []int64) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const q = `
select id, email, coalesce(phone,''), coalesce(city,''), coalesce(avatar,'')
from users
where id = any($1)
order by id;
`
	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Phone, &u.City, &u.Avatar); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return out, nil
}

// GetByID fetches a single user record.
func (r *Repo) GetByID(ctx context.Context, id int64) (*User, error) {
	us, err := r.GetByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(us) == 0 {
		return nil, nil
	}
	return &us[0], nil
}
