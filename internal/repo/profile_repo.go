package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/skillmatch/internal/model"
	"github.com/xxxsen/skillmatch/internal/pkg/dbutil"
)

// ProfileRepo stores the skills and habits a user saved on the dashboard.
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) ReplaceSkills(ctx context.Context, userID string, skills []model.UserSkill) error {
	rows := make([]map[string]interface{}, 0, len(skills))
	for _, s := range skills {
		rows = append(rows, map[string]interface{}{
			"id":      s.ID,
			"user_id": userID,
			"name":    s.Name,
			"ctime":   s.Ctime,
		})
	}
	return r.replace(ctx, "user_skills", userID, rows)
}

func (r *ProfileRepo) ReplaceHabits(ctx context.Context, userID string, habits []model.UserHabit) error {
	rows := make([]map[string]interface{}, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, map[string]interface{}{
			"id":          h.ID,
			"user_id":     userID,
			"description": h.Description,
			"ctime":       h.Ctime,
		})
	}
	return r.replace(ctx, "user_habits", userID, rows)
}

func (r *ProfileRepo) replace(ctx context.Context, table, userID string, rows []map[string]interface{}) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	sqlStr, args, err := builder.BuildDelete(table, map[string]interface{}{"user_id": userID})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	if len(rows) > 0 {
		sqlStr, args, err = builder.BuildInsert(table, rows)
		if err != nil {
			return err
		}
		sqlStr, args = dbutil.Finalize(sqlStr, args)
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ProfileRepo) ListSkills(ctx context.Context, userID string) ([]model.UserSkill, error) {
	where := map[string]interface{}{"user_id": userID, "_orderby": "ctime asc, name asc"}
	sqlStr, args, err := builder.BuildSelect("user_skills", where, []string{"id", "user_id", "name", "ctime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.UserSkill, 0)
	for rows.Next() {
		var s model.UserSkill
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Ctime); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ProfileRepo) ListHabits(ctx context.Context, userID string) ([]model.UserHabit, error) {
	where := map[string]interface{}{"user_id": userID, "_orderby": "ctime asc, description asc"}
	sqlStr, args, err := builder.BuildSelect("user_habits", where, []string{"id", "user_id", "description", "ctime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.UserHabit, 0)
	for rows.Next() {
		var h model.UserHabit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Description, &h.Ctime); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
