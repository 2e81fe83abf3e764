package repository

import (
	"context"
	"time"

	"github.com/storeops-dev/shift-availability/backend/internal/domain"
)

// EnsureShiftsSeeded 保证班次目录已经生成。
// 目录为空时在一个事务中一次性插入全部 14 个班次，否则什么都不做。
// 返回值表示本次调用是否真正执行了插入，可以安全地重复调用
func (r *Repository) EnsureShiftsSeeded(maxCapacity int32) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM shifts`).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	query := `
		INSERT INTO shifts (day_of_week, time_slot, max_capacity)
		VALUES ($1, $2, $3)
	`
	for _, shift := range domain.CatalogShifts(maxCapacity) {
		if _, err := tx.ExecContext(ctx, query, shift.DayOfWeek, shift.TimeSlot, shift.MaxCapacity); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}

func (r *Repository) GetAllShifts() ([]*domain.Shift, error) {
	query := `
		SELECT id, day_of_week, time_slot, max_capacity
		FROM shifts
		ORDER BY day_of_week, time_slot
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		if err := rows.Scan(&shift.ID, &shift.DayOfWeek, &shift.TimeSlot, &shift.MaxCapacity); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShiftsByIDs(ids []int64) ([]*domain.Shift, error) {
	query := `
		SELECT id, day_of_week, time_slot, max_capacity
		FROM shifts
		WHERE id = ANY($1)
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0, len(ids))
	for rows.Next() {
		shift := &domain.Shift{}
		if err := rows.Scan(&shift.ID, &shift.DayOfWeek, &shift.TimeSlot, &shift.MaxCapacity); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
