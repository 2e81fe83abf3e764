package repository

import (
	"cmp"
	"context"
	"database/sql"
	"slices"
	"time"

	"github.com/storeops-dev/shift-availability/backend/internal/domain"
)

// GetReservationCountsByShiftIDs 用一次查询读取给定班次的登记人数快照，
// 避免逐个班次查询时读到不一致的中间状态
func (r *Repository) GetReservationCountsByShiftIDs(shiftIDs []int64) (map[int64]int32, error) {
	query := `
		SELECT shift_id, COUNT(*)
		FROM reservations
		WHERE shift_id = ANY($1)
		GROUP BY shift_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shiftIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int32, len(shiftIDs))
	for rows.Next() {
		var shiftID int64
		var count int32
		if err := rows.Scan(&shiftID, &count); err != nil {
			return nil, err
		}
		counts[shiftID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *Repository) GetReservationsByEmployeeID(employeeID int64) ([]*domain.Reservation, error) {
	query := `
		SELECT id, shift_id, submitted_at
		FROM reservations
		WHERE employee_id = $1
		ORDER BY shift_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation := &domain.Reservation{
			EmployeeID: employeeID,
		}
		if err := rows.Scan(&reservation.ID, &reservation.ShiftID, &reservation.SubmittedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

// ReplaceEmployeeReservations 原子地用新的班次集合替换员工原有的全部登记。
// 事务内先锁定候选班次行，删除旧登记，再重新统计每个班次的人数，
// 只要有一个班次已满就整体回滚并返回 ShiftFullError，员工原有的登记保持不变。
// 行锁保证并发提交时两个员工不可能同时挤进同一个班次的最后一个名额
func (r *Repository) ReplaceEmployeeReservations(employeeID int64, shifts []*domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 按 id 升序加锁，避免并发提交交叉持锁导致死锁
	sorted := slices.Clone(shifts)
	slices.SortFunc(sorted, func(a, b *domain.Shift) int {
		return cmp.Compare(a.ID, b.ID)
	})

	for _, shift := range sorted {
		var lockedID int64
		query := `SELECT id FROM shifts WHERE id = $1 FOR UPDATE`
		if err := tx.QueryRowContext(ctx, query, shift.ID).Scan(&lockedID); err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrShiftNotFound
			}
			return err
		}
	}

	// 先删除旧登记，这样后面的计数天然不包含该员工自己
	query := `DELETE FROM reservations WHERE employee_id = $1`
	if _, err := tx.ExecContext(ctx, query, employeeID); err != nil {
		return err
	}

	for _, shift := range sorted {
		var count int32
		query := `SELECT COUNT(*) FROM reservations WHERE shift_id = $1`
		if err := tx.QueryRowContext(ctx, query, shift.ID).Scan(&count); err != nil {
			return err
		}
		if count >= shift.MaxCapacity {
			return &domain.ShiftFullError{ShiftID: shift.ID, Label: shift.Label()}
		}
	}

	// 同一次提交中的所有登记使用同一个提交时间
	submittedAt := time.Now()
	for _, shift := range sorted {
		query := `
			INSERT INTO reservations (employee_id, shift_id, submitted_at)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, employeeID, shift.ID, submittedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetAllShiftsWithEmployees 返回全部班次以及每个班次下按提交时间排序的员工姓名，
// 没有任何登记的班次也会出现在结果中
func (r *Repository) GetAllShiftsWithEmployees() ([]*domain.RosterShift, error) {
	query := `
		SELECT
			s.id,
			s.day_of_week,
			s.time_slot,
			s.max_capacity,
			e.full_name
		FROM shifts s
		LEFT JOIN reservations res ON s.id = res.shift_id
		LEFT JOIN employees e ON res.employee_id = e.id
		ORDER BY s.day_of_week, s.time_slot, res.submitted_at, res.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rosterShifts := make([]*domain.RosterShift, 0)
	shiftsMap := make(map[int64]*domain.RosterShift)

	for rows.Next() {
		var row struct {
			shiftID     int64
			dayOfWeek   int32
			timeSlot    string
			maxCapacity int32
			fullName    sql.NullString
		}

		dst := []any{
			&row.shiftID,
			&row.dayOfWeek,
			&row.timeSlot,
			&row.maxCapacity,
			&row.fullName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		rosterShift, exists := shiftsMap[row.shiftID]
		if !exists {
			rosterShift = &domain.RosterShift{
				Shift: domain.Shift{
					ID:          row.shiftID,
					DayOfWeek:   row.dayOfWeek,
					TimeSlot:    row.timeSlot,
					MaxCapacity: row.maxCapacity,
				},
				Employees: make([]string, 0),
			}
			shiftsMap[row.shiftID] = rosterShift
			// 查询结果已按天数和时间段排序，按出现顺序收集即可
			rosterShifts = append(rosterShifts, rosterShift)
		}

		if !row.fullName.Valid {
			// 表示这个班次没有任何登记
			continue
		}

		rosterShift.Employees = append(rosterShift.Employees, row.fullName.String)
		rosterShift.Count++
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rosterShifts, nil
}
