package repository

import (
	"context"
	"time"

	"github.com/storeops-dev/shift-availability/backend/internal/domain"
)

// UpsertEmployeeByFullName 根据归一化后的姓名查找或创建员工。
// 重复提交同一个姓名会命中 full_name 的唯一约束并返回已有记录，不会产生重复员工
func (r *Repository) UpsertEmployeeByFullName(fullName string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO employees (full_name)
		VALUES ($1)
		ON CONFLICT (full_name) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id, created_at
	`

	employee := &domain.Employee{
		FullName: fullName,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, fullName).Scan(&employee.ID, &employee.CreatedAt); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT full_name, created_at
		FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&employee.FullName, &employee.CreatedAt); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT id, full_name, created_at FROM employees ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		if err := rows.Scan(&employee.ID, &employee.FullName, &employee.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
