// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emblemstudio/studio-api/internal/model"
)

// CreateInquiryParams holds the fields for inserting an inquiry.
type CreateInquiryParams struct {
	Name    string
	Email   string
	Company string
	Message string
}

// CreateInquiry inserts a contact form submission.
func (q *Queries) CreateInquiry(ctx context.Context, arg CreateInquiryParams) error {
	company := sql.NullString{String: arg.Company, Valid: arg.Company != ""}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO inquiries (name, email, company, message)
		VALUES (?, ?, ?, ?)`,
		arg.Name, arg.Email, company, arg.Message)
	return err
}

// ListInquiries returns the newest inquiries first, capped at limit.
func (q *Queries) ListInquiries(ctx context.Context, limit int64) ([]model.Inquiry, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, email, company, message, created_at
		FROM inquiries ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []model.Inquiry{}
	for rows.Next() {
		var in model.Inquiry
		var company sql.NullString
		if err := rows.Scan(&in.ID, &in.Name, &in.Email, &company, &in.Message, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning inquiry: %w", err)
		}
		in.Company = company.String
		inquiries = append(inquiries, in)
	}
	return inquiries, rows.Err()
}

// CountInquiries returns the number of inquiry rows.
func (q *Queries) CountInquiries(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries`).Scan(&n)
	return n, err
}
