// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the business logic between the HTTP handlers
// and the store.
package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emblemstudio/studio-api/internal/model"
	"github.com/emblemstudio/studio-api/internal/store"
)

// MaxContentItems caps the services and projects lists.
const MaxContentItems = 30

// ServiceItem is one entry of a services replacement payload, already
// validated by the handler.
type ServiceItem struct {
	Title       string
	Meta        string
	Description string
	IsPublished bool
}

// ProjectItem is one entry of a projects replacement payload.
type ProjectItem struct {
	Title       string
	Role        string
	Summary     string
	Year        string
	Focus       string
	IsPublished bool
}

// PublicContent is the payload of the public content endpoint.
type PublicContent struct {
	Settings model.Settings  `json:"settings"`
	Services []model.Service `json:"services"`
	Projects []model.Project `json:"projects"`
}

// AdminContent is the payload of the admin content endpoint.
type AdminContent struct {
	Settings  model.Settings  `json:"settings"`
	Services  []model.Service `json:"services"`
	Projects  []model.Project `json:"projects"`
	Inquiries []model.Inquiry `json:"inquiries"`
	Media     []model.Media   `json:"media"`
}

// ContentService manages the site content: settings, services, projects,
// and inquiries.
type ContentService struct {
	db      *sql.DB
	queries *store.Queries
}

// NewContentService creates a ContentService.
func NewContentService(db *sql.DB) *ContentService {
	return &ContentService{db: db, queries: store.New(db)}
}

// PublicContent returns the published site content in display order.
func (s *ContentService) PublicContent(ctx context.Context) (PublicContent, error) {
	settings, err := s.queries.GetSettings(ctx)
	if err != nil {
		return PublicContent{}, err
	}
	services, err := s.queries.ListPublishedServices(ctx)
	if err != nil {
		return PublicContent{}, err
	}
	projects, err := s.queries.ListPublishedProjects(ctx)
	if err != nil {
		return PublicContent{}, err
	}
	return PublicContent{Settings: settings, Services: services, Projects: projects}, nil
}

// AdminContent returns the full editing snapshot: all content rows plus
// recent inquiries and media.
func (s *ContentService) AdminContent(ctx context.Context, mediaURL func(string) string) (AdminContent, error) {
	settings, err := s.queries.GetSettings(ctx)
	if err != nil {
		return AdminContent{}, err
	}
	services, err := s.queries.ListServices(ctx)
	if err != nil {
		return AdminContent{}, err
	}
	projects, err := s.queries.ListProjects(ctx)
	if err != nil {
		return AdminContent{}, err
	}
	inquiries, err := s.queries.ListInquiries(ctx, 50)
	if err != nil {
		return AdminContent{}, err
	}
	media, err := s.queries.ListMedia(ctx, 100)
	if err != nil {
		return AdminContent{}, err
	}
	for i := range media {
		media[i].URL = mediaURL(media[i].Filename)
	}
	return AdminContent{
		Settings:  settings,
		Services:  services,
		Projects:  projects,
		Inquiries: inquiries,
		Media:     media,
	}, nil
}

// SaveSettings replaces the settings document.
func (s *ContentService) SaveSettings(ctx context.Context, settings model.Settings) error {
	return s.queries.UpsertSettings(ctx, settings)
}

// ReplaceServices swaps the entire services list inside one transaction.
// Positions are assigned from payload order. On any failure the transaction
// rolls back and the previous list stays intact.
func (s *ContentService) ReplaceServices(ctx context.Context, items []ServiceItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)
	if err := qtx.DeleteAllServices(ctx); err != nil {
		return fmt.Errorf("clearing services: %w", err)
	}
	for i, item := range items {
		err := qtx.CreateService(ctx, store.CreateServiceParams{
			Title:       item.Title,
			Meta:        item.Meta,
			Description: item.Description,
			Position:    int64(i),
			IsPublished: item.IsPublished,
		})
		if err != nil {
			return fmt.Errorf("inserting service %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing services: %w", err)
	}
	return nil
}

// ReplaceProjects swaps the entire projects list inside one transaction.
func (s *ContentService) ReplaceProjects(ctx context.Context, items []ProjectItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)
	if err := qtx.DeleteAllProjects(ctx); err != nil {
		return fmt.Errorf("clearing projects: %w", err)
	}
	for i, item := range items {
		err := qtx.CreateProject(ctx, store.CreateProjectParams{
			Title:       item.Title,
			Role:        item.Role,
			Summary:     item.Summary,
			Year:        item.Year,
			Focus:       item.Focus,
			Position:    int64(i),
			IsPublished: item.IsPublished,
		})
		if err != nil {
			return fmt.Errorf("inserting project %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing projects: %w", err)
	}
	return nil
}

// CreateInquiry stores a contact form submission.
func (s *ContentService) CreateInquiry(ctx context.Context, arg store.CreateInquiryParams) error {
	return s.queries.CreateInquiry(ctx, arg)
}

// ListInquiries returns recent inquiries, newest first.
func (s *ContentService) ListInquiries(ctx context.Context, limit int64) ([]model.Inquiry, error) {
	return s.queries.ListInquiries(ctx, limit)
}
