// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by the store, service, and
// handler layers.
package model

import "time"

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User represents an account that can sign in to the admin API.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// Socials holds the social profile links shown in the site footer.
type Socials struct {
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

// Settings is the site-wide content document stored as a single JSON row.
type Settings struct {
	HeroBadge       string   `json:"heroBadge"`
	HeroTitle       string   `json:"heroTitle"`
	HeroSubtitle    string   `json:"heroSubtitle"`
	HeroNotes       []string `json:"heroNotes"`
	ContactTitle    string   `json:"contactTitle"`
	ContactSubtitle string   `json:"contactSubtitle"`
	ContactNotes    []string `json:"contactNotes"`
	ContactEmail    string   `json:"contactEmail"`
	FooterBlurb     string   `json:"footerBlurb"`
	Socials         Socials  `json:"socials"`
}

// Service is one entry in the ordered services list.
type Service struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Meta        string    `json:"meta"`
	Description string    `json:"desc"`
	Position    int64     `json:"position"`
	IsPublished bool      `json:"is_published"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project is one entry in the ordered portfolio list.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Role        string    `json:"role"`
	Summary     string    `json:"summary"`
	Year        string    `json:"year"`
	Focus       string    `json:"focus"`
	Position    int64     `json:"position"`
	IsPublished bool      `json:"is_published"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Inquiry is a contact form submission.
type Inquiry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Media is an uploaded file tracked in the database. The URL field is
// derived from the filename and never stored.
type Media struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Mime         string    `json:"mime"`
	Size         int64     `json:"size"`
	Width        int64     `json:"width,omitempty"`
	Height       int64     `json:"height,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	URL          string    `json:"url,omitempty"`
}

// AllowedUploadMimes is the set of sniffed MIME types accepted for upload.
var AllowedUploadMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// DefaultSettings returns the content document used until an admin saves
// their own.
func DefaultSettings() Settings {
	return Settings{
		HeroBadge: "Booking Q2 2026 · 2–6 week sprints",
		HeroTitle: "Editorial-grade digital experiences for teams who demand clarity and edge.",
		HeroSubtitle: "Emblém is a small studio blending identity, product UX, and front-end build. " +
			"We ship sharp systems that stay minimal, fast, and unmistakably yours.",
		HeroNotes:    []string{"Remote · UTC+1", "Design + development", "Built for launch speed"},
		ContactTitle: "Tell us what you are building and where the friction is.",
		ContactSubtitle: "A single doc, a rough prototype, or a brand that needs sharper product work — " +
			"that is enough to start.",
		ContactNotes: []string{"We respond within 48 hours with next steps and a clear schedule."},
		ContactEmail: "hello@emblem.studio",
		FooterBlurb:  "Emblém studio · design and dev studio · open for new projects.",
		Socials: Socials{
			LinkedIn:  "https://www.linkedin.com",
			Instagram: "https://www.instagram.com",
		},
	}
}

// DefaultServices returns the seed services list, in display order.
func DefaultServices() []Service {
	return []Service{
		{Title: "Brand Systems", Meta: "Identity", Description: "Names, identities, and art direction that translate into real assets and usable templates.", IsPublished: true},
		{Title: "Launch & Marketing Sites", Meta: "Web", Description: "High-contrast sites for new products, waitlists, and sharp announcements with real conversions.", IsPublished: true},
		{Title: "Product UX", Meta: "Product", Description: "Design language, UI flows, and dashboard UI that scales without losing character.", IsPublished: true},
		{Title: "Design Systems", Meta: "Systems", Description: "Tokens, components, and patterns that keep every new screen on-brand and consistent.", IsPublished: true},
		{Title: "Studio Retainers", Meta: "Support", Description: "Monthly design and dev support for teams who want a small, focused partner.", IsPublished: true},
		{Title: "Creative Direction", Meta: "Direction", Description: "Visual strategy and art direction for teams working with AI or rapid content pipelines.", IsPublished: true},
	}
}

// DefaultProjects returns the seed portfolio list, in display order.
func DefaultProjects() []Project {
	return []Project{
		{Title: "Fieldnote", Role: "Identity, marketing site, product UI", Summary: "Concept: a minimal interface for research teams to collect and share findings without the usual noise.", Year: "2024", Focus: "Research", IsPublished: true},
		{Title: "Northline Studio", Role: "Art direction, portfolio experience", Summary: "Study: editorial layout for an architecture studio crossing physical and digital spaces.", Year: "2023", Focus: "Editorial", IsPublished: true},
		{Title: "Sora Analytics", Role: "Dashboard UI, design system", Summary: "Concept: fast, legible dashboards that help growth teams make daily calls quickly.", Year: "2023", Focus: "Data", IsPublished: true},
		{Title: "Linea", Role: "Brand refresh, product marketing", Summary: "Exploration: a refined logotype, palette, and landing page system for a productivity tool.", Year: "2022", Focus: "Brand", IsPublished: true},
		{Title: "Atlas Health", Role: "Product UI, onboarding flows", Summary: "Concept: simplified onboarding and care plans for a digital health platform.", Year: "2022", Focus: "Health", IsPublished: true},
		{Title: "Quiet Supply", Role: "Identity, ecommerce experience", Summary: "Study: a restrained identity and shopping journey for a small-batch home goods label.", Year: "2021", Focus: "Commerce", IsPublished: true},
	}
}
