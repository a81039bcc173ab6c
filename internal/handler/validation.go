// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/emblemstudio/studio-api/internal/model"
	"github.com/emblemstudio/studio-api/internal/service"
)

// FieldErrors collects per-field validation failures keyed by field path.
type FieldErrors map[string]string

func (fe FieldErrors) add(path, message string) {
	if _, exists := fe[path]; !exists {
		fe[path] = message
	}
}

// Write sends the collected violations as a 400 response. Returns true if
// there was anything to write.
func (fe FieldErrors) Write(w http.ResponseWriter) bool {
	if len(fe) == 0 {
		return false
	}
	WriteError(w, http.StatusBadRequest, CodeValidation, "Invalid payload", fe)
	return true
}

func (fe FieldErrors) checkLength(path, value string, min, max int) string {
	value = strings.TrimSpace(value)
	n := utf8.RuneCountInString(value)
	switch {
	case n < min && min == 1:
		fe.add(path, "is required")
	case n < min:
		fe.add(path, fmt.Sprintf("must be at least %d characters", min))
	case n > max:
		fe.add(path, fmt.Sprintf("must be at most %d characters", max))
	}
	return value
}

func (fe FieldErrors) checkOptional(path, value string, max int) string {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > max {
		fe.add(path, fmt.Sprintf("must be at most %d characters", max))
	}
	return value
}

func (fe FieldErrors) checkEmail(path, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		fe.add(path, "is required")
		return value
	}
	if utf8.RuneCountInString(value) > 200 {
		fe.add(path, "must be at most 200 characters")
		return value
	}
	if addr, err := mail.ParseAddress(value); err != nil || addr.Address != value {
		fe.add(path, "must be a valid email address")
	}
	return value
}

// loginPayload is the login request body.
type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p *loginPayload) validate() FieldErrors {
	fe := FieldErrors{}
	p.Email = fe.checkEmail("email", p.Email)
	if n := len(p.Password); n < 6 {
		fe.add("password", "must be at least 6 characters")
	} else if n > 200 {
		fe.add("password", "must be at most 200 characters")
	}
	return fe
}

// inquiryPayload is the public contact form body. Website is a honeypot
// field real visitors never fill.
type inquiryPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`
	Website string `json:"website"`
}

func (p *inquiryPayload) validate() FieldErrors {
	fe := FieldErrors{}
	p.Name = fe.checkLength("name", p.Name, 2, 120)
	p.Email = fe.checkEmail("email", p.Email)
	p.Company = fe.checkOptional("company", p.Company, 120)
	p.Message = fe.checkLength("message", p.Message, 10, 2000)
	p.Website = fe.checkOptional("website", p.Website, 200)
	return fe
}

// settingsPayload mirrors the settings document with all bounds enforced.
type settingsPayload struct {
	HeroBadge       string   `json:"heroBadge"`
	HeroTitle       string   `json:"heroTitle"`
	HeroSubtitle    string   `json:"heroSubtitle"`
	HeroNotes       []string `json:"heroNotes"`
	ContactTitle    string   `json:"contactTitle"`
	ContactSubtitle string   `json:"contactSubtitle"`
	ContactNotes    []string `json:"contactNotes"`
	ContactEmail    string   `json:"contactEmail"`
	FooterBlurb     string   `json:"footerBlurb"`
	Socials         struct {
		LinkedIn  string `json:"linkedin"`
		Instagram string `json:"instagram"`
	} `json:"socials"`
}

func (p *settingsPayload) validate() FieldErrors {
	fe := FieldErrors{}
	p.HeroBadge = fe.checkLength("heroBadge", p.HeroBadge, 1, 160)
	p.HeroTitle = fe.checkLength("heroTitle", p.HeroTitle, 1, 180)
	p.HeroSubtitle = fe.checkLength("heroSubtitle", p.HeroSubtitle, 1, 600)
	fe.checkNotes("heroNotes", p.HeroNotes, 8, 120)
	p.ContactTitle = fe.checkLength("contactTitle", p.ContactTitle, 1, 160)
	p.ContactSubtitle = fe.checkLength("contactSubtitle", p.ContactSubtitle, 1, 600)
	fe.checkNotes("contactNotes", p.ContactNotes, 6, 140)
	p.ContactEmail = fe.checkEmail("contactEmail", p.ContactEmail)
	p.FooterBlurb = fe.checkLength("footerBlurb", p.FooterBlurb, 1, 200)
	p.Socials.LinkedIn = fe.checkOptional("socials.linkedin", p.Socials.LinkedIn, 200)
	p.Socials.Instagram = fe.checkOptional("socials.instagram", p.Socials.Instagram, 200)
	return fe
}

func (fe FieldErrors) checkNotes(path string, notes []string, maxItems, maxLen int) {
	if len(notes) > maxItems {
		fe.add(path, fmt.Sprintf("must have at most %d items", maxItems))
		return
	}
	for i, note := range notes {
		fe.checkLength(fmt.Sprintf("%s.%d", path, i), note, 1, maxLen)
	}
}

func (p *settingsPayload) toModel() model.Settings {
	notes := func(in []string) []string {
		out := make([]string, len(in))
		for i, s := range in {
			out[i] = strings.TrimSpace(s)
		}
		return out
	}
	return model.Settings{
		HeroBadge:       p.HeroBadge,
		HeroTitle:       p.HeroTitle,
		HeroSubtitle:    p.HeroSubtitle,
		HeroNotes:       notes(p.HeroNotes),
		ContactTitle:    p.ContactTitle,
		ContactSubtitle: p.ContactSubtitle,
		ContactNotes:    notes(p.ContactNotes),
		ContactEmail:    p.ContactEmail,
		FooterBlurb:     p.FooterBlurb,
		Socials: model.Socials{
			LinkedIn:  p.Socials.LinkedIn,
			Instagram: p.Socials.Instagram,
		},
	}
}

// servicePayload is one entry of the services replacement body.
type servicePayload struct {
	Title       string `json:"title"`
	Desc        string `json:"desc"`
	Meta        string `json:"meta"`
	IsPublished *bool  `json:"is_published"`
}

func validateServices(items []servicePayload) ([]service.ServiceItem, FieldErrors) {
	fe := FieldErrors{}
	if len(items) > service.MaxContentItems {
		fe.add("services", fmt.Sprintf("must have at most %d items", service.MaxContentItems))
		return nil, fe
	}

	out := make([]service.ServiceItem, len(items))
	for i, item := range items {
		prefix := fmt.Sprintf("%d.", i)
		out[i] = service.ServiceItem{
			Title:       fe.checkLength(prefix+"title", item.Title, 1, 120),
			Description: fe.checkLength(prefix+"desc", item.Desc, 1, 400),
			Meta:        fe.checkLength(prefix+"meta", item.Meta, 1, 80),
			IsPublished: item.IsPublished == nil || *item.IsPublished,
		}
	}
	if len(fe) > 0 {
		return nil, fe
	}
	return out, fe
}

// projectPayload is one entry of the projects replacement body.
type projectPayload struct {
	Title       string `json:"title"`
	Role        string `json:"role"`
	Summary     string `json:"summary"`
	Year        string `json:"year"`
	Focus       string `json:"focus"`
	IsPublished *bool  `json:"is_published"`
}

func validateProjects(items []projectPayload) ([]service.ProjectItem, FieldErrors) {
	fe := FieldErrors{}
	if len(items) > service.MaxContentItems {
		fe.add("projects", fmt.Sprintf("must have at most %d items", service.MaxContentItems))
		return nil, fe
	}

	out := make([]service.ProjectItem, len(items))
	for i, item := range items {
		prefix := fmt.Sprintf("%d.", i)
		out[i] = service.ProjectItem{
			Title:       fe.checkLength(prefix+"title", item.Title, 1, 120),
			Role:        fe.checkLength(prefix+"role", item.Role, 1, 160),
			Summary:     fe.checkLength(prefix+"summary", item.Summary, 1, 600),
			Year:        fe.checkLength(prefix+"year", item.Year, 2, 12),
			Focus:       fe.checkLength(prefix+"focus", item.Focus, 1, 80),
			IsPublished: item.IsPublished == nil || *item.IsPublished,
		}
	}
	if len(fe) > 0 {
		return nil, fe
	}
	return out, fe
}
