package settings

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/khanghh/vbs/internal/audit"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/model"
	"github.com/khanghh/vbs/params"
	"gorm.io/gorm"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type SettingsInput struct {
	SiteName     string
	PrimaryColor string
	LogoURL      string
	ContactEmail string
}

func (in SettingsInput) toModel() (*model.Settings, error) {
	siteName := strings.TrimSpace(in.SiteName)
	if siteName == "" {
		return nil, guard.NewValidationError("Site name is required.")
	}
	if len(siteName) > 128 {
		return nil, guard.NewValidationError("Site name is too long.")
	}
	color := strings.ToLower(strings.TrimSpace(in.PrimaryColor))
	if !colorPattern.MatchString(color) {
		return nil, guard.NewValidationError("Primary color must look like #a1b2c3.")
	}
	logoURL := strings.TrimSpace(in.LogoURL)
	if logoURL != "" {
		u, err := url.Parse(logoURL)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" || len(logoURL) > 512 {
			return nil, guard.NewValidationError("Logo URL must be an http(s) address.")
		}
	}
	contactEmail := strings.TrimSpace(in.ContactEmail)
	if contactEmail != "" {
		if _, err := mail.ParseAddress(contactEmail); err != nil {
			return nil, guard.NewValidationError("Invalid contact email.")
		}
	}
	return &model.Settings{
		ID:           params.SettingsSingletonID,
		SiteName:     siteName,
		PrimaryColor: color,
		LogoURL:      logoURL,
		ContactEmail: contactEmail,
	}, nil
}

// SettingsService holds the site branding shown on every page.
type SettingsService struct {
	guard    *guard.Guard
	repo     SettingsRepository
	audit    *audit.Writer
	defaults model.Settings
}

// Get returns the stored branding, or the defaults when none was saved. It
// needs no session because the login page shows it.
func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.repo.First(ctx, params.SettingsSingletonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := s.defaults
		return &defaults, nil
	}
	return settings, err
}

func (s *SettingsService) Update(ctx context.Context, in SettingsInput) (*model.Settings, error) {
	sess, err := s.guard.RequireRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	settings, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionSettingsUpdated,
		ResourceType: guard.ResourceSettings,
		ResourceID:   settings.ID,
		Details:      map[string]any{"siteName": settings.SiteName, "primaryColor": settings.PrimaryColor},
	})
	return settings, nil
}

// NewSettingsService uses siteName as the default site name when set.
func NewSettingsService(g *guard.Guard, repo SettingsRepository, auditWriter *audit.Writer, siteName string) *SettingsService {
	if siteName == "" {
		siteName = params.DefaultSiteName
	}
	return &SettingsService{
		guard: g,
		repo:  repo,
		audit: auditWriter,
		defaults: model.Settings{
			ID:           params.SettingsSingletonID,
			SiteName:     siteName,
			PrimaryColor: params.DefaultPrimaryColor,
		},
	}
}
