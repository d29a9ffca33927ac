// Package model defines domain records mirrored between the hosted backend
// and the on-device cache.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Language is a UI language of the app.
type Language string

// Supported languages.
const (
	LanguageFR Language = "fr" // French
	LanguageHT Language = "ht" // Haitian Creole
)

// Valid reports whether l is a supported language code.
func (l Language) Valid() bool { return l == LanguageFR || l == LanguageHT }

// UserProfile is the account profile row (remote table user_profiles,
// mirrored locally). Exactly one row per user id.
type UserProfile struct {
	ID                uuid.UUID
	Email             string
	FullName          *string // nullable
	PreferredLanguage Language
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	FullName          *string
	PreferredLanguage *Language
}

// IsZero reports whether the patch changes nothing.
func (p ProfilePatch) IsZero() bool {
	return p.FullName == nil && p.PreferredLanguage == nil
}

// Apply merges the patch over base and returns the result.
func (p ProfilePatch) Apply(base UserProfile) UserProfile {
	if p.FullName != nil {
		base.FullName = p.FullName
	}
	if p.PreferredLanguage != nil {
		base.PreferredLanguage = *p.PreferredLanguage
	}
	return base
}

// UserPreferences is the per-user settings row (remote table
// user_preferences, mirrored locally; one-to-one with the profile).
type UserPreferences struct {
	ID                    uuid.UUID
	DarkMode              bool
	DarkModeAuto          bool
	NotificationsEnabled  bool
	NotificationSound     bool
	AutoDownload          bool
	TextSize              float64
	NewArticlesNotif      bool
	ReadRemindersNotif    bool
	WeeklySummaryNotif    bool
	CommunityUpdatesNotif bool
	ImportantNewsNotif    bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TextSizes are the discrete text scale factors offered by the settings screen.
var TextSizes = []float64{0.9, 1.0, 1.2}

// DefaultPreferences returns the server-side defaults created for a user on
// first fetch.
func DefaultPreferences(id uuid.UUID, now time.Time) UserPreferences {
	return UserPreferences{
		ID:                    id,
		DarkMode:              false,
		DarkModeAuto:          true,
		NotificationsEnabled:  true,
		NotificationSound:     true,
		AutoDownload:          false,
		TextSize:              1.0,
		NewArticlesNotif:      true,
		ReadRemindersNotif:    false,
		WeeklySummaryNotif:    true,
		CommunityUpdatesNotif: false,
		ImportantNewsNotif:    true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// PreferencesPatch is a partial preferences update. Nil fields are left untouched.
type PreferencesPatch struct {
	DarkMode              *bool
	DarkModeAuto          *bool
	NotificationsEnabled  *bool
	NotificationSound     *bool
	AutoDownload          *bool
	TextSize              *float64
	NewArticlesNotif      *bool
	ReadRemindersNotif    *bool
	WeeklySummaryNotif    *bool
	CommunityUpdatesNotif *bool
	ImportantNewsNotif    *bool
}

// IsZero reports whether the patch changes nothing.
func (p PreferencesPatch) IsZero() bool {
	return p.DarkMode == nil && p.DarkModeAuto == nil &&
		p.NotificationsEnabled == nil && p.NotificationSound == nil &&
		p.AutoDownload == nil && p.TextSize == nil &&
		p.NewArticlesNotif == nil && p.ReadRemindersNotif == nil &&
		p.WeeklySummaryNotif == nil && p.CommunityUpdatesNotif == nil &&
		p.ImportantNewsNotif == nil
}

// Apply merges the patch over base and returns the result.
func (p PreferencesPatch) Apply(base UserPreferences) UserPreferences {
	if p.DarkMode != nil {
		base.DarkMode = *p.DarkMode
	}
	if p.DarkModeAuto != nil {
		base.DarkModeAuto = *p.DarkModeAuto
	}
	if p.NotificationsEnabled != nil {
		base.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.NotificationSound != nil {
		base.NotificationSound = *p.NotificationSound
	}
	if p.AutoDownload != nil {
		base.AutoDownload = *p.AutoDownload
	}
	if p.TextSize != nil {
		base.TextSize = *p.TextSize
	}
	if p.NewArticlesNotif != nil {
		base.NewArticlesNotif = *p.NewArticlesNotif
	}
	if p.ReadRemindersNotif != nil {
		base.ReadRemindersNotif = *p.ReadRemindersNotif
	}
	if p.WeeklySummaryNotif != nil {
		base.WeeklySummaryNotif = *p.WeeklySummaryNotif
	}
	if p.CommunityUpdatesNotif != nil {
		base.CommunityUpdatesNotif = *p.CommunityUpdatesNotif
	}
	if p.ImportantNewsNotif != nil {
		base.ImportantNewsNotif = *p.ImportantNewsNotif
	}
	return base
}

// Article is a published news article as served by the backend, joined with
// the bilingual names of its category.
type Article struct {
	ID             uuid.UUID
	CategoryID     uuid.UUID
	TitleFR        string
	TitleHT        string
	ContentFR      string
	ContentHT      string
	SummaryFR      string
	SummaryHT      string
	ImageURL       *string // nullable
	MediaType      string
	MediaURL       *string // nullable
	IsFeatured     bool
	PublishedAt    time.Time
	CategoryNameFR string
	CategoryNameHT string
}

// OfflineArticle is an article cached on the device for offline reading.
// SavedAt is local-only: it is stamped on every (re-)save and drives
// retention and recency ordering. Category names are captured at save time
// so the article stays displayable if the category record goes away.
type OfflineArticle struct {
	Article
	SavedAt time.Time
}

// NewOfflineArticle builds the cached projection of a, saved at savedAt.
func NewOfflineArticle(a Article, savedAt time.Time) OfflineArticle {
	return OfflineArticle{Article: a, SavedAt: savedAt}
}
