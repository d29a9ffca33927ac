package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/citoyen-eclaire/appcore/internal/errs"
	"github.com/citoyen-eclaire/appcore/internal/model"
)

// PutPreferences upserts the local mirror of user preferences. Booleans
// are persisted as 0/1; translating them back is GetPreferences' job, not
// the caller's.
func (s *Store) PutPreferences(ctx context.Context, p model.UserPreferences) error {
	const q = `
INSERT OR REPLACE INTO user_preferences (
  id, dark_mode, dark_mode_auto, notifications_enabled, notification_sound,
  auto_download, text_size, new_articles_notif, read_reminders_notif,
  weekly_summary_notif, community_updates_notif, important_news_notif, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		p.ID.String(),
		boolToInt(p.DarkMode), boolToInt(p.DarkModeAuto),
		boolToInt(p.NotificationsEnabled), boolToInt(p.NotificationSound),
		boolToInt(p.AutoDownload), p.TextSize,
		boolToInt(p.NewArticlesNotif), boolToInt(p.ReadRemindersNotif),
		boolToInt(p.WeeklySummaryNotif), boolToInt(p.CommunityUpdatesNotif),
		boolToInt(p.ImportantNewsNotif), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put preferences: %w", err)
	}
	return nil
}

// GetPreferences returns the mirrored preferences, or errs.ErrNotFound
// when the row is absent. CreatedAt mirrors UpdatedAt (no local column).
func (s *Store) GetPreferences(ctx context.Context, id uuid.UUID) (*model.UserPreferences, error) {
	const q = `
SELECT dark_mode, dark_mode_auto, notifications_enabled, notification_sound,
       auto_download, text_size, new_articles_notif, read_reminders_notif,
       weekly_summary_notif, community_updates_notif, important_news_notif, updated_at
FROM user_preferences WHERE id = ?`
	var p model.UserPreferences
	var updatedAt string
	var darkMode, darkModeAuto, notifEnabled, notifSound, autoDownload int
	var newArticles, readReminders, weeklySummary, community, important int
	row := s.db.QueryRowContext(ctx, q, id.String())
	err := row.Scan(
		&darkMode, &darkModeAuto, &notifEnabled, &notifSound,
		&autoDownload, &p.TextSize, &newArticles, &readReminders,
		&weeklySummary, &community, &important, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	ts, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get preferences: bad updated_at: %w", err)
	}
	p.ID = id
	p.DarkMode = darkMode != 0
	p.DarkModeAuto = darkModeAuto != 0
	p.NotificationsEnabled = notifEnabled != 0
	p.NotificationSound = notifSound != 0
	p.AutoDownload = autoDownload != 0
	p.NewArticlesNotif = newArticles != 0
	p.ReadRemindersNotif = readReminders != 0
	p.WeeklySummaryNotif = weeklySummary != 0
	p.CommunityUpdatesNotif = community != 0
	p.ImportantNewsNotif = important != 0
	p.CreatedAt = ts
	p.UpdatedAt = ts
	return &p, nil
}
