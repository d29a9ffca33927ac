package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/citoyen-eclaire/appcore/internal/errs"
	"github.com/citoyen-eclaire/appcore/internal/model"
)

const preferencesColumns = `id, dark_mode, dark_mode_auto, notifications_enabled, notification_sound,
auto_download, text_size, new_articles_notif, read_reminders_notif,
weekly_summary_notif, community_updates_notif, important_news_notif, created_at, updated_at`

// PreferencesRepo implements remote.PreferencesGateway against user_preferences.
type PreferencesRepo struct{ db *DB }

// NewPreferencesRepo constructs a preferences gateway.
func NewPreferencesRepo(db *DB) *PreferencesRepo { return &PreferencesRepo{db: db} }

// FetchByID loads the preferences row; errs.ErrNotFound when absent.
func (r *PreferencesRepo) FetchByID(ctx context.Context, id uuid.UUID) (*model.UserPreferences, error) {
	q := `SELECT ` + preferencesColumns + ` FROM user_preferences WHERE id=$1`
	return scanPreferences(r.db.Pool.QueryRow(ctx, q, id))
}

// Insert creates the preferences row and returns it as stored.
func (r *PreferencesRepo) Insert(ctx context.Context, p model.UserPreferences) (*model.UserPreferences, error) {
	q := `
INSERT INTO user_preferences (
  id, dark_mode, dark_mode_auto, notifications_enabled, notification_sound,
  auto_download, text_size, new_articles_notif, read_reminders_notif,
  weekly_summary_notif, community_updates_notif, important_news_notif,
  created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
RETURNING ` + preferencesColumns
	row := r.db.Pool.QueryRow(ctx, q,
		p.ID, p.DarkMode, p.DarkModeAuto, p.NotificationsEnabled, p.NotificationSound,
		p.AutoDownload, p.TextSize, p.NewArticlesNotif, p.ReadRemindersNotif,
		p.WeeklySummaryNotif, p.CommunityUpdatesNotif, p.ImportantNewsNotif,
		p.CreatedAt, p.UpdatedAt)
	return scanPreferences(row)
}

// Update applies a partial update, bumps updated_at server-side, and
// returns the updated row. An empty patch degrades to a fetch.
func (r *PreferencesRepo) Update(ctx context.Context, id uuid.UUID, patch model.PreferencesPatch) (*model.UserPreferences, error) {
	if patch.IsZero() {
		return r.FetchByID(ctx, id)
	}
	set := make([]string, 0, 12)
	args := []any{id}
	add := func(column string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if patch.DarkMode != nil {
		add("dark_mode", *patch.DarkMode)
	}
	if patch.DarkModeAuto != nil {
		add("dark_mode_auto", *patch.DarkModeAuto)
	}
	if patch.NotificationsEnabled != nil {
		add("notifications_enabled", *patch.NotificationsEnabled)
	}
	if patch.NotificationSound != nil {
		add("notification_sound", *patch.NotificationSound)
	}
	if patch.AutoDownload != nil {
		add("auto_download", *patch.AutoDownload)
	}
	if patch.TextSize != nil {
		add("text_size", *patch.TextSize)
	}
	if patch.NewArticlesNotif != nil {
		add("new_articles_notif", *patch.NewArticlesNotif)
	}
	if patch.ReadRemindersNotif != nil {
		add("read_reminders_notif", *patch.ReadRemindersNotif)
	}
	if patch.WeeklySummaryNotif != nil {
		add("weekly_summary_notif", *patch.WeeklySummaryNotif)
	}
	if patch.CommunityUpdatesNotif != nil {
		add("community_updates_notif", *patch.CommunityUpdatesNotif)
	}
	if patch.ImportantNewsNotif != nil {
		add("important_news_notif", *patch.ImportantNewsNotif)
	}
	set = append(set, "updated_at=now()")
	q := `UPDATE user_preferences SET ` + strings.Join(set, ", ") + ` WHERE id=$1 RETURNING ` + preferencesColumns
	return scanPreferences(r.db.Pool.QueryRow(ctx, q, args...))
}

func scanPreferences(row pgx.Row) (*model.UserPreferences, error) {
	var p model.UserPreferences
	err := row.Scan(
		&p.ID, &p.DarkMode, &p.DarkModeAuto, &p.NotificationsEnabled, &p.NotificationSound,
		&p.AutoDownload, &p.TextSize, &p.NewArticlesNotif, &p.ReadRemindersNotif,
		&p.WeeklySummaryNotif, &p.CommunityUpdatesNotif, &p.ImportantNewsNotif,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
