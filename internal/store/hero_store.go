package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vbonduro/mediacatalog/internal/domain"
)

// HeroText is a text row as stored, with custom_style still in its serialized
// form. Decoding is left to the caller so a bad value degrades one field only.
type HeroText struct {
	domain.HeroText
	RawCustomStyle *string
}

// HeroChildren is the full set of child rows owned by one hero.
type HeroChildren struct {
	Backgrounds []domain.HeroBackground
	Carousel    *domain.HeroCarousel
	Texts       []HeroText
	Buttons     []domain.HeroButton
}

// HeroStore holds the parent row and the child-table operations of the hero
// aggregate.
type HeroStore struct {
	db *sql.DB
	q  querier
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func NewHeroStore(db *sql.DB) *HeroStore {
	return &HeroStore{db: db, q: db}
}

// Snapshot calls fn with a HeroStore whose reads all run in one transaction,
// so they observe a single committed state even while a save is in flight.
// The transaction is always rolled back; fn must only read.
func (s *HeroStore) Snapshot(ctx context.Context, fn func(*HeroStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer func() {
		if rerr := tx.Rollback(); rerr != nil && rerr != sql.ErrTxDone {
			slog.Error("failed to end hero read transaction", "error", rerr)
		}
	}()
	return fn(&HeroStore{db: s.db, q: tx})
}

// GetActive returns the most recently updated active hero, or nil when none
// is active.
func (s *HeroStore) GetActive(ctx context.Context) (*domain.HeroContent, error) {
	return getActiveHero(ctx, s.q)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getActiveHero(ctx context.Context, q queryRower) (*domain.HeroContent, error) {
	h := &domain.HeroContent{}
	err := q.QueryRowContext(ctx, `
		SELECT id, name, is_active, created_at, updated_at FROM hero_contents
		WHERE is_active = 1 ORDER BY updated_at DESC, id DESC LIMIT 1
	`).Scan(&h.ID, &h.Name, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active hero: %w", err)
	}

	return h, nil
}

// Create inserts a new active hero row.
func (s *HeroStore) Create(ctx context.Context, name string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO hero_contents (name, is_active) VALUES (?, 1)
	`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to create hero: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// Delete removes a hero; its children go with it through ON DELETE CASCADE.
func (s *HeroStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM hero_contents WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hero: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: hero %d", domain.ErrNotFound, id)
	}

	return nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Error("failed to close rows", "error", err)
	}
}

func (s *HeroStore) ListBackgrounds(ctx context.Context, heroID int64) ([]domain.HeroBackground, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT type, value, overlay, overlay_opacity, sort_order FROM hero_backgrounds
		WHERE hero_id = ? ORDER BY sort_order ASC, id ASC
	`, heroID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hero backgrounds: %w", err)
	}
	defer closeRows(rows)

	var out []domain.HeroBackground
	for rows.Next() {
		var b domain.HeroBackground
		if err := rows.Scan(&b.Type, &b.Value, &b.Overlay, &b.OverlayOpacity, &b.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan hero background: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hero backgrounds: %w", err)
	}
	return out, nil
}

// GetCarousel returns the carousel settings without images, or nil when the
// hero has no carousel.
func (s *HeroStore) GetCarousel(ctx context.Context, heroID int64) (*domain.HeroCarousel, error) {
	c := &domain.HeroCarousel{}
	err := s.q.QueryRowContext(ctx, `
		SELECT enabled, autoplay, interval_seconds, show_controls, show_indicators, effect
		FROM hero_carousels WHERE hero_id = ?
	`, heroID).Scan(&c.Enabled, &c.Autoplay, &c.IntervalSeconds, &c.ShowControls, &c.ShowIndicators, &c.Effect)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hero carousel: %w", err)
	}
	return c, nil
}

func (s *HeroStore) ListCarouselImages(ctx context.Context, heroID int64) ([]domain.HeroCarouselImage, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT i.token, i.url, i.type, i.alt_text, i.overlay, i.overlay_opacity, i.sort_order
		FROM hero_carousel_images i
		JOIN hero_carousels c ON c.id = i.carousel_id
		WHERE c.hero_id = ? ORDER BY i.sort_order ASC, i.id ASC
	`, heroID)
	if err != nil {
		return nil, fmt.Errorf("failed to list carousel images: %w", err)
	}
	defer closeRows(rows)

	out := []domain.HeroCarouselImage{}
	for rows.Next() {
		var (
			img       domain.HeroCarouselImage
			mediaType string
		)
		if err := rows.Scan(&img.Token, &img.URL, &mediaType, &img.AltText, &img.Overlay, &img.OverlayOpacity, &img.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan carousel image: %w", err)
		}
		img.Type = domain.MediaType(mediaType)
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating carousel images: %w", err)
	}
	return out, nil
}

func (s *HeroStore) ListTexts(ctx context.Context, heroID int64) ([]HeroText, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT type, content, position_x, position_y, alignment, custom_style,
			animation, animation_delay, animation_duration, sort_order
		FROM hero_texts WHERE hero_id = ? ORDER BY sort_order ASC, id ASC
	`, heroID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hero texts: %w", err)
	}
	defer closeRows(rows)

	out := []HeroText{}
	for rows.Next() {
		var t HeroText
		if err := rows.Scan(&t.Type, &t.Content, &t.PositionX, &t.PositionY, &t.Alignment, &t.RawCustomStyle,
			&t.Animation, &t.AnimationDelay, &t.AnimationDuration, &t.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan hero text: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hero texts: %w", err)
	}
	return out, nil
}

func (s *HeroStore) ListButtons(ctx context.Context, heroID int64) ([]domain.HeroButton, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT text, url, variant, size, icon, icon_position, custom_class,
			animation, animation_delay, sort_order
		FROM hero_buttons WHERE hero_id = ? ORDER BY sort_order ASC, id ASC
	`, heroID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hero buttons: %w", err)
	}
	defer closeRows(rows)

	out := []domain.HeroButton{}
	for rows.Next() {
		var b domain.HeroButton
		if err := rows.Scan(&b.Text, &b.URL, &b.Variant, &b.Size, &b.Icon, &b.IconPosition, &b.CustomClass,
			&b.Animation, &b.AnimationDelay, &b.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan hero button: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hero buttons: %w", err)
	}
	return out, nil
}

// ReplaceChildren deletes every child row of heroID and inserts children in
// their place, all in one transaction. Rows are written with the SortOrder the
// caller assigned.
func (s *HeroStore) ReplaceChildren(ctx context.Context, heroID int64, name string, children HeroChildren) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				slog.Error("failed to roll back hero save", "hero_id", heroID, "error", rerr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		UPDATE hero_contents SET name = ?, updated_at = datetime('now') WHERE id = ?
	`, name, heroID); err != nil {
		return fmt.Errorf("failed to update hero: %w", err)
	}

	for _, table := range []string{"hero_backgrounds", "hero_carousels", "hero_texts", "hero_buttons"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE hero_id = ?`, heroID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, b := range children.Backgrounds {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO hero_backgrounds (hero_id, type, value, overlay, overlay_opacity, sort_order)
			VALUES (?, ?, ?, ?, ?, ?)
		`, heroID, b.Type, b.Value, b.Overlay, b.OverlayOpacity, b.SortOrder); err != nil {
			return fmt.Errorf("failed to insert hero background: %w", err)
		}
	}

	if c := children.Carousel; c != nil {
		var result sql.Result
		result, err = tx.ExecContext(ctx, `
			INSERT INTO hero_carousels (hero_id, enabled, autoplay, interval_seconds, show_controls, show_indicators, effect)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, heroID, c.Enabled, c.Autoplay, c.IntervalSeconds, c.ShowControls, c.ShowIndicators, c.Effect)
		if err != nil {
			return fmt.Errorf("failed to insert hero carousel: %w", err)
		}
		var carouselID int64
		if carouselID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get carousel id: %w", err)
		}
		for _, img := range c.Images {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO hero_carousel_images (carousel_id, token, url, type, alt_text, overlay, overlay_opacity, sort_order)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, carouselID, img.Token, img.URL, string(img.Type), img.AltText, img.Overlay, img.OverlayOpacity, img.SortOrder); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: duplicate carousel image id %q", domain.ErrValidation, img.Token)
				}
				return fmt.Errorf("failed to insert carousel image: %w", err)
			}
		}
	}

	for _, t := range children.Texts {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO hero_texts (hero_id, type, content, position_x, position_y, alignment, custom_style,
				animation, animation_delay, animation_duration, sort_order)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, heroID, t.Type, t.Content, t.PositionX, t.PositionY, t.Alignment, t.RawCustomStyle,
			t.Animation, t.AnimationDelay, t.AnimationDuration, t.SortOrder); err != nil {
			return fmt.Errorf("failed to insert hero text: %w", err)
		}
	}

	for _, b := range children.Buttons {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO hero_buttons (hero_id, text, url, variant, size, icon, icon_position, custom_class,
				animation, animation_delay, sort_order)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, heroID, b.Text, b.URL, b.Variant, b.Size, b.Icon, b.IconPosition, b.CustomClass,
			b.Animation, b.AnimationDelay, b.SortOrder); err != nil {
			return fmt.Errorf("failed to insert hero button: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit hero save: %w", err)
	}
	return nil
}

// AppendCarouselImage adds an image at the end of the active hero's carousel,
// creating a default carousel if the hero has none. It returns the new
// image's token, or domain.ErrNotFound when no hero is active.
func (s *HeroStore) AppendCarouselImage(ctx context.Context, url string, mediaType domain.MediaType, altText string) (token string, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	hero, err := getActiveHero(ctx, tx)
	if err != nil {
		return "", err
	}
	if hero == nil {
		err = fmt.Errorf("%w: no active hero", domain.ErrNotFound)
		return "", err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO hero_carousels (hero_id) VALUES (?) ON CONFLICT(hero_id) DO NOTHING
	`, hero.ID); err != nil {
		return "", fmt.Errorf("failed to ensure hero carousel: %w", err)
	}

	var carouselID, nextOrder int64
	if err = tx.QueryRowContext(ctx, `
		SELECT c.id, COALESCE(MAX(i.sort_order) + 1, 0)
		FROM hero_carousels c LEFT JOIN hero_carousel_images i ON i.carousel_id = c.id
		WHERE c.hero_id = ? GROUP BY c.id
	`, hero.ID).Scan(&carouselID, &nextOrder); err != nil {
		return "", fmt.Errorf("failed to locate hero carousel: %w", err)
	}

	token = uuid.NewString()
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO hero_carousel_images (carousel_id, token, url, type, alt_text, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)
	`, carouselID, token, url, string(mediaType), altText, nextOrder); err != nil {
		return "", fmt.Errorf("failed to insert carousel image: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit carousel image: %w", err)
	}
	return token, nil
}

func (s *HeroStore) DeleteCarouselImageByToken(ctx context.Context, token string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM hero_carousel_images WHERE token = ?
	`, token)
	if err != nil {
		return fmt.Errorf("failed to delete carousel image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: carousel image %s", domain.ErrNotFound, token)
	}

	return nil
}
