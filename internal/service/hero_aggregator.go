package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vbonduro/mediacatalog/internal/domain"
	"github.com/vbonduro/mediacatalog/internal/store"
)

// heroRepository is the subset of store.HeroStore that HeroAggregator requires.
type heroRepository interface {
	GetActive(ctx context.Context) (*domain.HeroContent, error)
	Create(ctx context.Context, name string) (int64, error)
	Delete(ctx context.Context, id int64) error
	Snapshot(ctx context.Context, fn func(*store.HeroStore) error) error
	ReplaceChildren(ctx context.Context, heroID int64, name string, children store.HeroChildren) error
}

// HeroAggregator reads and writes the hero block as one nested document.
type HeroAggregator struct {
	heroes heroRepository
	logger *slog.Logger
}

func NewHeroAggregator(heroes heroRepository, logger *slog.Logger) *HeroAggregator {
	return &HeroAggregator{heroes: heroes, logger: logger}
}

// GetComplete assembles the active hero, or returns nil when none is active.
// Only the first background is exposed.
func (a *HeroAggregator) GetComplete(ctx context.Context) (*domain.HeroDocument, error) {
	var (
		hero        *domain.HeroContent
		backgrounds []domain.HeroBackground
		carousel    *domain.HeroCarousel
		images      []domain.HeroCarouselImage
		texts       []store.HeroText
		buttons     []domain.HeroButton
	)

	err := a.heroes.Snapshot(ctx, func(tx *store.HeroStore) (err error) {
		hero, err = tx.GetActive(ctx)
		if err != nil || hero == nil {
			return err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			backgrounds, err = tx.ListBackgrounds(gctx, hero.ID)
			return err
		})
		g.Go(func() (err error) {
			carousel, err = tx.GetCarousel(gctx, hero.ID)
			return err
		})
		g.Go(func() (err error) {
			images, err = tx.ListCarouselImages(gctx, hero.ID)
			return err
		})
		g.Go(func() (err error) {
			texts, err = tx.ListTexts(gctx, hero.ID)
			return err
		})
		g.Go(func() (err error) {
			buttons, err = tx.ListButtons(gctx, hero.ID)
			return err
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("failed to load hero %d: %w", hero.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hero == nil {
		return nil, nil
	}

	doc := &domain.HeroDocument{
		ID:      hero.ID,
		Name:    hero.Name,
		Texts:   make([]domain.HeroText, 0, len(texts)),
		Buttons: buttons,
	}
	if doc.Buttons == nil {
		doc.Buttons = []domain.HeroButton{}
	}
	if len(backgrounds) > 0 {
		doc.Background = &backgrounds[0]
	}
	if carousel != nil {
		carousel.Images = images
		if carousel.Images == nil {
			carousel.Images = []domain.HeroCarouselImage{}
		}
		doc.Carousel = carousel
	}

	for _, t := range texts {
		text := t.HeroText
		style, err := domain.ParseCustomStyle(t.RawCustomStyle)
		if err != nil {
			a.logger.Warn("ignoring unreadable custom_style", "hero_id", hero.ID, "text_index", len(doc.Texts), "error", err)
			style = nil
		}
		text.CustomStyle = style
		doc.Texts = append(doc.Texts, text)
	}

	return doc, nil
}

// SaveComplete replaces every child of the active hero with the contents of
// doc, creating an active hero first if there is none. Submission order
// becomes sort order. Carousel images keep their id; new ones get one.
func (a *HeroAggregator) SaveComplete(ctx context.Context, doc *domain.HeroDocument) (int64, error) {
	if doc == nil {
		return 0, fmt.Errorf("%w: hero document is required", domain.ErrValidation)
	}

	children, err := childrenFromDocument(doc)
	if err != nil {
		return 0, err
	}

	hero, err := a.heroes.GetActive(ctx)
	if err != nil {
		return 0, err
	}

	var heroID int64
	if hero != nil {
		heroID = hero.ID
	} else {
		heroID, err = a.heroes.Create(ctx, doc.Name)
		if err != nil {
			return 0, err
		}
		a.logger.Info("hero created", "hero_id", heroID)
	}

	if err := a.heroes.ReplaceChildren(ctx, heroID, doc.Name, children); err != nil {
		return 0, err
	}

	a.logger.Info("hero saved", "hero_id", heroID, "texts", len(children.Texts), "buttons", len(children.Buttons))
	return heroID, nil
}

func (a *HeroAggregator) Delete(ctx context.Context, id int64) error {
	if err := a.heroes.Delete(ctx, id); err != nil {
		return err
	}
	a.logger.Info("hero deleted", "hero_id", id)
	return nil
}

func childrenFromDocument(doc *domain.HeroDocument) (store.HeroChildren, error) {
	var children store.HeroChildren

	if doc.Background != nil {
		bg := *doc.Background
		bg.SortOrder = 0
		children.Backgrounds = []domain.HeroBackground{bg}
	}

	if doc.Carousel != nil {
		c := *doc.Carousel
		c.Images = make([]domain.HeroCarouselImage, len(doc.Carousel.Images))
		for i, img := range doc.Carousel.Images {
			if img.Token == "" {
				img.Token = uuid.NewString()
			}
			if img.Type == "" {
				img.Type = domain.MediaTypeImage
			}
			img.SortOrder = i
			c.Images[i] = img
		}
		children.Carousel = &c
	}

	children.Texts = make([]store.HeroText, len(doc.Texts))
	for i, t := range doc.Texts {
		raw, err := domain.SerializeCustomStyle(t.CustomStyle)
		if err != nil {
			return store.HeroChildren{}, fmt.Errorf("%w: text %d has an invalid custom_style: %v", domain.ErrValidation, i, err)
		}
		t.SortOrder = i
		t.CustomStyle = nil
		children.Texts[i] = store.HeroText{HeroText: t, RawCustomStyle: raw}
	}

	children.Buttons = make([]domain.HeroButton, len(doc.Buttons))
	for i, b := range doc.Buttons {
		b.SortOrder = i
		children.Buttons[i] = b
	}

	return children, nil
}
