package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/mediacatalog/internal/domain"
	"github.com/vbonduro/mediacatalog/internal/store"
)

func newTestHeroAggregator(t *testing.T) (*HeroAggregator, *store.HeroStore) {
	t.Helper()
	heroes := store.NewHeroStore(openTestDB(t))
	return NewHeroAggregator(heroes, testLogger()), heroes
}

func sampleDocument() *domain.HeroDocument {
	return &domain.HeroDocument{
		Name:       "Home",
		Background: &domain.HeroBackground{Type: "video", Value: "/hero/bg.mp4", Overlay: true, OverlayOpacity: 0.5},
		Carousel: &domain.HeroCarousel{
			Enabled: true, Autoplay: false, IntervalSeconds: 4, ShowControls: true, ShowIndicators: true, Effect: "fade",
			Images: []domain.HeroCarouselImage{
				{Token: "keep-me", URL: "/hero/1.jpg", Type: domain.MediaTypeImage},
				{URL: "/hero/2.jpg"},
			},
		},
		Texts: []domain.HeroText{
			{Type: "title", Content: "Third", CustomStyle: domain.CustomStyle{"color": "#fff"}},
			{Type: "subtitle", Content: "First"},
			{Type: "body", Content: "Second"},
		},
		Buttons: []domain.HeroButton{
			{Text: "Zeta", URL: "/z"},
			{Text: "Alpha", URL: "/a"},
		},
	}
}

func TestHeroAggregatorGetCompleteNone(t *testing.T) {
	agg, _ := newTestHeroAggregator(t)
	doc, err := agg.GetComplete(context.Background())
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestHeroAggregatorSaveThenGetPreservesOrder(t *testing.T) {
	agg, _ := newTestHeroAggregator(t)
	ctx := context.Background()

	heroID, err := agg.SaveComplete(ctx, sampleDocument())
	require.NoError(t, err)
	assert.NotZero(t, heroID)

	doc, err := agg.GetComplete(ctx)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, heroID, doc.ID)
	assert.Equal(t, "Home", doc.Name)

	require.Len(t, doc.Texts, 3)
	assert.Equal(t, []string{"Third", "First", "Second"},
		[]string{doc.Texts[0].Content, doc.Texts[1].Content, doc.Texts[2].Content})
	assert.Equal(t, "#fff", doc.Texts[0].CustomStyle["color"])
	assert.Nil(t, doc.Texts[1].CustomStyle)

	require.Len(t, doc.Buttons, 2)
	assert.Equal(t, "Zeta", doc.Buttons[0].Text)
	assert.Equal(t, "Alpha", doc.Buttons[1].Text)

	require.NotNil(t, doc.Background)
	assert.Equal(t, "/hero/bg.mp4", doc.Background.Value)

	require.NotNil(t, doc.Carousel)
	assert.Equal(t, 4, doc.Carousel.IntervalSeconds)
	require.Len(t, doc.Carousel.Images, 2)
	assert.Equal(t, "keep-me", doc.Carousel.Images[0].Token)
	assert.NotEmpty(t, doc.Carousel.Images[1].Token)
	assert.Equal(t, domain.MediaTypeImage, doc.Carousel.Images[1].Type)
}

func TestHeroAggregatorSaveReusesActiveHero(t *testing.T) {
	agg, _ := newTestHeroAggregator(t)
	ctx := context.Background()

	first, err := agg.SaveComplete(ctx, sampleDocument())
	require.NoError(t, err)

	doc := sampleDocument()
	doc.Name = "Renamed"
	doc.Carousel = nil
	doc.Texts = doc.Texts[:1]
	second, err := agg.SaveComplete(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := agg.GetComplete(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Nil(t, got.Carousel)
	assert.Len(t, got.Texts, 1)
}

func TestHeroAggregatorOnlyFirstBackgroundExposed(t *testing.T) {
	agg, heroes := newTestHeroAggregator(t)
	ctx := context.Background()

	id, err := heroes.Create(ctx, "Home")
	require.NoError(t, err)
	require.NoError(t, heroes.ReplaceChildren(ctx, id, "Home", store.HeroChildren{
		Backgrounds: []domain.HeroBackground{
			{Type: "color", Value: "#000", SortOrder: 1},
			{Type: "image", Value: "/hero/first.jpg", SortOrder: 0},
		},
	}))

	doc, err := agg.GetComplete(ctx)
	require.NoError(t, err)
	require.NotNil(t, doc.Background)
	assert.Equal(t, "/hero/first.jpg", doc.Background.Value)
	assert.Equal(t, []domain.HeroText{}, doc.Texts)
	assert.Equal(t, []domain.HeroButton{}, doc.Buttons)
}

func TestHeroAggregatorBadCustomStyleDegradesField(t *testing.T) {
	agg, heroes := newTestHeroAggregator(t)
	ctx := context.Background()

	broken := `{"color":`
	id, err := heroes.Create(ctx, "Home")
	require.NoError(t, err)
	require.NoError(t, heroes.ReplaceChildren(ctx, id, "Home", store.HeroChildren{
		Texts: []store.HeroText{
			{HeroText: domain.HeroText{Content: "broken", SortOrder: 0}, RawCustomStyle: &broken},
			{HeroText: domain.HeroText{Content: "fine", SortOrder: 1}},
		},
	}))

	doc, err := agg.GetComplete(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Texts, 2)
	assert.Equal(t, "broken", doc.Texts[0].Content)
	assert.Nil(t, doc.Texts[0].CustomStyle)
	assert.Equal(t, "fine", doc.Texts[1].Content)
}

func TestHeroAggregatorSaveNil(t *testing.T) {
	agg, _ := newTestHeroAggregator(t)
	_, err := agg.SaveComplete(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHeroAggregatorDelete(t *testing.T) {
	agg, _ := newTestHeroAggregator(t)
	ctx := context.Background()

	id, err := agg.SaveComplete(ctx, sampleDocument())
	require.NoError(t, err)
	require.NoError(t, agg.Delete(ctx, id))

	doc, err := agg.GetComplete(ctx)
	require.NoError(t, err)
	assert.Nil(t, doc)

	assert.ErrorIs(t, agg.Delete(ctx, id), domain.ErrNotFound)
}
