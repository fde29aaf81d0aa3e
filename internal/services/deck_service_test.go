package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/services"
	"github.com/vytor/lexiflash/internal/testutil/mocks"
)

func TestListDecks(t *testing.T) {
	t.Run("empty catalog is an empty list", func(t *testing.T) {
		catalog := new(mocks.MockCatalogRepository)
		catalog.On("ListDecks", mock.Anything).Return(nil, nil)

		decks, err := services.NewDeckService(catalog).ListDecks(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, decks)
		assert.Empty(t, decks)
	})

	t.Run("store failure", func(t *testing.T) {
		catalog := new(mocks.MockCatalogRepository)
		catalog.On("ListDecks", mock.Anything).Return(nil, errDown)

		_, err := services.NewDeckService(catalog).ListDecks(context.Background())
		assert.True(t, errors.HasCode(err, errors.ErrCodeUnavailable))
	})
}

func TestGetDeck(t *testing.T) {
	catalog := new(mocks.MockCatalogRepository)
	catalog.On("Deck", mock.Anything, int64(1)).Return(&models.Deck{ID: 1, Name: "Spanish"}, nil)
	catalog.On("Deck", mock.Anything, int64(2)).Return(nil, nil)
	svc := services.NewDeckService(catalog)

	deck, err := svc.GetDeck(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Spanish", deck.Name)

	_, err = svc.GetDeck(context.Background(), 2)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	_, err = svc.GetDeck(context.Background(), 0)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	catalog.AssertNumberOfCalls(t, "Deck", 2)
}

func TestImportDeck(t *testing.T) {
	words := []models.Vocabulary{
		{Term: "hola", Translation: "hello"},
		{Term: "gato", Translation: "cat"},
	}

	t.Run("creates deck then membership", func(t *testing.T) {
		catalog := new(mocks.MockCatalogRepository)
		catalog.On("CreateDeck", mock.Anything, models.Deck{Name: "Spanish"}).Return(int64(9), nil)
		catalog.On("AddVocabulary", mock.Anything, int64(9), words).Return([]int64{1, 2}, nil)

		id, err := services.NewImportService(catalog).ImportDeck(context.Background(), models.Deck{Name: "  Spanish "}, words)
		require.NoError(t, err)
		assert.Equal(t, int64(9), id)
		catalog.AssertExpectations(t)
	})

	t.Run("requires a name and words", func(t *testing.T) {
		catalog := new(mocks.MockCatalogRepository)
		svc := services.NewImportService(catalog)

		_, err := svc.ImportDeck(context.Background(), models.Deck{Name: " "}, words)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
		_, err = svc.ImportDeck(context.Background(), models.Deck{Name: "Spanish"}, nil)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
		catalog.AssertNotCalled(t, "CreateDeck", mock.Anything, mock.Anything)
	})

	t.Run("membership failure keeps the deck id", func(t *testing.T) {
		catalog := new(mocks.MockCatalogRepository)
		catalog.On("CreateDeck", mock.Anything, mock.Anything).Return(int64(4), nil)
		catalog.On("AddVocabulary", mock.Anything, int64(4), words).Return(nil, errDown)

		id, err := services.NewImportService(catalog).ImportDeck(context.Background(), models.Deck{Name: "Spanish"}, words)
		assert.Equal(t, int64(4), id)
		assert.True(t, errors.HasCode(err, errors.ErrCodeUnavailable))
	})
}

func TestAppendWords(t *testing.T) {
	words := []models.Vocabulary{{Term: "perro", Translation: "dog"}}
	catalog := new(mocks.MockCatalogRepository)
	catalog.On("Deck", mock.Anything, int64(1)).Return(&models.Deck{ID: 1}, nil)
	catalog.On("Deck", mock.Anything, int64(5)).Return(nil, nil)
	catalog.On("AddVocabulary", mock.Anything, int64(1), words).Return([]int64{3}, nil)
	svc := services.NewImportService(catalog)

	n, err := svc.AppendWords(context.Background(), 1, words)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.AppendWords(context.Background(), 5, words)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	_, err = svc.AppendWords(context.Background(), -1, words)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}
