package subject

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, src Source, log LookupLog) *Service {
	t.Helper()
	svc := NewService(NewFetcher(src, nil), log, nil, Config{Concurrency: 2})
	svc.now = fixedNow
	return svc
}

func TestService_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("empty subject", func(t *testing.T) {
		src := new(mockSource)
		svc := newTestService(t, src, nil)

		_, err := svc.Lookup(ctx, "  ")
		assert.ErrorIs(t, err, ErrEmptySubject)
		src.AssertNotCalled(t, "GetSubject", mock.Anything, mock.Anything)
	})

	t.Run("records successful lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		log := NewMockLookupLog(ctrl)

		src := new(mockSource)
		src.On("GetSubject", ctx, "fiction").Return(map[string]any{
			"works": []any{titled("A"), titled("B")},
		}, nil)

		log.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e Entry) error {
			assert.NotEmpty(t, e.ID)
			assert.Equal(t, "fiction", e.Subject)
			assert.Equal(t, 2, e.TitleCount)
			assert.False(t, e.Degraded)
			assert.Empty(t, e.Error)
			assert.Equal(t, fixedNow(), e.RequestedAt)
			return nil
		})

		lookup, err := newTestService(t, src, log).Lookup(ctx, "fiction")
		require.NoError(t, err)
		assert.Equal(t, Lookup{
			Subject:   "fiction",
			Titles:    TitleList{"A", "B"},
			FetchedAt: fixedNow(),
		}, lookup)
	})

	t.Run("degraded lookup records cause", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		log := NewMockLookupLog(ctrl)

		src := new(mockSource)
		src.On("GetSubject", ctx, "fiction").Return(nil, errors.New("unexpected status code: 503"))

		log.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e Entry) error {
			assert.True(t, e.Degraded)
			assert.Equal(t, 0, e.TitleCount)
			assert.Equal(t, "unexpected status code: 503", e.Error)
			return nil
		})

		lookup, err := newTestService(t, src, log).Lookup(ctx, "fiction")
		require.NoError(t, err)
		assert.True(t, lookup.Degraded)
		assert.Equal(t, TitleList{}, lookup.Titles)
	})

	t.Run("lookup log failure is absorbed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		log := NewMockLookupLog(ctrl)

		src := new(mockSource)
		src.On("GetSubject", ctx, "fiction").Return(map[string]any{"works": []any{titled("A")}}, nil)
		log.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		lookup, err := newTestService(t, src, log).Lookup(ctx, "fiction")
		require.NoError(t, err)
		assert.Equal(t, TitleList{"A"}, lookup.Titles)
	})
}

func TestService_LookupMany(t *testing.T) {
	ctx := context.Background()
	src := new(mockSource)
	src.On("GetSubject", ctx, "fiction").Return(map[string]any{"works": []any{titled("F1"), titled("F2")}}, nil)
	src.On("GetSubject", ctx, "love").Return(nil, errors.New("timeout"))
	src.On("GetSubject", ctx, "history").Return(map[string]any{"works": []any{titled("H1")}}, nil)

	lookups := newTestService(t, src, nil).LookupMany(ctx, []Key{"fiction", "love", "", "history"})

	require.Len(t, lookups, 4)
	assert.Equal(t, Key("fiction"), lookups[0].Subject)
	assert.Equal(t, TitleList{"F1", "F2"}, lookups[0].Titles)
	assert.False(t, lookups[0].Degraded)

	assert.Equal(t, Key("love"), lookups[1].Subject)
	assert.True(t, lookups[1].Degraded)
	assert.Equal(t, TitleList{}, lookups[1].Titles)

	assert.True(t, lookups[2].Degraded)
	assert.Equal(t, TitleList{}, lookups[2].Titles)

	assert.Equal(t, TitleList{"H1"}, lookups[3].Titles)
	src.AssertNumberOfCalls(t, "GetSubject", 3)
}

func TestService_Recent(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		_, err := newTestService(t, new(mockSource), nil).Recent(ctx, 10)
		assert.ErrorIs(t, err, ErrLookupLogDisabled)
	})

	t.Run("delegates to log", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		log := NewMockLookupLog(ctrl)
		want := []Entry{{ID: "1", Subject: "fiction", TitleCount: 3}}
		log.EXPECT().Recent(gomock.Any(), 10).Return(want, nil)

		got, err := newTestService(t, new(mockSource), log).Recent(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestKey_Validate(t *testing.T) {
	assert.NoError(t, Key("fiction").Validate())
	assert.ErrorIs(t, Key("").Validate(), ErrEmptySubject)
	assert.ErrorIs(t, Key("\t ").Validate(), ErrEmptySubject)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, clampLimit(0))
	assert.Equal(t, 20, clampLimit(-5))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, maxRecentLimit, clampLimit(1000))
}
