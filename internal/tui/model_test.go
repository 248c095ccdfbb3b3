package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/steviee/go-bstats/internal/brawlstars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockSource is a mock implementation of Source
type mockSource struct {
	mock.Mock
}

func (m *mockSource) GetEventRotation(ctx context.Context, opts ...brawlstars.CallOption) ([]brawlstars.Rotation, error) {
	args := m.Called(ctx, len(opts))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]brawlstars.Rotation), args.Error(1)
}

func (m *mockSource) GetLeaderboard(ctx context.Context, opts brawlstars.LeaderboardOptions) ([]brawlstars.LeaderboardEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]brawlstars.LeaderboardEntry), args.Error(1)
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func testRotation() []brawlstars.Rotation {
	return []brawlstars.Rotation{
		{
			StartTime: brawlstars.Timestamp{Time: baseTime.Add(-12 * time.Hour)},
			EndTime:   brawlstars.Timestamp{Time: baseTime.Add(12 * time.Hour)},
			SlotID:    1,
			Event:     brawlstars.Event{ID: 1, Mode: "brawlBall", Map: "Backyard Bowl"},
		},
		{
			StartTime: brawlstars.Timestamp{Time: baseTime.Add(-time.Hour)},
			EndTime:   brawlstars.Timestamp{Time: baseTime.Add(3 * time.Hour)},
			SlotID:    2,
			Event:     brawlstars.Event{ID: 2, Mode: "gemGrab", Map: "Hard Rock Mine"},
		},
	}
}

func testLeaders() []brawlstars.LeaderboardEntry {
	return []brawlstars.LeaderboardEntry{
		{Tag: "#AAA", Name: "First", Trophies: 100000, Rank: 1, Club: &brawlstars.ProfileClub{Name: "Best"}},
		{Tag: "#BBB", Name: "Second", Trophies: 99000, Rank: 2},
		{Tag: "#CCC", Name: "Third", Trophies: 98000, Rank: 3},
	}
}

func TestNewModel_Defaults(t *testing.T) {
	model := NewModel(context.Background(), &mockSource{}, Options{})

	assert.Equal(t, 5*time.Minute, model.opts.RefreshInterval)
	assert.Equal(t, "global", model.opts.Region)
	assert.Equal(t, 10, model.opts.Limit)
	assert.True(t, model.loading)
	assert.Equal(t, viewRotation, model.view)
}

func TestModelInit(t *testing.T) {
	model := NewModel(context.Background(), &mockSource{}, Options{})

	assert.NotNil(t, model.Init())
}

func TestLoadDashboard(t *testing.T) {
	source := &mockSource{}
	source.On("GetEventRotation", mock.Anything, 0).Return(testRotation(), nil)
	source.On("GetLeaderboard", mock.Anything, brawlstars.LeaderboardOptions{
		Mode: "players", Region: "de", Limit: 3,
	}).Return(testLeaders(), nil)

	rotation, leaders, err := loadDashboard(context.Background(), source, Options{Region: "de", Limit: 3}, false)

	require.NoError(t, err)
	require.Len(t, rotation, 2)
	assert.Equal(t, 2, rotation[0].SlotID, "soonest ending slot first")
	assert.Len(t, leaders, 3)
	source.AssertExpectations(t)
}

func TestLoadDashboard_ForceBypassesCache(t *testing.T) {
	source := &mockSource{}
	source.On("GetEventRotation", mock.Anything, 1).Return(testRotation(), nil)
	source.On("GetLeaderboard", mock.Anything, mock.MatchedBy(func(o brawlstars.LeaderboardOptions) bool {
		return o.NoCache
	})).Return(testLeaders(), nil)

	_, _, err := loadDashboard(context.Background(), source, Options{Region: "global", Limit: 3}, true)

	require.NoError(t, err)
	source.AssertExpectations(t)
}

func TestLoadDashboard_Error(t *testing.T) {
	source := &mockSource{}
	source.On("GetEventRotation", mock.Anything, 0).Return(nil, brawlstars.ErrServiceUnavailable)
	source.On("GetLeaderboard", mock.Anything, mock.Anything).Return(testLeaders(), nil).Maybe()

	rotation, leaders, err := loadDashboard(context.Background(), source, Options{Region: "global", Limit: 3}, false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, brawlstars.ErrServiceUnavailable))
	assert.Contains(t, err.Error(), "event rotation")
	assert.Nil(t, rotation)
	assert.Nil(t, leaders)
}

func TestLoadDashboardCmd(t *testing.T) {
	source := &mockSource{}
	source.On("GetEventRotation", mock.Anything, 0).Return(testRotation(), nil)
	source.On("GetLeaderboard", mock.Anything, mock.Anything).Return(testLeaders(), nil)

	msg := loadDashboardCmd(context.Background(), source, Options{Region: "global", Limit: 3}, false)()

	loaded, ok := msg.(dashboardLoadedMsg)
	require.True(t, ok)
	assert.NoError(t, loaded.err)
	assert.Len(t, loaded.rotation, 2)
	assert.Len(t, loaded.leaders, 3)
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "▁▁▁", renderSparkline(nil, 3))
	assert.Equal(t, "▁█", renderSparkline([]float64{1, 2}, 2))
	assert.Equal(t, "▁▁█", renderSparkline([]float64{1, 2}, 3), "short input is padded")
	assert.Equal(t, "▁█", renderSparkline([]float64{9, 1, 2}, 2), "keeps the last values")
	assert.Equal(t, "▁▁", renderSparkline([]float64{5, 5}, 2))
}

func TestRenderProgressBar(t *testing.T) {
	assert.Equal(t, "██░░", renderProgressBar(0.5, 4))
	assert.Equal(t, "████", renderProgressBar(2, 4))
	assert.Equal(t, "░░░░", renderProgressBar(-1, 4))
}
