package stats

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		values    []int
		wantAvg   float64
		wantCount int
		wantErr   error
	}{
		{
			name:      "empty input",
			values:    nil,
			wantAvg:   0,
			wantCount: 0,
		},
		{
			name:      "single value",
			values:    []int{3},
			wantAvg:   3,
			wantCount: 1,
		},
		{
			name:      "mixed values",
			values:    []int{5, 5, 4, 4, 3},
			wantAvg:   4.2,
			wantCount: 5,
		},
		{
			name:    "value above range",
			values:  []int{5, 6},
			wantErr: ErrValueOutOfRange,
		},
		{
			name:    "zero value",
			values:  []int{0, 3},
			wantErr: ErrValueOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aggregate(tt.values)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantAvg, got.Average, 1e-9)
			assert.Equal(t, tt.wantCount, got.Count)
		})
	}
}

func TestAggregate_SumProperty(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for range 200 {
		n := rnd.Intn(50)
		values := make([]int, n)
		sum := 0
		for i := range values {
			values[i] = MinValue + rnd.Intn(MaxValue)
			sum += values[i]
		}

		got, err := Aggregate(values)
		require.NoError(t, err)
		assert.Equal(t, n, got.Count)
		assert.InDelta(t, float64(sum), got.Sum(), 1e-9)
		if n == 0 {
			assert.Zero(t, got.Average)
		}
	}
}

func TestRoundTenth(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 4.449, want: 4.4},
		{in: 4.45, want: 4.5},
		{in: 4.25, want: 4.3},
		{in: 4.2, want: 4.2},
		{in: 0, want: 0},
		{in: 5, want: 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundTenth(tt.in), "RoundTenth(%v)", tt.in)
	}
}

func TestSummary_Rounded(t *testing.T) {
	s := Summary{Average: 10.0 / 3.0, Count: 3}
	assert.Equal(t, Summary{Average: 3.3, Count: 3}, s.Rounded())
	assert.Equal(t, Summary{}, Summary{}.Rounded())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		recent   float64
		previous float64
		want     Trend
	}{
		{name: "clear rise", recent: 4.5, previous: 4.0, want: TrendUp},
		{name: "rise of 0.2", recent: 4.3, previous: 4.1, want: TrendUp},
		{name: "drop exactly on threshold", recent: 3.9, previous: 4.0, want: TrendStable},
		{name: "clear drop", recent: 3.8, previous: 4.0, want: TrendDown},
		{name: "equal averages", recent: 4.0, previous: 4.0, want: TrendStable},
		{name: "empty previous window", recent: 0.5, previous: 0, want: TrendUp},
		{name: "both windows empty", recent: 0, previous: 0, want: TrendStable},
		{name: "empty recent window", recent: 0, previous: 3, want: TrendDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.recent, tt.previous))
		})
	}
}

func TestSplit(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	recentFrom := now.AddDate(0, 0, -30)
	previousFrom := now.AddDate(0, 0, -60)

	samples := []Sample{
		{Value: 5, CreatedAt: now},
		{Value: 4, CreatedAt: recentFrom},
		{Value: 3, CreatedAt: recentFrom.Add(-time.Nanosecond)},
		{Value: 2, CreatedAt: previousFrom},
		{Value: 1, CreatedAt: previousFrom.Add(-time.Nanosecond)},
	}

	recent, previous := Split(now, samples)
	assert.Equal(t, []int{5, 4}, recent)
	assert.Equal(t, []int{3, 2}, previous)
}

func TestClassifyTrend(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }

	tests := []struct {
		name    string
		samples []Sample
		want    Trend
		wantErr bool
	}{
		{
			name:    "no ratings",
			samples: nil,
			want:    TrendStable,
		},
		{
			name: "new store with only recent ratings",
			samples: []Sample{
				{Value: 5, CreatedAt: daysAgo(1)},
				{Value: 5, CreatedAt: daysAgo(2)},
				{Value: 4, CreatedAt: daysAgo(3)},
				{Value: 4, CreatedAt: daysAgo(4)},
				{Value: 3, CreatedAt: daysAgo(5)},
			},
			want: TrendUp,
		},
		{
			name: "improving store",
			samples: []Sample{
				{Value: 5, CreatedAt: daysAgo(3)},
				{Value: 3, CreatedAt: daysAgo(45)},
			},
			want: TrendUp,
		},
		{
			name: "declining store",
			samples: []Sample{
				{Value: 2, CreatedAt: daysAgo(3)},
				{Value: 4, CreatedAt: daysAgo(45)},
			},
			want: TrendDown,
		},
		{
			name: "ratings older than both windows are ignored",
			samples: []Sample{
				{Value: 4, CreatedAt: daysAgo(3)},
				{Value: 4, CreatedAt: daysAgo(40)},
				{Value: 1, CreatedAt: daysAgo(90)},
			},
			want: TrendStable,
		},
		{
			name: "out of range value",
			samples: []Sample{
				{Value: 7, CreatedAt: daysAgo(1)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyTrend(now, tt.samples)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValueOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEndToEndStoreScenario(t *testing.T) {
	now := time.Now()
	values := []int{5, 5, 4, 4, 3}
	samples := make([]Sample, 0, len(values))
	for i, v := range values {
		samples = append(samples, Sample{Value: v, CreatedAt: now.Add(-time.Duration(i) * time.Hour)})
	}

	summary, err := Aggregate(Values(samples))
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Count)
	assert.Equal(t, 4.2, summary.Rounded().Average)

	trend, err := ClassifyTrend(now, samples)
	require.NoError(t, err)
	assert.Equal(t, TrendUp, trend)
}
