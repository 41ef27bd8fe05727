package service

import (
	"testing"

	"youthhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog(thresholds ...int) []model.Badge {
	badges := make([]model.Badge, 0, len(thresholds))
	for i, t := range thresholds {
		b := model.Badge{Name: "b", ThresholdPoints: t, Position: i}
		b.ID = uint(i + 1)
		badges = append(badges, b)
	}
	return badges
}

func thresholdsOf(badges []model.Badge) []int {
	out := make([]int, 0, len(badges))
	for _, b := range badges {
		out = append(out, b.ThresholdPoints)
	}
	return out
}

func TestResolveBadges_Example(t *testing.T) {
	got := ResolveBadges(catalog(0, 100, 500), 150)

	assert.Equal(t, []int{0, 100}, thresholdsOf(got.Earned))
	require.NotNil(t, got.Next)
	assert.Equal(t, 500, got.Next.ThresholdPoints)
	assert.InDelta(t, 0.125, got.ProgressFraction, 1e-9)
}

func TestResolveBadges_NothingEarned(t *testing.T) {
	got := ResolveBadges(catalog(50, 200), 10)

	assert.Empty(t, got.Earned)
	require.NotNil(t, got.Next)
	assert.Equal(t, 50, got.Next.ThresholdPoints)
	assert.InDelta(t, 0.2, got.ProgressFraction, 1e-9)
}

func TestResolveBadges_AllEarned(t *testing.T) {
	got := ResolveBadges(catalog(0, 100), 5000)

	assert.Len(t, got.Earned, 2)
	assert.Nil(t, got.Next)
	assert.Equal(t, 1.0, got.ProgressFraction)
}

func TestResolveBadges_EmptyCatalog(t *testing.T) {
	got := ResolveBadges(nil, 42)

	assert.Empty(t, got.Earned)
	assert.Nil(t, got.Next)
	assert.Equal(t, 1.0, got.ProgressFraction)
}

func TestResolveBadges_ExactThreshold(t *testing.T) {
	got := ResolveBadges(catalog(0, 100, 500), 100)

	assert.Equal(t, []int{0, 100}, thresholdsOf(got.Earned))
	assert.Equal(t, 0.0, got.ProgressFraction)
}

func TestResolveBadges_TieKeepsCatalogOrder(t *testing.T) {
	badges := []model.Badge{
		{Name: "late", ThresholdPoints: 300},
		{Name: "first", ThresholdPoints: 100},
		{Name: "second", ThresholdPoints: 100},
	}

	got := ResolveBadges(badges, 150)

	require.Len(t, got.Earned, 2)
	assert.Equal(t, "first", got.Earned[0].Name)
	assert.Equal(t, "second", got.Earned[1].Name)
	assert.Equal(t, "late", got.Next.Name)
	// 入参不被修改
	assert.Equal(t, "late", badges[0].Name)
}

func TestResolveBadges_EarnedIsExactlyBadgesUnderPoints(t *testing.T) {
	badges := catalog(0, 10, 10, 75, 300, 1000)

	for p := 0; p <= 1200; p += 5 {
		got := ResolveBadges(badges, p)

		want := 0
		for _, b := range badges {
			if b.ThresholdPoints <= p {
				want++
			}
		}
		assert.Len(t, got.Earned, want, "points=%d", p)
		assert.GreaterOrEqual(t, got.ProgressFraction, 0.0)
		assert.LessOrEqual(t, got.ProgressFraction, 1.0)
	}
}

func TestResolveBadges_Monotonic(t *testing.T) {
	badges := catalog(0, 100, 250, 500, 1500)

	prev := ResolveBadges(badges, 0)
	for p := 1; p <= 2000; p += 7 {
		cur := ResolveBadges(badges, p)
		assert.Subset(t, BadgeIDs(cur.Earned), BadgeIDs(prev.Earned), "points=%d", p)
		prev = cur
	}
}
