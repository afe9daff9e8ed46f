package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	t.Run("clean input passes through", func(t *testing.T) {
		got := ExtractKeywords("Payments, Billing", 3)
		assert.Equal(t, []string{"Payments", "Billing"}, got)
	})

	t.Run("empty comment yields nothing", func(t *testing.T) {
		assert.Empty(t, ExtractKeywords("", 3))
		assert.Empty(t, ExtractKeywords("   ", 3))
	})

	t.Run("short segments are dropped", func(t *testing.T) {
		got := ExtractKeywords("go, CI, deployment", 3)
		assert.Equal(t, []string{"deployment"}, got)
	})

	t.Run("segments shrinking below the floor after cleaning are dropped", func(t *testing.T) {
		// "go!" is long enough raw but not once punctuation is stripped.
		got := ExtractKeywords("go!, deployment (prod)", 3)
		assert.Equal(t, []string{"deployment prod"}, got)
	})

	t.Run("splits on separator runs and double spaces", func(t *testing.T) {
		got := ExtractKeywords("billing;;payments / refunds  invoicing", 3)
		assert.Equal(t, []string{"billing", "payments", "refunds", "invoicing"}, got)
	})

	t.Run("single spaces keep phrases intact", func(t *testing.T) {
		got := ExtractKeywords("incident response drill", 3)
		assert.Equal(t, []string{"incident response drill"}, got)
	})

	t.Run("hyphens and underscores survive cleaning", func(t *testing.T) {
		got := ExtractKeywords("k8s-migration, audit_log", 3)
		assert.Equal(t, []string{"k8s-migration", "audit_log"}, got)
	})
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Deploy Script", titleCase("deploy script"))
	assert.Equal(t, "Deploy", titleCase("DEPLOY"))
	assert.Equal(t, "K8S-Migration", titleCase("k8s-migration"))
}

func TestMineKeywords(t *testing.T) {
	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("case-insensitive merging", func(t *testing.T) {
		records := []Record{
			{Actor: "Alice", StartedAt: day, Minutes: 60, Comment: "deploy"},
			{Actor: "Alice", StartedAt: day, Minutes: 30, Comment: "Deploy"},
		}
		stats, distinct := MineKeywords(records, 3)
		require.Len(t, stats, 1)
		assert.Equal(t, 1, distinct)
		assert.Equal(t, "Deploy", stats[0].Keyword)
		assert.Equal(t, 2, stats[0].Count)
		assert.InDelta(t, 1.5, stats[0].Hours, 1e-9)
		assert.InDelta(t, 100.0, stats[0].Percentage, 1e-9)
	})

	t.Run("each occurrence credits the full record duration", func(t *testing.T) {
		records := []Record{
			{Actor: ":Ops", StartedAt: day, Minutes: 120, Comment: ":Deploy, deploy script; Deploy"},
		}
		stats, distinct := MineKeywords(records, 3)
		require.Len(t, stats, 2)
		assert.Equal(t, 2, distinct)

		// "Deploy" occurs twice, each occurrence booking the whole
		// 2h record; "Deploy Script" stays a separate bucket.
		assert.Equal(t, "Deploy", stats[0].Keyword)
		assert.Equal(t, 2, stats[0].Count)
		assert.InDelta(t, 4.0, stats[0].Hours, 1e-9)

		assert.Equal(t, "Deploy Script", stats[1].Keyword)
		assert.Equal(t, 1, stats[1].Count)
		assert.InDelta(t, 2.0, stats[1].Hours, 1e-9)
	})

	t.Run("ranked by hours with stable ties", func(t *testing.T) {
		records := []Record{
			{Actor: "A", StartedAt: day, Minutes: 30, Comment: "alpha work"},
			{Actor: "A", StartedAt: day, Minutes: 120, Comment: "beta work"},
			{Actor: "A", StartedAt: day, Minutes: 30, Comment: "gamma work"},
		}
		stats, _ := MineKeywords(records, 3)
		require.Len(t, stats, 3)
		assert.Equal(t, "Beta Work", stats[0].Keyword)
		// Equal hours keep first-seen order.
		assert.Equal(t, "Alpha Work", stats[1].Keyword)
		assert.Equal(t, "Gamma Work", stats[2].Keyword)
	})

	t.Run("zero total hours yields zero percentages", func(t *testing.T) {
		records := []Record{
			{Actor: "A", StartedAt: day, Minutes: 0, Comment: "planning"},
		}
		stats, _ := MineKeywords(records, 3)
		require.Len(t, stats, 1)
		assert.Zero(t, stats[0].Percentage)
	})

	t.Run("records without comments contribute nothing", func(t *testing.T) {
		records := []Record{
			{Actor: "A", StartedAt: day, Minutes: 60},
			{Actor: "A", StartedAt: day, Minutes: 60, Comment: "billing"},
		}
		stats, distinct := MineKeywords(records, 3)
		require.Len(t, stats, 1)
		assert.Equal(t, 1, distinct)
		// Percentage is against the whole scoped set, commented or not.
		assert.InDelta(t, 50.0, stats[0].Percentage, 1e-9)
	})
}
