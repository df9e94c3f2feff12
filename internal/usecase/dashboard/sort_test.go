package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

func item(title, status, priority string, created time.Time) entities.ActionItem {
	return entities.ActionItem{Title: title, Status: status, Priority: priority, CreatedAt: created}
}

func TestSortActionItems_StatusDominatesPriority(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	items := []entities.ActionItem{
		item("done-high", entities.ActionItemStatusDone, entities.ActionItemPriorityHigh, now),
		item("open-low", entities.ActionItemStatusOpen, entities.ActionItemPriorityLow, now),
		item("progress-high", entities.ActionItemStatusInProgress, entities.ActionItemPriorityHigh, now),
	}

	SortActionItems(items)

	assert.Equal(t, "open-low", items[0].Title)
	assert.Equal(t, "progress-high", items[1].Title)
	assert.Equal(t, "done-high", items[2].Title)
}

func TestSortActionItems_PriorityThenRecency(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	items := []entities.ActionItem{
		item("medium-old", entities.ActionItemStatusOpen, entities.ActionItemPriorityMedium, now.Add(-time.Hour)),
		item("medium-new", entities.ActionItemStatusOpen, entities.ActionItemPriorityMedium, now),
		item("high-old", entities.ActionItemStatusOpen, entities.ActionItemPriorityHigh, now.Add(-2*time.Hour)),
		item("low-new", entities.ActionItemStatusOpen, entities.ActionItemPriorityLow, now),
	}

	SortActionItems(items)

	assert.Equal(t, "high-old", items[0].Title)
	assert.Equal(t, "medium-new", items[1].Title)
	assert.Equal(t, "medium-old", items[2].Title)
	assert.Equal(t, "low-new", items[3].Title)
}

func TestSortActionItems_UnknownValuesSortLast(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	items := []entities.ActionItem{
		item("mystery", "archived", entities.ActionItemPriorityHigh, now),
		item("done", entities.ActionItemStatusDone, entities.ActionItemPriorityLow, now),
		item("weird-priority", entities.ActionItemStatusOpen, "urgent!!", now),
		item("open", entities.ActionItemStatusOpen, entities.ActionItemPriorityLow, now),
	}

	SortActionItems(items)

	assert.Equal(t, "open", items[0].Title)
	assert.Equal(t, "weird-priority", items[1].Title)
	assert.Equal(t, "done", items[2].Title)
	assert.Equal(t, "mystery", items[3].Title)
}

func TestSortActionItems_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	items := []entities.ActionItem{
		item("b", entities.ActionItemStatusDone, entities.ActionItemPriorityLow, now),
		item("a", entities.ActionItemStatusOpen, entities.ActionItemPriorityHigh, now.Add(time.Minute)),
		item("c", entities.ActionItemStatusOpen, entities.ActionItemPriorityHigh, now),
	}

	SortActionItems(items)
	once := make([]entities.ActionItem, len(items))
	copy(once, items)

	SortActionItems(items)
	assert.Equal(t, once, items)
}

func TestSortDecisions_StatusThenRecency(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	decisions := []entities.Decision{
		{Title: "revoked", Status: entities.DecisionStatusRevoked, CreatedAt: now},
		{Title: "active-old", Status: entities.DecisionStatusActive, CreatedAt: now.Add(-time.Hour)},
		{Title: "superseded", Status: entities.DecisionStatusSuperseded, CreatedAt: now},
		{Title: "active-new", Status: entities.DecisionStatusActive, CreatedAt: now},
		{Title: "unknown", Status: "draft", CreatedAt: now},
	}

	SortDecisions(decisions)

	assert.Equal(t, "active-new", decisions[0].Title)
	assert.Equal(t, "active-old", decisions[1].Title)
	assert.Equal(t, "superseded", decisions[2].Title)
	assert.Equal(t, "revoked", decisions[3].Title)
	assert.Equal(t, "unknown", decisions[4].Title)
}

func TestSortDecisions_EmptyAndSingle(t *testing.T) {
	var empty []entities.Decision
	SortDecisions(empty)
	assert.Empty(t, empty)

	single := []entities.Decision{{Title: "only", Status: entities.DecisionStatusActive}}
	SortDecisions(single)
	assert.Equal(t, "only", single[0].Title)
}
