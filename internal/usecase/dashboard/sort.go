package dashboard

import (
	"sort"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

// unknownRank sorts any unrecognized status/priority value last.
const unknownRank = 99

var actionItemStatusRank = map[string]int{
	entities.ActionItemStatusOpen:       1,
	entities.ActionItemStatusInProgress: 2,
	entities.ActionItemStatusDone:       3,
}

var actionItemPriorityRank = map[string]int{
	entities.ActionItemPriorityHigh:   1,
	entities.ActionItemPriorityMedium: 2,
	entities.ActionItemPriorityLow:    3,
}

var decisionStatusRank = map[string]int{
	entities.DecisionStatusActive:     1,
	entities.DecisionStatusSuperseded: 2,
	entities.DecisionStatusRevoked:    3,
}

func rankOf(ranks map[string]int, value string) int {
	if r, ok := ranks[value]; ok {
		return r
	}
	return unknownRank
}

// SortActionItems orders items in place: open before in-progress before
// done, then high priority first, then newest first. The sort is stable
// for fully equal keys and has no side effects beyond reordering.
func SortActionItems(items []entities.ActionItem) {
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := rankOf(actionItemStatusRank, items[i].Status), rankOf(actionItemStatusRank, items[j].Status)
		if si != sj {
			return si < sj
		}
		pi, pj := rankOf(actionItemPriorityRank, items[i].Priority), rankOf(actionItemPriorityRank, items[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// SortDecisions orders decisions in place: active before superseded
// before revoked, then newest first.
func SortDecisions(decisions []entities.Decision) {
	sort.SliceStable(decisions, func(i, j int) bool {
		si, sj := rankOf(decisionStatusRank, decisions[i].Status), rankOf(decisionStatusRank, decisions[j].Status)
		if si != sj {
			return si < sj
		}
		return decisions[i].CreatedAt.After(decisions[j].CreatedAt)
	})
}
