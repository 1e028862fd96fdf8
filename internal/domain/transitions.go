package domain

// TransitionTable maps a status to the set of statuses it may move to.
// Two variants coexist deliberately: the board allows dragging work back to
// new but treats repaired as terminal, while the detail view allows a
// repaired request to still be scrapped. Call sites pick their table; the
// discrepancy is documented product behavior, not an accident to unify.
type TransitionTable map[RequestStatus][]RequestStatus

// BoardTransitions is enforced for drag-and-drop moves on the kanban board.
var BoardTransitions = TransitionTable{
	RequestStatusNew:        {RequestStatusInProgress, RequestStatusScrap},
	RequestStatusInProgress: {RequestStatusNew, RequestStatusRepaired, RequestStatusScrap},
	RequestStatusRepaired:   {},
	RequestStatusScrap:      {},
}

// DetailTransitions is enforced for button-driven changes on the detail view.
var DetailTransitions = TransitionTable{
	RequestStatusNew:        {RequestStatusInProgress, RequestStatusScrap},
	RequestStatusInProgress: {RequestStatusRepaired, RequestStatusScrap},
	RequestStatusRepaired:   {RequestStatusScrap},
	RequestStatusScrap:      {},
}

// Allows reports whether the table permits moving from one status to another.
func (t TransitionTable) Allows(from, to RequestStatus) bool {
	for _, candidate := range t[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Targets returns the statuses reachable from the given one.
func (t TransitionTable) Targets(from RequestStatus) []RequestStatus {
	return t[from]
}

// ValidStatus reports whether the value is one of the four stages.
func ValidStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusNew, RequestStatusInProgress, RequestStatusRepaired, RequestStatusScrap:
		return true
	}
	return false
}
