package service

import (
	"context"

	"github.com/gearguard/maintenance-service/internal/domain"
)

// KanbanService presents requests as a four-column board and validates
// drag-and-drop moves against the board transition table.
type KanbanService struct {
	requests *RequestService
}

// NewKanbanService constructs the service.
func NewKanbanService(requests *RequestService) *KanbanService {
	return &KanbanService{requests: requests}
}

// BoardColumn is one kanban lane.
type BoardColumn struct {
	Status   domain.RequestStatus        `json:"status"`
	Requests []domain.MaintenanceRequest `json:"requests"`
}

// Board groups visible requests by stage, lanes in fixed order.
type Board struct {
	Columns []BoardColumn `json:"columns"`
}

// MoveResult reports the outcome of a drop. Moved is false when the drop
// target could not be resolved or resolved to the card's current column.
type MoveResult struct {
	Request *domain.MaintenanceRequest `json:"request"`
	Moved   bool                       `json:"moved"`
}

var boardOrder = []domain.RequestStatus{
	domain.RequestStatusNew,
	domain.RequestStatusInProgress,
	domain.RequestStatusRepaired,
	domain.RequestStatusScrap,
}

// Board returns the visible requests laid out as columns.
func (s *KanbanService) Board(ctx context.Context, actor *domain.User, filter RequestListFilter) (*Board, error) {
	// The board always shows every stage; a status facet would leave lanes
	// silently empty.
	filter.Statuses = nil
	requests, err := s.requests.ListVisible(ctx, actor, filter)
	if err != nil {
		return nil, err
	}

	grouped := make(map[domain.RequestStatus][]domain.MaintenanceRequest, len(boardOrder))
	for _, request := range requests {
		grouped[request.Status] = append(grouped[request.Status], request)
	}

	board := &Board{Columns: make([]BoardColumn, 0, len(boardOrder))}
	for _, status := range boardOrder {
		column := BoardColumn{Status: status, Requests: grouped[status]}
		if column.Requests == nil {
			column.Requests = []domain.MaintenanceRequest{}
		}
		board.Columns = append(board.Columns, column)
	}
	return board, nil
}

// Move handles a card drop. The target is resolved from the drop zone: a
// column identifier wins, otherwise the card dropped onto decides the lane.
// An unresolvable drop is a no-op, not an error.
func (s *KanbanService) Move(ctx context.Context, actor *domain.User, requestID int64, targetColumn string, targetCardID *int64) (*MoveResult, error) {
	target, ok, err := s.resolveDropTarget(ctx, actor, targetColumn, targetCardID)
	if err != nil {
		return nil, err
	}
	if !ok {
		request, err := s.requests.GetVisible(ctx, actor, requestID)
		if err != nil {
			return nil, err
		}
		return &MoveResult{Request: request, Moved: false}, nil
	}

	request, err := s.requests.GetVisible(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status == target {
		return &MoveResult{Request: request, Moved: false}, nil
	}

	moved, err := s.requests.MoveStage(ctx, actor, requestID, target)
	if err != nil {
		return nil, err
	}
	return &MoveResult{Request: moved, Moved: true}, nil
}

// Targets reports which lanes a card can currently move to.
func (s *KanbanService) Targets(ctx context.Context, actor *domain.User, requestID int64) (domain.RequestStatus, []domain.RequestStatus, error) {
	request, err := s.requests.GetVisible(ctx, actor, requestID)
	if err != nil {
		return "", nil, err
	}
	return request.Status, domain.BoardTransitions.Targets(request.Status), nil
}

func (s *KanbanService) resolveDropTarget(ctx context.Context, actor *domain.User, targetColumn string, targetCardID *int64) (domain.RequestStatus, bool, error) {
	if status := domain.RequestStatus(targetColumn); domain.ValidStatus(status) {
		return status, true, nil
	}
	if targetCardID != nil {
		card, err := s.requests.GetVisible(ctx, actor, *targetCardID)
		if err != nil {
			return "", false, err
		}
		return card.Status, true, nil
	}
	return "", false, nil
}
