package service

import (
	"context"
	"strings"

	"booker-api/core/constants"
	"booker-api/core/errors"
	"booker-api/core/logger"
	"booker-api/modules/eventtype/dto"
	"booker-api/modules/eventtype/entity"
	"booker-api/modules/eventtype/repository"

	"github.com/gosimple/slug"
)

const defaultEventLength = 30

type EventTypeService interface {
	Create(ctx context.Context, callerID int64, req *dto.CreateEventTypeRequest) (*dto.EventTypeResponse, *errors.AppError)
	GetByID(ctx context.Context, id int64) (*dto.EventTypeResponse, *errors.AppError)
}

type eventTypeService struct {
	repo  repository.EventTypeRepository
	guard MembershipGuard
}

func NewEventTypeService(repo repository.EventTypeRepository, guard MembershipGuard) EventTypeService {
	return &eventTypeService{repo: repo, guard: guard}
}

// Create stores a personal event type, or a child of a team event type when ParentID is set.
func (s *eventTypeService) Create(ctx context.Context, callerID int64, req *dto.CreateEventTypeRequest) (*dto.EventTypeResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}
	if req.Length < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "length must be positive", nil)
	}

	// event types are always created for the caller; user_id may only restate it
	if req.UserID != nil && *req.UserID != callerID {
		logger.Warn("EventTypeService:Create:ForeignOwner", "caller_id", callerID, "user_id", *req.UserID)
		return nil, errors.NewAppError(errors.ErrForbidden, MsgForeignOwner, nil)
	}
	ownerID := &callerID

	if req.ParentID != nil {
		if appErr := s.guard.CheckMembership(ctx, *req.ParentID, ownerID); appErr != nil {
			logger.Info("EventTypeService:Create:Rejected", "parent_id", *req.ParentID, "code", appErr.Code)
			return nil, appErr
		}
	}

	eventSlug := slug.Make(req.Slug)
	if eventSlug == "" {
		eventSlug = slug.Make(title)
	}
	length := req.Length
	if length == 0 {
		length = defaultEventLength
	}

	eventType := &entity.EventType{
		Title:    title,
		Slug:     eventSlug,
		Length:   length,
		UserID:   ownerID,
		ParentID: req.ParentID,
	}
	if err := s.repo.Create(ctx, eventType); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create event type failed", err)
	}

	logger.Info("EventTypeService:Create:Success", "id", eventType.ID, "user_id", *ownerID, "child", req.ParentID != nil)
	return toResponse(eventType), nil
}

func (s *eventTypeService) GetByID(ctx context.Context, id int64) (*dto.EventTypeResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	eventType, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get event type failed", err)
	}
	if eventType == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, MsgEventTypeNotFound, nil)
	}
	return toResponse(eventType), nil
}

func toResponse(e *entity.EventType) *dto.EventTypeResponse {
	return &dto.EventTypeResponse{
		ID:        e.ID,
		Title:     e.Title,
		Slug:      e.Slug,
		Length:    e.Length,
		TeamID:    e.TeamID,
		UserID:    e.UserID,
		ParentID:  e.ParentID,
		CreatedAt: e.CreatedAt,
	}
}
