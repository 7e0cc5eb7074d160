package service

import (
	"context"

	"booker-api/core/errors"
	"booker-api/core/logger"
	"booker-api/modules/eventtype/repository"
)

const (
	MsgEventTypeNotFound = "Event type not found."
	MsgNoChildren        = "This event type is not capable of having children."
	MsgNotTeamMember     = "User is not a team member."
	MsgForeignOwner      = "Event types can only be created for yourself."
)

// MembershipGuard authorizes creating a child of a team event type.
type MembershipGuard interface {
	CheckMembership(ctx context.Context, parentEventTypeID int64, userID *int64) *errors.AppError
}

type membershipGuard struct {
	eventTypes  repository.EventTypeRepository
	memberships repository.MembershipRepository
}

func NewMembershipGuard(eventTypes repository.EventTypeRepository, memberships repository.MembershipRepository) MembershipGuard {
	return &membershipGuard{eventTypes: eventTypes, memberships: memberships}
}

// CheckMembership fails fast: the parent must exist, belong to a team, and userID must hold an
// accepted membership of that team. A nil result means the user is authorized.
func (g *membershipGuard) CheckMembership(ctx context.Context, parentEventTypeID int64, userID *int64) *errors.AppError {
	parent, err := g.eventTypes.GetByID(ctx, parentEventTypeID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "get event type failed", err)
	}
	if parent == nil {
		return errors.NewAppError(errors.ErrNotFound, MsgEventTypeNotFound, nil)
	}

	if parent.TeamID == nil {
		return errors.NewAppError(errors.ErrInvalidState, MsgNoChildren, nil)
	}

	member, err := g.memberships.FindAccepted(ctx, *parent.TeamID, userID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "get membership failed", err)
	}
	if member == nil {
		logger.Info("MembershipGuard:CheckMembership:NotMember", "parent_id", parentEventTypeID, "team_id", *parent.TeamID)
		return errors.NewAppError(errors.ErrNotTeamMember, MsgNotTeamMember, nil)
	}

	return nil
}
