package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

const searchLimit = 20

// ConnectionService manages connection requests between users.
type ConnectionService struct {
	users       ports.UserRepository
	connections ports.ConnectionRepository
	log         zerolog.Logger
	now         func() time.Time
}

func NewConnectionService(users ports.UserRepository, connections ports.ConnectionRepository, log zerolog.Logger) *ConnectionService {
	return &ConnectionService{
		users:       users,
		connections: connections,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *ConnectionService) Search(ctx context.Context, username string) ([]domain.UserSummary, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return []domain.UserSummary{}, nil
	}
	return s.users.Search(ctx, username, searchLimit)
}

func (s *ConnectionService) Request(ctx context.Context, requesterID, receiverID string) (*domain.Connection, error) {
	if receiverID == "" {
		return nil, domain.Invalid("Receiver is required.")
	}
	if requesterID == receiverID {
		return nil, domain.ErrSelfConnection
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		return nil, err
	}

	now := s.now()
	conn, err := s.connections.Create(ctx, &domain.Connection{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      domain.ConnectionPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("connection_id", conn.ID).Msg("connection requested")
	return conn, nil
}

// receiverOwned loads the connection and checks callerID is its receiver.
func (s *ConnectionService) receiverOwned(ctx context.Context, callerID, connectionID string) (*domain.Connection, error) {
	conn, err := s.connections.FindByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn.ReceiverID != callerID {
		return nil, domain.ErrForbidden
	}
	return conn, nil
}

func (s *ConnectionService) Accept(ctx context.Context, callerID, connectionID string) error {
	conn, err := s.receiverOwned(ctx, callerID, connectionID)
	if err != nil {
		return err
	}
	if conn.Status == domain.ConnectionAccepted {
		return nil
	}
	return s.connections.UpdateStatus(ctx, conn.ID, domain.ConnectionAccepted)
}

// Decline removes the request; rejection is not kept as a status.
func (s *ConnectionService) Decline(ctx context.Context, callerID, connectionID string) error {
	conn, err := s.receiverOwned(ctx, callerID, connectionID)
	if err != nil {
		return err
	}
	return s.connections.Delete(ctx, conn.ID)
}

func (s *ConnectionService) Notifications(ctx context.Context, callerID string) ([]ports.Notification, error) {
	pending, err := s.connections.ListPendingFor(ctx, callerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(pending))
	for _, c := range pending {
		ids = append(ids, c.RequesterID)
	}
	summaries, err := s.users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.Notification, 0, len(pending))
	for _, c := range pending {
		requester, ok := summaries[c.RequesterID]
		if !ok {
			continue
		}
		out = append(out, ports.Notification{Connection: c, Requester: requester})
	}
	return out, nil
}

func (s *ConnectionService) Count(ctx context.Context, callerID string) (int64, error) {
	return s.connections.CountAccepted(ctx, callerID)
}

// SetBlocked requires callerID to be an administrator.
func (s *ConnectionService) SetBlocked(ctx context.Context, callerID, targetID string, blocked bool) error {
	caller, err := s.users.FindByID(ctx, callerID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrForbidden
	}
	if err != nil {
		return err
	}
	if !caller.IsAdmin {
		return domain.ErrForbidden
	}
	if err := s.users.SetBlocked(ctx, targetID, blocked); err != nil {
		return err
	}
	s.log.Info().Str("user_id", targetID).Bool("blocked", blocked).Msg("block status changed")
	return nil
}
