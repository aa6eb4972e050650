package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendly/lendly-backend/internal/modules/push/domain"
)

type tokenRepoMock struct {
	saveFn           func(context.Context, *domain.DeviceToken) error
	listByOwnerFn    func(context.Context, uuid.UUID) ([]domain.DeviceToken, error)
	deleteFn         func(context.Context, string) error
	deleteForOwnerFn func(context.Context, string, uuid.UUID) error
}

func (m tokenRepoMock) Save(ctx context.Context, t *domain.DeviceToken) error {
	return m.saveFn(ctx, t)
}

func (m tokenRepoMock) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.DeviceToken, error) {
	return m.listByOwnerFn(ctx, ownerID)
}

func (m tokenRepoMock) Delete(ctx context.Context, token string) error {
	return m.deleteFn(ctx, token)
}

func (m tokenRepoMock) DeleteForOwner(ctx context.Context, token string, ownerID uuid.UUID) error {
	return m.deleteForOwnerFn(ctx, token, ownerID)
}

type providerMock struct {
	sendFn func(context.Context, []string, domain.Payload) ([]domain.SendResult, error)
}

func (m providerMock) Send(ctx context.Context, tokens []string, payload domain.Payload) ([]domain.SendResult, error) {
	return m.sendFn(ctx, tokens, payload)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tokensFor(owner uuid.UUID, tokens ...string) []domain.DeviceToken {
	out := make([]domain.DeviceToken, len(tokens))
	for i, tok := range tokens {
		out[i] = domain.DeviceToken{Token: tok, OwnerID: owner}
	}
	return out
}

func TestDeliverer_Deliver(t *testing.T) {
	owner := uuid.New()
	payload := domain.Payload{Title: "New message", Body: "hello"}

	t.Run("prunes exactly the tokens reported invalid", func(t *testing.T) {
		var deleted []string
		repo := tokenRepoMock{
			listByOwnerFn: func(context.Context, uuid.UUID) ([]domain.DeviceToken, error) {
				return tokensFor(owner, "t1", "t2", "t3"), nil
			},
			deleteFn: func(_ context.Context, token string) error {
				deleted = append(deleted, token)
				return nil
			},
		}
		provider := providerMock{
			sendFn: func(_ context.Context, tokens []string, _ domain.Payload) ([]domain.SendResult, error) {
				require.Equal(t, []string{"t1", "t2", "t3"}, tokens)
				return []domain.SendResult{
					{Token: "t1"},
					{Token: "t2", Invalid: true},
					{Token: "t3"},
				}, nil
			},
		}
		d := NewDeliverer(repo, provider, discardLogger())

		require.NoError(t, d.Deliver(context.Background(), owner, payload))
		assert.Equal(t, []string{"t2"}, deleted)
	})

	t.Run("batch failure prunes nothing and surfaces the error", func(t *testing.T) {
		repo := tokenRepoMock{
			listByOwnerFn: func(context.Context, uuid.UUID) ([]domain.DeviceToken, error) {
				return tokensFor(owner, "t1", "t2"), nil
			},
			deleteFn: func(context.Context, string) error {
				t.Fatal("no token may be pruned after a batch failure")
				return nil
			},
		}
		provider := providerMock{
			sendFn: func(context.Context, []string, domain.Payload) ([]domain.SendResult, error) {
				return nil, errors.New("fcm unreachable")
			},
		}
		d := NewDeliverer(repo, provider, discardLogger())

		err := d.Deliver(context.Background(), owner, payload)
		assert.Error(t, err)
	})

	t.Run("transient per-token failure keeps the registration", func(t *testing.T) {
		repo := tokenRepoMock{
			listByOwnerFn: func(context.Context, uuid.UUID) ([]domain.DeviceToken, error) {
				return tokensFor(owner, "t1"), nil
			},
			deleteFn: func(context.Context, string) error {
				t.Fatal("transient failures must not prune")
				return nil
			},
		}
		provider := providerMock{
			sendFn: func(context.Context, []string, domain.Payload) ([]domain.SendResult, error) {
				return []domain.SendResult{{Token: "t1", Err: errors.New("throttled")}}, nil
			},
		}
		d := NewDeliverer(repo, provider, discardLogger())

		require.NoError(t, d.Deliver(context.Background(), owner, payload))
	})

	t.Run("no registered devices is a no-op", func(t *testing.T) {
		repo := tokenRepoMock{
			listByOwnerFn: func(context.Context, uuid.UUID) ([]domain.DeviceToken, error) {
				return nil, nil
			},
		}
		provider := providerMock{
			sendFn: func(context.Context, []string, domain.Payload) ([]domain.SendResult, error) {
				t.Fatal("provider must not be called without tokens")
				return nil, nil
			},
		}
		d := NewDeliverer(repo, provider, discardLogger())

		require.NoError(t, d.Deliver(context.Background(), owner, payload))
	})

	t.Run("nil provider disables delivery", func(t *testing.T) {
		repo := tokenRepoMock{
			listByOwnerFn: func(context.Context, uuid.UUID) ([]domain.DeviceToken, error) {
				t.Fatal("tokens must not be loaded when push is disabled")
				return nil, nil
			},
		}
		d := NewDeliverer(repo, nil, discardLogger())

		require.NoError(t, d.Deliver(context.Background(), owner, payload))
	})
}

func TestTokenService(t *testing.T) {
	owner := uuid.New()

	t.Run("register saves the binding", func(t *testing.T) {
		var saved *domain.DeviceToken
		repo := tokenRepoMock{
			saveFn: func(_ context.Context, tok *domain.DeviceToken) error {
				saved = tok
				return nil
			},
		}
		svc := NewTokenService(repo)

		require.NoError(t, svc.Register(context.Background(), owner, "device-token"))
		require.NotNil(t, saved)
		assert.Equal(t, owner, saved.OwnerID)
		assert.Equal(t, "device-token", saved.Token)
		assert.False(t, saved.CreatedAt.IsZero())
	})

	t.Run("empty tokens are rejected", func(t *testing.T) {
		svc := NewTokenService(tokenRepoMock{})
		assert.ErrorIs(t, svc.Register(context.Background(), owner, ""), domain.ErrEmptyToken)
		assert.ErrorIs(t, svc.Unregister(context.Background(), owner, ""), domain.ErrEmptyToken)
	})

	t.Run("unregister is scoped to the owner", func(t *testing.T) {
		var gotToken string
		var gotOwner uuid.UUID
		repo := tokenRepoMock{
			deleteForOwnerFn: func(_ context.Context, token string, ownerID uuid.UUID) error {
				gotToken, gotOwner = token, ownerID
				return nil
			},
		}
		svc := NewTokenService(repo)

		require.NoError(t, svc.Unregister(context.Background(), owner, "device-token"))
		assert.Equal(t, "device-token", gotToken)
		assert.Equal(t, owner, gotOwner)
	})
}
