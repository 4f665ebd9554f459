package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/delivery-console/internal/domains/store/domain"
)

type fakeGateway struct {
	open      bool
	statusErr error
	toggleErr error
	calls     []string
	block     chan struct{}
}

func (f *fakeGateway) Status(_ context.Context) (bool, error) {
	f.calls = append(f.calls, "status")
	return f.open, f.statusErr
}

func (f *fakeGateway) Open(_ context.Context) error {
	f.calls = append(f.calls, "open")
	if f.block != nil {
		<-f.block
	}
	if f.toggleErr != nil {
		return f.toggleErr
	}
	f.open = true
	return nil
}

func (f *fakeGateway) Close(_ context.Context) error {
	f.calls = append(f.calls, "close")
	if f.toggleErr != nil {
		return f.toggleErr
	}
	f.open = false
	return nil
}

func TestOpen_WhenAlreadyOpenIsNoop(t *testing.T) {
	gateway := &fakeGateway{open: true}
	svc := NewService(gateway, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	gateway.calls = nil

	require.NoError(t, svc.Open(context.Background()))
	require.Empty(t, gateway.calls)
}

func TestClose_WhenAlreadyClosedIsNoop(t *testing.T) {
	gateway := &fakeGateway{open: false}
	svc := NewService(gateway, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	gateway.calls = nil

	require.NoError(t, svc.Close(context.Background()))
	require.Empty(t, gateway.calls)
}

func TestOpen_SendsCommandThenRefetches(t *testing.T) {
	gateway := &fakeGateway{open: false}
	svc := NewService(gateway, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	gateway.calls = nil

	require.NoError(t, svc.Open(context.Background()))
	require.Equal(t, []string{"open", "status"}, gateway.calls)
	require.Equal(t, domain.StatusOpen, svc.Snapshot().Status)
	require.False(t, svc.Snapshot().InFlight)
}

func TestOpen_UnknownStateStillSends(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewService(gateway, nil)

	require.NoError(t, svc.Open(context.Background()))
	require.Equal(t, []string{"open", "status"}, gateway.calls)
}

func TestToggle_FailureKeepsConfirmedState(t *testing.T) {
	gateway := &fakeGateway{open: false}
	svc := NewService(gateway, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	gateway.toggleErr = errors.New("502 bad gateway")
	err = svc.Open(context.Background())
	require.ErrorIs(t, err, ErrOpenFailed)
	require.Equal(t, domain.StatusClosed, svc.Snapshot().Status)
	require.False(t, svc.Snapshot().InFlight)
}

func TestToggle_SecondRequestRejectedWhileInFlight(t *testing.T) {
	gateway := &fakeGateway{block: make(chan struct{})}
	sw := domain.NewSwitch()
	first := NewService(gateway, sw)
	second := NewService(gateway, sw)

	done := make(chan error, 1)
	go func() { done <- first.Open(context.Background()) }()
	require.Eventually(t, func() bool { return sw.Snapshot().InFlight }, time.Second, time.Millisecond)

	err := second.Close(context.Background())
	require.ErrorIs(t, err, domain.ErrToggleInFlight)

	close(gateway.block)
	require.NoError(t, <-done)
}

func TestRefresh_FailureKeepsLastState(t *testing.T) {
	gateway := &fakeGateway{open: true}
	svc := NewService(gateway, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	gateway.statusErr = errors.New("timeout")
	snapshot, err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, ErrStatusUnavailable)
	require.Equal(t, domain.StatusOpen, snapshot.Status)
}
