package monitor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vsphere-events-cli/internal/client"
	"vsphere-events-cli/pkg/models"
)

func TestCreateCollector(t *testing.T) {
	s := newFakeSession()
	m := NewCollectorManager(s)

	collector, err := m.CreateCollector(context.Background(), *s.content.EventManager, models.NewEventFilterSpec())
	require.NoError(t, err)
	assert.Equal(t, "Collector-1", collector.Value)
	assert.Equal(t, []models.EventFilterSpec{models.NewEventFilterSpec()}, s.filters)
}

func TestCreateCollector_NewCollectorPerCall(t *testing.T) {
	s := newFakeSession()
	m := NewCollectorManager(s)

	for i := 0; i < 2; i++ {
		_, err := m.CreateCollector(context.Background(), *s.content.EventManager, models.EventFilterSpec{})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, s.createCalls)
}

func TestCreateCollector_FaultsUnchanged(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid state", &client.InvalidStateFault{Method: "CreateCollectorForEvents", Message: "not ready"}},
		{"remote fault", &client.RemoteServiceFault{Method: "CreateCollectorForEvents", Kind: "ManagedObjectNotFound"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeSession()
			s.createErr = tt.err

			_, err := NewCollectorManager(s).CreateCollector(context.Background(), *s.content.EventManager, models.NewEventFilterSpec())
			assert.Same(t, tt.err, err)
		})
	}
}

func TestCreateCollector_EmptyReference(t *testing.T) {
	s := newFakeSession()
	s.collector = models.ManagedObjectReference{}

	_, err := NewCollectorManager(s).CreateCollector(context.Background(), *s.content.EventManager, models.NewEventFilterSpec())
	assert.ErrorIs(t, err, ErrNoCollector)
}
