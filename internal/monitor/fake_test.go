package monitor

import (
	"context"

	"vsphere-events-cli/internal/client"
	"vsphere-events-cli/pkg/models"
)

// fakeSession replays pages in order. Continuation calls past the last page
// keep returning the last page, which lets tests model a server that never
// drops its token.
type fakeSession struct {
	content   *models.ServiceContent
	collector models.ManagedObjectReference
	createErr error

	pages   []*models.RetrieveResult
	failAt  int // 1-based call number to fail, 0 for never
	failErr error

	calls         int
	createCalls   int
	retrieveCalls int
	continueCalls int
	tokens        []string
	filters       []models.EventFilterSpec
	specs         [][]models.PropertyFilterSpec
}

func newFakeSession(pages ...*models.RetrieveResult) *fakeSession {
	em := models.NewReference("EventManager", "EventManager")
	return &fakeSession{
		content: &models.ServiceContent{
			PropertyCollector: models.NewReference("PropertyCollector", "propertyCollector"),
			EventManager:      &em,
		},
		collector: models.NewReference("EventHistoryCollector", "Collector-1"),
		pages:     pages,
	}
}

func (s *fakeSession) Content() *models.ServiceContent {
	return s.content
}

func (s *fakeSession) CreateCollectorForEvents(_ context.Context, _ models.ManagedObjectReference, filter models.EventFilterSpec) (models.ManagedObjectReference, error) {
	s.createCalls++
	s.filters = append(s.filters, filter)
	if s.createErr != nil {
		return models.ManagedObjectReference{}, s.createErr
	}
	return s.collector, nil
}

func (s *fakeSession) RetrievePropertiesEx(_ context.Context, _ models.ManagedObjectReference, specs []models.PropertyFilterSpec, _ models.RetrieveOptions) (*models.RetrieveResult, error) {
	s.calls++
	s.retrieveCalls++
	s.specs = append(s.specs, specs)
	if s.failAt == s.calls {
		return nil, s.failErr
	}
	if len(s.pages) == 0 {
		return nil, nil
	}
	return s.pages[0], nil
}

func (s *fakeSession) ContinueRetrievePropertiesEx(_ context.Context, _ models.ManagedObjectReference, token string) (*models.RetrieveResult, error) {
	s.calls++
	s.continueCalls++
	s.tokens = append(s.tokens, token)
	if s.failAt == s.calls {
		return nil, s.failErr
	}
	idx := s.continueCalls
	if idx >= len(s.pages) {
		idx = len(s.pages) - 1
	}
	return s.pages[idx], nil
}

func (s *fakeSession) PropertyFault(missing models.MissingProperty) error {
	return client.NewFault("RetrievePropertiesEx("+missing.Path+")", missing.Fault)
}
