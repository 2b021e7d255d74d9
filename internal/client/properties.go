package client

import (
	"context"

	"vsphere-events-cli/pkg/models"
)

// RetrievePropertiesEx returns the first page of the properties selected by
// specs. A nil result with no error means nothing matched.
func (c *VimClient) RetrievePropertiesEx(ctx context.Context, propCollector models.ManagedObjectReference, specs []models.PropertyFilterSpec, opts models.RetrieveOptions) (*models.RetrieveResult, error) {
	payload := models.RetrievePropertiesExRequest{
		SpecSet: specs,
		Options: opts,
	}

	var result *models.RetrieveResult
	if _, err := c.invoke(ctx, "RetrievePropertiesEx", propCollector, payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ContinueRetrievePropertiesEx fetches the page following token.
func (c *VimClient) ContinueRetrievePropertiesEx(ctx context.Context, propCollector models.ManagedObjectReference, token string) (*models.RetrieveResult, error) {
	payload := models.ContinueRetrievePropertiesExRequest{Token: token}

	var result *models.RetrieveResult
	if _, err := c.invoke(ctx, "ContinueRetrievePropertiesEx", propCollector, payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// PropertyFault returns the error for a property the server reported in an
// object's missingSet instead of its propSet.
func (c *VimClient) PropertyFault(missing models.MissingProperty) error {
	fault := missing.Fault
	if fault.Kind == "" {
		fault.Kind = "MissingProperty"
	}
	return NewFault("RetrievePropertiesEx("+missing.Path+")", fault)
}
