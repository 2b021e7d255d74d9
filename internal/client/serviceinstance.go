package client

import (
	"context"

	"vsphere-events-cli/pkg/models"
)

// RetrieveServiceContent fetches the root ServiceContent, which supplies the
// references of the event manager, property collector and session manager.
func (c *VimClient) RetrieveServiceContent(ctx context.Context) (*models.ServiceContent, error) {
	var content models.ServiceContent
	if _, err := c.get(ctx, "RetrieveServiceContent", "/ServiceInstance/ServiceInstance/content", &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// About returns the product information of the connected server.
func (c *VimClient) About(ctx context.Context) (models.AboutInfo, error) {
	if c.content == nil {
		if err := c.Connect(ctx); err != nil {
			return models.AboutInfo{}, err
		}
	}
	return c.content.About, nil
}
