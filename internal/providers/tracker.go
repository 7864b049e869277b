package providers

import (
	"time"

	"github.com/Gyeom/jira-automation/internal/config"
	"github.com/Gyeom/jira-automation/internal/httpclient"
	"github.com/Gyeom/jira-automation/internal/jira"
)

const trackerTimeout = 30 * time.Second

// NewTrackerClient creates the issue tracker client from the configuration.
func NewTrackerClient(cfg *config.Config) *jira.Client {
	return jira.NewClient(cfg, httpclient.New(trackerTimeout))
}
