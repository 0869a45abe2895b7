package ai

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Priorities the classifier may return
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Classifier rates complaint priority through an external model endpoint.
// It never fails: unreachable endpoint, bad response or unknown label all
// fall back to Medium.
type Classifier struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClassifier creates a classifier against CLASSIFIER_URL. An empty URL
// leaves the classifier in fallback-only mode.
func NewClassifier(log *logrus.Logger) *Classifier {
	return &Classifier{
		url:    os.Getenv("CLASSIFIER_URL"),
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// ClassifyPriority rates a submission as Low, Medium or High.
func (c *Classifier) ClassifyPriority(title, description, serviceType string) string {
	if c.url == "" {
		return PriorityMedium
	}

	payload, err := json.Marshal(map[string]string{
		"title":        title,
		"description":  description,
		"service_type": serviceType,
	})
	if err != nil {
		return PriorityMedium
	}

	resp, err := c.client.Post(c.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		c.log.WithError(err).Warn("priority classifier unreachable, using fallback")
		return PriorityMedium
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.WithField("status", resp.StatusCode).Warn("priority classifier error, using fallback")
		return PriorityMedium
	}

	var result struct {
		Priority string `json:"priority"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return PriorityMedium
	}

	return NormalizePriority(result.Priority)
}

// NormalizePriority maps arbitrary classifier output onto the known
// priorities, defaulting to Medium.
func NormalizePriority(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow
	case "medium":
		return PriorityMedium
	case "high":
		return PriorityHigh
	default:
		return PriorityMedium
	}
}
