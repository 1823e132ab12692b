// Package publishers fans harvested articles out to optional external
// sinks: HTTP webhooks and cloud queues. Delivery is best effort; a
// failing sink is logged and the run continues.
package publishers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Supported publisher types.
	TypeWebhook = "webhook"
	TypeQueue   = "queue"

	// Supported queue providers.
	QueueProviderAWSSQS = "aws-sqs"
	QueueProviderAWSSNS = "aws-sns"
	QueueProviderGCP    = "gcp"

	webhookDefaultMethod         = "POST"
	webhookDefaultTimeoutSeconds = 5
)

// configFile represents the structure of the publishers configuration file.
type configFile struct {
	Publishers []Config `json:"publishers" yaml:"publishers"`
}

// Config is a single publisher entry declared in the config file.
type Config struct {
	ID      string         `json:"id" yaml:"id"`
	Type    string         `json:"type" yaml:"type"`
	Enabled *bool          `json:"enabled" yaml:"enabled"`
	Webhook *WebhookConfig `json:"webhook" yaml:"webhook"`
	Queue   *QueueConfig   `json:"queue" yaml:"queue"`
}

// WebhookConfig holds generic HTTP sink settings.
type WebhookConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// QueueConfig selects a cloud queue provider.
type QueueConfig struct {
	Provider string           `json:"provider" yaml:"provider"`
	SQS      *AWSSQSConfig    `json:"sqs" yaml:"sqs"`
	SNS      *AWSSNSConfig    `json:"sns" yaml:"sns"`
	GCP      *GCPPubSubConfig `json:"gcp" yaml:"gcp"`
}

// AWSSQSConfig holds AWS SQS specific settings.
type AWSSQSConfig struct {
	QueueURL        string `json:"queue_url" yaml:"queue_url"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// AWSSNSConfig holds AWS SNS specific settings.
type AWSSNSConfig struct {
	TopicARN        string `json:"topic_arn" yaml:"topic_arn"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// GCPPubSubConfig holds the minimal Pub/Sub topic settings.
type GCPPubSubConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

// LoadConfigs loads publisher definitions from a YAML/JSON file.
// Environment variable references in the file are expanded, so
// credentials can stay out of the file itself.
func LoadConfigs(path string) ([]Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("publishers file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open publishers file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read publishers file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(raw)))

	parsed, err := parseConfigFile(expanded, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Publishers) == 0 {
		return nil, errors.New("publishers file contains no publishers entries")
	}

	out := make([]Config, 0, len(parsed.Publishers))
	ids := make(map[string]struct{}, len(parsed.Publishers))
	for i := range parsed.Publishers {
		cfg := sanitizeConfig(parsed.Publishers[i])
		if err := validateConfig(cfg); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, dup := ids[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate publisher id %q", cfg.ID)
		}
		ids[cfg.ID] = struct{}{}
		out = append(out, cfg)
	}
	return out, nil
}

// parseConfigFile attempts to decode the publishers file content.
func parseConfigFile(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	type decoder struct {
		exts []string
		fn   func([]byte, any) error
	}
	decoders := []decoder{
		{exts: []string{".yaml", ".yml"}, fn: yaml.Unmarshal},
		{exts: []string{".json"}, fn: json.Unmarshal},
	}

	for _, d := range decoders {
		match := ext == ""
		for _, e := range d.exts {
			if e == ext {
				match = true
			}
		}
		if !match {
			continue
		}
		var parsed configFile
		if err := d.fn(data, &parsed); err == nil {
			return parsed, nil
		}
	}

	return configFile{}, errors.New("publishers file format not recognized (expected YAML or JSON)")
}

// sanitizeConfig trims and normalizes the publisher config fields.
func sanitizeConfig(cfg Config) Config {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))

	if cfg.Enabled == nil {
		def := true
		cfg.Enabled = &def
	}
	if cfg.Webhook != nil {
		w := *cfg.Webhook
		w.URL = strings.TrimSpace(w.URL)
		w.Method = strings.ToUpper(strings.TrimSpace(w.Method))
		if w.Method == "" {
			w.Method = webhookDefaultMethod
		}
		w.Headers = sanitizeHeaders(w.Headers)
		if w.TimeoutSeconds <= 0 {
			w.TimeoutSeconds = webhookDefaultTimeoutSeconds
		}
		cfg.Webhook = &w
	}
	if cfg.Queue != nil {
		q := *cfg.Queue
		q.Provider = strings.ToLower(strings.TrimSpace(q.Provider))
		if q.SQS != nil {
			c := *q.SQS
			c.QueueURL = strings.TrimSpace(c.QueueURL)
			c.Region = strings.TrimSpace(c.Region)
			c.AccessKeyID = strings.TrimSpace(c.AccessKeyID)
			c.SecretAccessKey = strings.TrimSpace(c.SecretAccessKey)
			q.SQS = &c
		}
		if q.SNS != nil {
			c := *q.SNS
			c.TopicARN = strings.TrimSpace(c.TopicARN)
			c.Region = strings.TrimSpace(c.Region)
			c.AccessKeyID = strings.TrimSpace(c.AccessKeyID)
			c.SecretAccessKey = strings.TrimSpace(c.SecretAccessKey)
			q.SNS = &c
		}
		if q.GCP != nil {
			c := *q.GCP
			c.ProjectID = strings.TrimSpace(c.ProjectID)
			c.Topic = strings.TrimSpace(c.Topic)
			c.CredentialsFile = strings.TrimSpace(c.CredentialsFile)
			q.GCP = &c
		}
		cfg.Queue = &q
	}

	return cfg
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}

	switch cfg.Type {
	case TypeWebhook:
		if cfg.Webhook == nil {
			return fmt.Errorf("webhook config required for publisher %q", cfg.ID)
		}
		if cfg.Webhook.URL == "" {
			return fmt.Errorf("webhook.url is required for publisher %q", cfg.ID)
		}
	case TypeQueue:
		if cfg.Queue == nil {
			return fmt.Errorf("queue config required for publisher %q", cfg.ID)
		}
		switch cfg.Queue.Provider {
		case QueueProviderAWSSQS:
			return validateSQSConfig(cfg.ID, cfg.Queue.SQS)
		case QueueProviderAWSSNS:
			return validateSNSConfig(cfg.ID, cfg.Queue.SNS)
		case QueueProviderGCP:
			return validateGCPConfig(cfg.ID, cfg.Queue.GCP)
		default:
			return fmt.Errorf("queue provider %q not supported for publisher %q", cfg.Queue.Provider, cfg.ID)
		}
	case "":
		return fmt.Errorf("type is required for publisher %q", cfg.ID)
	default:
		return fmt.Errorf("type %q not supported for publisher %q", cfg.Type, cfg.ID)
	}
	return nil
}

func validateSQSConfig(id string, cfg *AWSSQSConfig) error {
	if cfg == nil {
		return fmt.Errorf("sqs config required for publisher %q", id)
	}
	if cfg.QueueURL == "" {
		return fmt.Errorf("sqs.queue_url is required for publisher %q", id)
	}
	if cfg.Region == "" {
		return fmt.Errorf("sqs.region is required for publisher %q", id)
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return fmt.Errorf("sqs credentials are required for publisher %q", id)
	}
	return nil
}

func validateSNSConfig(id string, cfg *AWSSNSConfig) error {
	if cfg == nil {
		return fmt.Errorf("sns config required for publisher %q", id)
	}
	if cfg.TopicARN == "" {
		return fmt.Errorf("sns.topic_arn is required for publisher %q", id)
	}
	if cfg.Region == "" {
		return fmt.Errorf("sns.region is required for publisher %q", id)
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return fmt.Errorf("sns credentials are required for publisher %q", id)
	}
	return nil
}

func validateGCPConfig(id string, cfg *GCPPubSubConfig) error {
	if cfg == nil {
		return fmt.Errorf("gcp config required for publisher %q", id)
	}
	if cfg.ProjectID == "" {
		return fmt.Errorf("gcp.project_id is required for publisher %q", id)
	}
	if cfg.Topic == "" {
		return fmt.Errorf("gcp.topic is required for publisher %q", id)
	}
	return nil
}

// EnabledValue returns the enabled flag defaulting to true.
func (cfg Config) EnabledValue() bool {
	if cfg.Enabled == nil {
		return true
	}
	return *cfg.Enabled
}

// Enabled filters configs down to the enabled ones.
func Enabled(cfgs []Config) []Config {
	var out []Config
	for _, cfg := range cfgs {
		if cfg.EnabledValue() {
			out = append(out, cfg)
		}
	}
	return out
}
