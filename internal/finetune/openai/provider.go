package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/kiranshivaraju/tunehub/internal/config"
	"github.com/kiranshivaraju/tunehub/pkg/models"
)

var parameters = models.MustParameterSchema(
	models.OptionalParam("epochs", models.ParameterInt, "Number of epochs to train the model"),
	models.OptionalParam("learning_rate_multiplier", models.ParameterFloat, "Scaling factor for the learning rate"),
	models.OptionalParam("batch_size", models.ParameterInt, "Number of examples in each batch"),
	models.OptionalParam("seed", models.ParameterInt, "Random seed for reproducible training"),
)

// Provider implements models.FinetuneProvider using the OpenAI fine-tuning API.
type Provider struct {
	client Client
}

func NewProvider(cfg config.OpenAIConfig) *Provider {
	return &Provider{client: NewHTTPClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout)}
}

// NewProviderWithClient uses an existing API client.
func NewProviderWithClient(c Client) *Provider {
	return &Provider{client: c}
}

func (p *Provider) Name() string { return "openai" }

func (p *Provider) AvailableParameters() models.ParameterSchema { return parameters }

func (p *Provider) NewAdapter(record *models.Finetune) models.FinetuneAdapter {
	return &Adapter{record: record, client: p.client}
}

// Adapter runs one fine-tuning job on OpenAI.
type Adapter struct {
	record *models.Finetune
	client Client
}

func (a *Adapter) Finetune() *models.Finetune { return a.record }

// Start uploads the train (and validation) splits as chat JSONL and creates the job.
func (a *Adapter) Start(ctx context.Context, dataset models.Dataset) error {
	splits := dataset.SplitContents()

	trainFile, err := a.upload(ctx, a.record.TrainSplitName, splits[a.record.TrainSplitName])
	if err != nil {
		return fmt.Errorf("uploading train split: %w", err)
	}

	req := CreateJobRequest{
		Model:        a.record.BaseModelID,
		TrainingFile: trainFile,
		Suffix:       "tunehub-" + a.record.ID.String()[:8],
	}

	if name := a.record.ValidationSplitName; name != nil && *name != "" {
		validationFile, err := a.upload(ctx, *name, splits[*name])
		if err != nil {
			return fmt.Errorf("uploading validation split: %w", err)
		}
		req.ValidationFile = validationFile
	}

	params := a.record.Parameters
	var hp Hyperparameters
	var hasHP bool
	if v, ok := params["epochs"].AsInt(); ok {
		hp.NEpochs, hasHP = &v, true
	}
	if v, ok := params["learning_rate_multiplier"].AsFloat(); ok {
		hp.LearningRateMultiplier, hasHP = &v, true
	}
	if v, ok := params["batch_size"].AsInt(); ok {
		hp.BatchSize, hasHP = &v, true
	}
	if hasHP {
		req.Hyperparameters = &hp
	}
	if v, ok := params["seed"].AsInt(); ok {
		req.Seed = &v
	}

	job, err := a.client.CreateJob(ctx, req)
	if err != nil {
		return fmt.Errorf("creating fine-tuning job: %w", err)
	}

	a.record.ProviderID = job.ID
	return nil
}

// Status maps the OpenAI job state onto the common status set.
func (a *Adapter) Status(ctx context.Context) models.FinetuneStatus {
	if a.record.ProviderID == "" {
		return models.FinetuneStatus{Status: models.FinetuneStatusUnknown, Message: "Job has not been started"}
	}

	job, err := a.client.GetJob(ctx, a.record.ProviderID)
	if err != nil {
		return models.FinetuneStatus{
			Status:  models.FinetuneStatusUnknown,
			Message: fmt.Sprintf("Error retrieving job status: %v", err),
		}
	}

	switch job.Status {
	case "validating_files", "queued":
		return models.FinetuneStatus{Status: models.FinetuneStatusPending, Message: "Job is " + job.Status}
	case "running":
		return models.FinetuneStatus{Status: models.FinetuneStatusRunning, Message: "Job is running"}
	case "succeeded":
		msg := "Job completed"
		if job.FineTunedModel != "" {
			msg += ": fine-tuned model " + job.FineTunedModel
		}
		return models.FinetuneStatus{Status: models.FinetuneStatusCompleted, Message: msg}
	case "failed":
		msg := "Job failed"
		if job.Error != nil && job.Error.Message != "" {
			msg += ": " + job.Error.Message
		}
		return models.FinetuneStatus{Status: models.FinetuneStatusFailed, Message: msg}
	case "cancelled":
		return models.FinetuneStatus{Status: models.FinetuneStatusFailed, Message: "Job was cancelled"}
	default:
		return models.FinetuneStatus{
			Status:  models.FinetuneStatusUnknown,
			Message: fmt.Sprintf("Unknown OpenAI job status %q", job.Status),
		}
	}
}

func (a *Adapter) upload(ctx context.Context, split string, examples []models.Example) (string, error) {
	content, err := chatJSONL(a.record.SystemMessage, examples)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s_%s.jsonl", a.record.DatasetSplitID, split)
	return a.client.UploadFile(ctx, filename, content)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatLine struct {
	Messages []chatMessage `json:"messages"`
}

// chatJSONL renders examples in the OpenAI chat fine-tuning format, one JSON object per line.
func chatJSONL(system string, examples []models.Example) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, ex := range examples {
		line := chatLine{Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: ex.Input},
			{Role: "assistant", Content: ex.Output},
		}}
		if err := enc.Encode(line); err != nil {
			return nil, fmt.Errorf("encoding example: %w", err)
		}
	}
	return buf.Bytes(), nil
}

var (
	_ models.FinetuneProvider = (*Provider)(nil)
	_ models.FinetuneAdapter  = (*Adapter)(nil)
)
