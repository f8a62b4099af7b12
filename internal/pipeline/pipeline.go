// Package pipeline orchestrates a single respond run from trigger comment
// to published answer.
package pipeline

import (
	"context"
	"errors"

	"github.com/threadsage/threadsage/internal/command"
	"github.com/threadsage/threadsage/internal/config"
	"github.com/threadsage/threadsage/internal/ghoutput"
	"github.com/threadsage/threadsage/internal/github"
	"github.com/threadsage/threadsage/internal/llm"
	"github.com/threadsage/threadsage/internal/logging"
	"github.com/threadsage/threadsage/internal/models"
	"github.com/threadsage/threadsage/internal/prompt"
	"github.com/threadsage/threadsage/internal/publish"
	"github.com/threadsage/threadsage/internal/thread"
)

// Pipeline runs the respond flow for one trigger comment
type Pipeline struct {
	config    *config.Config
	thread    *thread.Builder
	publisher *publish.Publisher
	generator llm.Generator
}

// New creates a pipeline backed by the real GitHub API and model backend
func New(cfg *config.Config) (*Pipeline, error) {
	generator, err := llm.New(cfg)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(cfg.GitHub.Token)
	return NewWithComponents(cfg, client, client, generator), nil
}

// NewWithComponents creates a pipeline with provided collaborators
func NewWithComponents(cfg *config.Config, reader thread.IssueReader, store publish.CommentStore, generator llm.Generator) *Pipeline {
	return &Pipeline{
		config:    cfg,
		thread:    thread.NewBuilder(reader, cfg.Trigger),
		publisher: publish.NewPublisher(store),
		generator: generator,
	}
}

// Run processes the trigger comment and publishes at most one reply.
// A nil return means the run finished as intended, including the paths
// that reply with usage help instead of an answer.
func (p *Pipeline) Run(ctx context.Context) error {
	ev := &p.config.Event

	// Ignore comments that do not address the bot
	if !command.HasTrigger(ev.CommentBody, p.config.Trigger) {
		logging.Info("Comment does not start with trigger, skipping",
			"issue", ev.IssueNumber,
			"trigger", p.config.Trigger)
		p.writeOutputs(ghoutput.Result{Status: "skipped"})
		return nil
	}

	cmd, err := command.Parse(ev.CommentBody, p.config.Trigger, p.config.Models)
	if err != nil {
		if errors.Is(err, command.ErrEmptyPrompt) {
			logging.Info("Trigger carried no question, publishing usage help",
				"issue", ev.IssueNumber)
			body := publish.FormatUsageHelp(ev.CommentAuthor, p.config.Trigger, p.config.Models.Aliases())
			commentID := p.publishNotice(ctx, ev, body)
			p.writeOutputs(ghoutput.Result{Status: "help", CommentID: commentID})
			return nil
		}
		return p.reportFailure(ctx, ev, err)
	}

	cmd.Model, err = p.config.Models.Resolve(cmd.Alias)
	if err != nil {
		var unknownErr *models.UnknownModelError
		if errors.As(err, &unknownErr) {
			logging.Info("No model registered for alias",
				"issue", ev.IssueNumber,
				"alias", unknownErr.Alias)
			body := publish.FormatUnknownModel(ev.CommentAuthor, unknownErr.Alias, p.config.Models.Aliases())
			commentID := p.publishNotice(ctx, ev, body)
			p.writeOutputs(ghoutput.Result{Status: "unknown-model", CommentID: commentID})
			return nil
		}
		return p.reportFailure(ctx, ev, err)
	}

	ic, err := p.thread.Build(ctx, ev.Owner, ev.Repo, ev.IssueNumber)
	if err != nil {
		return p.reportFailure(ctx, ev, err)
	}

	promptText, promptSource := prompt.Resolve(p.config)
	system := promptText + "\n\n" + thread.Serialize(ic)

	logging.Info("Generating response",
		"issue", ev.IssueNumber,
		"alias", cmd.Alias,
		"model", cmd.Model,
		"prompt_source", promptSource,
		"history_entries", len(ic.History))

	answer, err := p.generator.Generate(ctx, llm.Request{
		Model:  cmd.Model,
		System: system,
		Prompt: cmd.Prompt,
	})
	if err != nil {
		var genErr *llm.GenerationError
		if errors.As(err, &genErr) {
			logging.Error("Model backend rejected the request",
				"issue", ev.IssueNumber,
				"model", cmd.Model,
				"error", genErr.Message)
			body := publish.FormatGenerationFailure(ev.CommentAuthor, genErr.Message)
			commentID := p.publishNotice(ctx, ev, body)
			p.writeOutputs(ghoutput.Result{Status: "error", CommentID: commentID, Model: cmd.Model})
			return err
		}
		return p.reportFailure(ctx, ev, err)
	}

	body := publish.FormatAnswer(ev.CommentAuthor, answer, cmd.Model)
	commentID, err := p.publisher.Publish(ctx, ev, body)
	if err != nil {
		p.writeOutputs(ghoutput.Result{Status: "error", Model: cmd.Model})
		return err
	}

	logging.Info("Published answer",
		"issue", ev.IssueNumber,
		"comment_id", commentID,
		"model", cmd.Model)
	p.writeOutputs(ghoutput.Result{Status: "answered", CommentID: commentID, Model: cmd.Model})
	return nil
}

// reportFailure posts a best-effort notice so the thread is not left silent,
// then hands the original error back to the caller.
func (p *Pipeline) reportFailure(ctx context.Context, ev *models.TriggerEvent, err error) error {
	logging.Error("Respond run failed", "issue", ev.IssueNumber, "error", err)
	commentID := p.publishNotice(ctx, ev, publish.FormatGenericFailure(ev.CommentAuthor))
	p.writeOutputs(ghoutput.Result{Status: "error", CommentID: commentID})
	return err
}

// publishNotice posts a help or failure comment. Publish errors are logged
// and swallowed so advisory replies never change the run outcome.
func (p *Pipeline) publishNotice(ctx context.Context, ev *models.TriggerEvent, body string) int64 {
	commentID, err := p.publisher.Publish(ctx, ev, body)
	if err != nil {
		logging.Warn("Failed to publish notice comment",
			"issue", ev.IssueNumber,
			"error", err)
		return 0
	}
	return commentID
}

func (p *Pipeline) writeOutputs(r ghoutput.Result) {
	if err := ghoutput.WriteResult(r); err != nil {
		logging.Warn("Failed to write workflow outputs", "error", err)
	}
}
