package event

import (
	"encoding/json"
	"os"

	"github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/models"
)

// payload mirrors the fields of the pull_request webhook event the action
// needs. GitHub writes the full document to GITHUB_EVENT_PATH; everything
// else in it is ignored.
type payload struct {
	Action      string `json:"action"`
	Number      int    `json:"number"`
	PullRequest struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		Body   string `json:"body"`
	} `json:"pull_request"`
	Repository struct {
		Name  string `json:"name"`
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"repository"`
}

// Read loads the trigger payload and extracts the pull request coordinates.
// Unsupported actions are not an error here; the caller checks
// ctx.Action.Supported() and ends the run quietly.
func Read(path string) (*models.PullRequestContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ErrEventPayloadInvalid.
			WithError(err).
			WithContext("event_path", path)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.ErrEventPayloadInvalid.
			WithError(err).
			WithContext("event_path", path)
	}

	number := p.Number
	if number == 0 {
		number = p.PullRequest.Number
	}

	prCtx := &models.PullRequestContext{
		Owner:       p.Repository.Owner.Login,
		Repo:        p.Repository.Name,
		Number:      number,
		Title:       p.PullRequest.Title,
		Description: p.PullRequest.Body,
		Action:      parseAction(p.Action),
	}

	if prCtx.Owner == "" || prCtx.Repo == "" || prCtx.Number == 0 {
		return nil, errors.ErrEventIncomplete.
			WithContext("owner", prCtx.Owner).
			WithContext("repo", prCtx.Repo).
			WithContext("pr_number", prCtx.Number)
	}

	return prCtx, nil
}

func parseAction(action string) models.TriggerAction {
	switch action {
	case "opened":
		return models.ActionOpened
	case "synchronize":
		return models.ActionSynchronize
	default:
		return models.ActionOther
	}
}
