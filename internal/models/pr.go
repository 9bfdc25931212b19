package models

// TriggerAction is the pull request event action that started the run.
type TriggerAction string

const (
	ActionOpened      TriggerAction = "opened"
	ActionSynchronize TriggerAction = "synchronize"
	ActionOther       TriggerAction = "other"
)

type (
	// PullRequestContext identifies the pull request under review. It is
	// built once from the trigger payload and read-only afterwards.
	PullRequestContext struct {
		Owner       string
		Repo        string
		Number      int
		Title       string
		Description string
		Action      TriggerAction
	}

	// ExistingComment is a review comment already present on the PR.
	ExistingComment struct {
		ID   int64
		Body string
	}

	// PRDetails is the headline pair fetched from the host. The trigger
	// payload can be stale for synchronize events, so the pipeline refreshes
	// title and description before prompting.
	PRDetails struct {
		Title       string
		Description string
	}
)

// Supported reports whether the action is one the pipeline reviews.
func (a TriggerAction) Supported() bool {
	return a == ActionOpened || a == ActionSynchronize
}
