package webhook

// Provider names, also used as rate-limit keys.
const (
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"
)

// pushEvent is the part of a push payload the handler needs.
type pushEvent struct {
	Provider   string
	Repository string
	Branch     string
	Commit     string
}

type pushResp struct {
	Status     string `json:"status"`
	Repository string `json:"repository,omitempty"`
	Branch     string `json:"branch,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Added      int    `json:"added"`
	Completed  int    `json:"completed"`
	Skipped    int    `json:"skipped"`
	Written    bool   `json:"written"`
}
