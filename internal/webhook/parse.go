package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
)

func parseGitHubPush(payload []byte) (pushEvent, error) {
	var event struct {
		Ref        string `json:"ref"`
		After      string `json:"after"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return pushEvent{}, fmt.Errorf("parse github push: %w", err)
	}
	return pushEvent{
		Provider:   ProviderGitHub,
		Repository: event.Repository.FullName,
		Branch:     strings.TrimPrefix(event.Ref, "refs/heads/"),
		Commit:     event.After,
	}, nil
}

func parseGitLabPush(payload []byte) (pushEvent, error) {
	var event struct {
		Ref         string `json:"ref"`
		CheckoutSHA string `json:"checkout_sha"`
		Project     struct {
			PathWithNamespace string `json:"path_with_namespace"`
		} `json:"project"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return pushEvent{}, fmt.Errorf("parse gitlab push: %w", err)
	}
	return pushEvent{
		Provider:   ProviderGitLab,
		Repository: event.Project.PathWithNamespace,
		Branch:     strings.TrimPrefix(event.Ref, "refs/heads/"),
		Commit:     event.CheckoutSHA,
	}, nil
}
