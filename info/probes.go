package info

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type probePayload struct {
	Status  string   `json:"status"`
	Details []string `json:"details,omitempty"`
}

func (ih *InfoHandler) respondProbe(w http.ResponseWriter, r *http.Request, statusCode int, state string, details ...string) {
	payload := probePayload{Status: state}
	if len(details) > 0 {
		payload.Details = append(payload.Details, details...)
	}
	ih.RespondWithJSON(w, r, statusCode, payload)
}

// runChecks runs checks in order under one shared timeout and returns the
// names of the checks that passed. It stops at the first failure.
func (ih *InfoHandler) runChecks(ctx context.Context, checks []Check) ([]string, error) {
	if len(checks) == 0 {
		return nil, nil
	}

	timeout := ih.probeTimeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	passed := make([]string, 0, len(checks))
	for _, check := range checks {
		if err := check.Probe(probeCtx); err != nil {
			switch {
			case errors.Is(err, context.DeadlineExceeded):
				return passed, fmt.Errorf("%s check timed out after %s", check.Name, timeout)
			case errors.Is(err, context.Canceled):
				return passed, fmt.Errorf("%s check was cancelled", check.Name)
			default:
				return passed, fmt.Errorf("%s check failed: %w", check.Name, err)
			}
		}
		passed = append(passed, check.Name)
	}
	return passed, nil
}

func filterChecks(checks []Check) []Check {
	filtered := make([]Check, 0, len(checks))
	for i, check := range checks {
		if check.Probe == nil {
			continue
		}
		if check.Name == "" {
			check.Name = fmt.Sprintf("probe %d", i+1)
		}
		filtered = append(filtered, check)
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
