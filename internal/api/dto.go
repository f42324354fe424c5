package api

import (
	"github.com/halmos/ponens/internal/index"
	"github.com/halmos/ponens/internal/runner"
)

// VerdictListResponse is the payload of GET /verdicts.
type VerdictListResponse struct {
	Verdicts []index.VerdictRow `json:"verdicts"`
	Total    int                `json:"total"`
}

// VerifyRequest is the body of POST /verify and PUT /documents/*.
type VerifyRequest struct {
	Content string `json:"content"`
}

// VerifyResponse is the payload of POST /verify.
type VerifyResponse struct {
	Results []runner.Result `json:"results"`
}
