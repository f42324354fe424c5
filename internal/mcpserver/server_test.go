package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/halmos/ponens/internal/storage"
	"github.com/halmos/ponens/internal/testutil"
)

func testServer(t *testing.T) (*Server, storage.Provider) {
	t.Helper()
	_, store := testutil.TestCorpus(t)
	srv := New(store, testutil.TestDB(t))
	return srv, store
}

func toolReq(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestVerifyProof_Valid(t *testing.T) {
	srv, _ := testServer(t)
	res, err := srv.verifyProof(context.Background(), toolReq("verify_proof", map[string]interface{}{
		"content": "--- TEST: mp ---\n1. A Premise\n2. (A->(B->A)) AX1\n3. (B->A) MP 1,2\n",
	}))
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "VALID: mp") {
		t.Errorf("text = %q", text)
	}
}

func TestVerifyProof_ReportsFailure(t *testing.T) {
	srv, _ := testServer(t)
	res, err := srv.verifyProof(context.Background(), toolReq("verify_proof", map[string]interface{}{
		"content": "--- TEST: bogus ---\n1. (A->B) AX1\n",
	}))
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "FAILED: bogus") || !strings.Contains(text, "line 1") {
		t.Errorf("text = %q", text)
	}
}

func TestVerifyProof_MissingArgument(t *testing.T) {
	srv, _ := testServer(t)
	res, err := srv.verifyProof(context.Background(), toolReq("verify_proof", map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("missing content should produce a tool error")
	}
}

func TestReadAndListDocuments(t *testing.T) {
	srv, store := testServer(t)
	if err := store.Write("a.proof", []byte("1. A Premise\n")); err != nil {
		t.Fatal(err)
	}

	res, err := srv.readDocument(context.Background(), toolReq("read_document", map[string]interface{}{"path": "a.proof"}))
	if err != nil {
		t.Fatal(err)
	}
	if got := resultText(t, res); got != "1. A Premise\n" {
		t.Errorf("read = %q", got)
	}

	res, err = srv.listDocuments(context.Background(), toolReq("list_documents", map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}
	if got := resultText(t, res); !strings.Contains(got, "a.proof") {
		t.Errorf("list = %q", got)
	}
}

func TestGetProofContract(t *testing.T) {
	srv, _ := testServer(t)
	res, err := srv.getProofContract(context.Background(), toolReq("get_proof_contract", nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := resultText(t, res); !strings.Contains(got, "AX1") {
		t.Errorf("contract = %q", got)
	}
}
