package llm

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCompletionRequestDeterministicSettings(t *testing.T) {
	c := &AzureClient{deployment: "extract-deploy"}
	req := c.newRequest(nil)

	if req.Temperature <= 0 || req.Temperature > 1e-30 {
		t.Errorf("Temperature = %v, want an effectively-zero positive value", req.Temperature)
	}
	if req.TopP != 1 {
		t.Errorf("TopP = %v, want 1", req.TopP)
	}
	if req.Seed == nil || *req.Seed != completionSeed {
		t.Errorf("Seed = %v, want %d", req.Seed, completionSeed)
	}

	// All three sampling settings must survive marshaling into the request
	// body; omitempty would drop a literal zero temperature
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	body := string(data)
	for _, key := range []string{`"temperature"`, `"top_p":1`, `"seed":42`} {
		if !strings.Contains(body, key) {
			t.Errorf("request body missing %s: %s", key, body)
		}
	}
	if !strings.Contains(body, `"json_object"`) {
		t.Errorf("request body missing JSON response format: %s", body)
	}
}
