package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/tagdemo/storefront/internal/core/domain"
)

func TestDataLayerHandler_List(t *testing.T) {
	q := &stubQueue{events: []domain.TagEvent{
		{Name: "search", Payload: map[string]any{"search_query": "usb"}, Timestamp: time.Unix(0, 0)},
	}}
	h := NewDataLayerHandler(q)

	c, rec := newContext(http.MethodGet, "/v1/datalayer", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if q.drained {
		t.Fatalf("list without drain must not empty the queue")
	}

	var resp struct {
		Events  []map[string]any `json:"events"`
		Count   int              `json:"count"`
		Drained bool             `json:"drained"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || resp.Events[0]["event"] != "search" || resp.Events[0]["search_query"] != "usb" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestDataLayerHandler_Drain(t *testing.T) {
	q := &stubQueue{events: []domain.TagEvent{{Name: "search"}}}
	h := NewDataLayerHandler(q)

	c, _ := newContext(http.MethodGet, "/v1/datalayer?drain=true", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !q.drained || len(q.events) != 0 {
		t.Fatalf("expected queue drained")
	}
}

func TestDataLayerHandler_BadDrainFlag(t *testing.T) {
	h := NewDataLayerHandler(&stubQueue{})

	c, _ := newContext(http.MethodGet, "/v1/datalayer?drain=maybe", "")
	if code := httpCode(h.List(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
