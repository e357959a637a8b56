package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLocationsCommand(t *testing.T) {
	out, err := execute(t, "locations")
	if err != nil {
		t.Fatalf("locations: %v", err)
	}
	if !strings.Contains(out, `"code": "rotterdam"`) {
		t.Fatalf("expected rotterdam in output: %s", out)
	}
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := execute(t, "analyze", "new-york", "51.5074,-0.1278", "--weight", "10")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var res map[string]any
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res["recommended"] != "DRONE" {
		t.Fatalf("expected DRONE, got %v", res["recommended"])
	}
}

func TestQuoteCommand(t *testing.T) {
	out, err := execute(t, "quote", "chicago", "denver", "-w", "1000", "--type", "express")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	var res struct {
		Strategy string `json:"strategy"`
		Shipment struct {
			ShipmentType string `json:"shipment_type"`
		} `json:"shipment"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Strategy != "Ground Shipping" || res.Shipment.ShipmentType != "EXPRESS" {
		t.Fatalf("unexpected quote: %+v", res)
	}
}

func TestQuoteCommandErrors(t *testing.T) {
	if _, err := execute(t, "quote", "chicago", "denver"); err == nil {
		t.Fatal("expected missing --weight to fail")
	}
	if _, err := execute(t, "quote", "chicago", "london", "-w", "10000"); err == nil {
		t.Fatal("expected unroutable shipment to fail")
	}
	if _, err := execute(t, "quote", "abc,def", "denver", "-w", "10"); err == nil {
		t.Fatal("expected bad coordinates to fail")
	}
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "-w", "1000", "-d", "500")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if strings.Count(out, `"kind"`) != 3 {
		t.Fatalf("expected three options: %s", out)
	}
}

func TestSimulateCommand(t *testing.T) {
	out, err := execute(t, "simulate", "chicago", "denver", "-w", "1000", "--steps", "3")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	var res struct {
		Updates []struct {
			ShipmentStatus string `json:"shipment_status"`
		} `json:"updates"`
		Shipment struct {
			Status string `json:"status"`
		} `json:"shipment"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Updates) != 3 || res.Shipment.Status != "DELIVERED" {
		t.Fatalf("unexpected simulation: %+v", res)
	}
}
