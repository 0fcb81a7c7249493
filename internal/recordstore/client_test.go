package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientListRecordsPassesFilters(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("assetID")
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(listResponse{Records: []Record{{ID: "r1", Category: CategoryBookings}}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key", time.Second)
	records, err := client.ListRecords(context.Background(), CategoryBookings, map[string]string{"assetID": "a1"})
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(records) != 1 || records[0].ID != "r1" {
		t.Errorf("records = %+v", records)
	}
	if gotPath != "/records/bookings" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "a1" {
		t.Errorf("assetID filter = %q", gotQuery)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("authorization = %q", gotAuth)
	}
}

func TestClientCreateRecordSendsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var rec Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if rec.ID != "a1" || rec.SchemaVersion != CurrentAssetSchema {
			t.Errorf("sent record = %+v", rec)
		}
		json.NewEncoder(w).Encode(rec)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	rec, err := NewRecord("a1", CategoryAssets, CurrentAssetSchema, map[string]string{"id": "a1"})
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	created, err := client.CreateRecord(context.Background(), rec)
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if created.ID != "a1" {
		t.Errorf("created = %+v", created)
	}
}

func TestClientStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such record", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	_, err := client.GetRecord(context.Background(), CategoryAssets, "missing")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("want StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("statusCode = %d", statusErr.StatusCode)
	}
}

func TestClientDeleteRecord(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	if err := client.DeleteRecord(context.Background(), CategoryBookings, "b1"); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/records/bookings/b1" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
}

func TestClientCurrentActor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/actor" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"id": "actor-9", "name": "Dana"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	actor, err := client.CurrentActor(context.Background())
	if err != nil {
		t.Fatalf("CurrentActor: %v", err)
	}
	if actor.ID != "actor-9" || actor.Name != "Dana" {
		t.Errorf("actor = %+v", actor)
	}
}

func TestClientContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	if _, err := client.GetRecord(ctx, CategoryAssets, "a1"); err == nil {
		t.Fatal("cancelled request should fail")
	}
}
