package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"pgstay-backend/models"
	"pgstay-backend/services"
	"pgstay-backend/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeObjectStore struct {
	objects map[string][]storage.ObjectEntry

	removeCalls [][]string
	failOnCall  int // 1-indexed; 0 means never fail
}

func (f *fakeObjectStore) List(ctx context.Context, prefix string) ([]storage.ObjectEntry, error) {
	return f.objects[prefix], nil
}

func (f *fakeObjectStore) Remove(ctx context.Context, keys []string) error {
	f.removeCalls = append(f.removeCalls, keys)
	if f.failOnCall != 0 && len(f.removeCalls) == f.failOnCall {
		return errors.New("storage api unavailable")
	}
	return nil
}

type fakePropertySource struct {
	properties []models.Property
	err        error
}

func (f *fakePropertySource) ListProperties(ctx context.Context) ([]models.Property, error) {
	return f.properties, f.err
}

func urlList(t *testing.T, urls ...string) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(urls)
	require.NoError(t, err)
	return datatypes.JSON(raw)
}

func bucketURL(key string) string {
	return "https://abc.supabase.co/storage/v1/object/public/property-images/" + key
}

func entries(names ...string) []storage.ObjectEntry {
	out := make([]storage.ObjectEntry, 0, len(names))
	for i, name := range names {
		out = append(out, storage.ObjectEntry{Name: name, ID: fmt.Sprintf("obj-%d", i)})
	}
	return out
}

func TestExtractStorageKey(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantKey string
		wantOK  bool
	}{
		{"managed url", bucketURL("properties/1.jpg"), "properties/1.jpg", true},
		{"cache buster stripped", bucketURL("properties/1.jpg") + "?t=1699999999", "properties/1.jpg", true},
		{"external stock photo", "https://images.unsplash.com/photo-12345?w=800", "", false},
		{"empty string", "", "", false},
		{"marker but no key", "https://abc.supabase.co/storage/v1/object/public/property-images/", "", false},
		{"malformed url", "https://abc.supabase.co/%zz/property-images/x.jpg", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := services.ExtractStorageKey(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestFindOrphaned(t *testing.T) {
	store := &fakeObjectStore{objects: map[string][]storage.ObjectEntry{
		"": entries("a.jpg", "b.jpg", "c.jpg"),
	}}
	props := &fakePropertySource{properties: []models.Property{
		{Images: urlList(t, bucketURL("b.jpg"), "https://images.unsplash.com/external.jpg")},
	}}
	svc := &services.ReconcileService{Props: props, Store: store}

	orphaned, err := svc.FindOrphaned(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, orphaned)
}

func TestFindOrphaned_WalksSubPrefixes(t *testing.T) {
	store := &fakeObjectStore{objects: map[string][]storage.ObjectEntry{
		"": {
			{Name: "loose.jpg", ID: "obj-root"},
			{Name: "properties"}, // folder placeholder, no id
		},
		"properties": entries("p1.jpg"),
		"rooms":      entries("r1.jpg"),
	}}
	props := &fakePropertySource{properties: []models.Property{
		{RoomTypes: []models.RoomType{{Images: urlList(t, bucketURL("rooms/r1.jpg"))}}},
	}}
	svc := &services.ReconcileService{Props: props, Store: store}

	orphaned, err := svc.FindOrphaned(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"loose.jpg", "properties/p1.jpg"}, orphaned)
}

func TestDeleteOrphaned_EmptyInputSkipsStore(t *testing.T) {
	store := &fakeObjectStore{}
	svc := &services.ReconcileService{Props: &fakePropertySource{}, Store: store}

	summary := svc.DeleteOrphaned(context.Background(), nil)

	assert.Equal(t, services.CleanupSummary{}, summary)
	assert.Empty(t, store.removeCalls)
}

func TestDeleteOrphaned_BatchesAndCoarseFailure(t *testing.T) {
	keys := make([]string, 25)
	for i := range keys {
		keys[i] = fmt.Sprintf("old/%d.jpg", i)
	}

	store := &fakeObjectStore{failOnCall: 2}
	svc := &services.ReconcileService{Props: &fakePropertySource{}, Store: store}

	summary := svc.DeleteOrphaned(context.Background(), keys)

	require.Len(t, store.removeCalls, 3)
	assert.Len(t, store.removeCalls[0], 10)
	assert.Len(t, store.removeCalls[1], 10)
	assert.Len(t, store.removeCalls[2], 5)

	// The failed call blames its whole batch; the run still completes.
	assert.Equal(t, services.CleanupSummary{Success: 15, Failed: 10, Total: 25}, summary)
}

func TestDeleteOrphaned_RecheckDropsNewlyReferencedKeys(t *testing.T) {
	// "a.jpg" was orphaned at scan time but got attached to a property before
	// the delete ran; it must survive.
	store := &fakeObjectStore{}
	props := &fakePropertySource{properties: []models.Property{
		{Images: urlList(t, bucketURL("a.jpg"))},
	}}
	svc := &services.ReconcileService{Props: props, Store: store}

	summary := svc.DeleteOrphaned(context.Background(), []string{"a.jpg", "b.jpg"})

	require.Len(t, store.removeCalls, 1)
	assert.Equal(t, []string{"b.jpg"}, store.removeCalls[0])
	assert.Equal(t, services.CleanupSummary{Success: 1, Failed: 0, Total: 1}, summary)
}

func TestDeletePropertyImages_DedupsAndFiltersForeign(t *testing.T) {
	store := &fakeObjectStore{}
	svc := &services.ReconcileService{Props: &fakePropertySource{}, Store: store}

	property := models.Property{
		Images: urlList(t,
			bucketURL("properties/main.jpg"),
			bucketURL("properties/main.jpg"), // duplicate
			"https://images.unsplash.com/stock.jpg",
			"",
		),
		RoomTypes: []models.RoomType{
			{Images: urlList(t, bucketURL("rooms/single.jpg"))},
		},
	}

	summary := svc.DeletePropertyImages(context.Background(), property)

	require.Len(t, store.removeCalls, 1)
	assert.Equal(t, []string{"properties/main.jpg", "rooms/single.jpg"}, store.removeCalls[0])
	assert.Equal(t, services.CleanupSummary{Success: 2, Failed: 0, Total: 2}, summary)
}

func TestCollectReferencedKeys(t *testing.T) {
	properties := []models.Property{
		{
			Images: urlList(t, bucketURL("a.jpg"), "https://cdn.example.com/not-ours.jpg"),
			RoomTypes: []models.RoomType{
				{Images: urlList(t, bucketURL("rooms/b.jpg"))},
			},
		},
		{Images: urlList(t, bucketURL("a.jpg"))},
	}

	referenced := services.CollectReferencedKeys(properties)

	assert.Len(t, referenced, 2)
	assert.Contains(t, referenced, "a.jpg")
	assert.Contains(t, referenced, "rooms/b.jpg")
}
