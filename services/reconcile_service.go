// services/reconcile_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"

	"pgstay-backend/models"
	"pgstay-backend/storage"

	"gorm.io/gorm"
)

// bucketMarker is the path segment that identifies URLs served from our own
// bucket; anything without it (stock photos, external CDNs) is not ours to
// reconcile.
const bucketMarker = "/property-images/"

// deleteBatchSize caps how many keys go into one storage remove call.
const deleteBatchSize = 10

// subPrefixes are the folders walked in addition to the bucket root. The scan
// is deliberately shallow: objects nested any deeper are invisible to it.
var subPrefixes = []string{"properties", "rooms"}

// PropertySource supplies the current property records for reconciliation.
type PropertySource interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
}

// GormPropertySource reads properties (with room types) out of the database.
type GormPropertySource struct {
	DB *gorm.DB
}

func (s GormPropertySource) ListProperties(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	err := s.DB.WithContext(ctx).Preload("RoomTypes").Find(&properties).Error
	return properties, err
}

// CleanupSummary reports a bulk-delete run. A failed batch call counts every
// key in that batch as failed; the storage API gives no per-object status.
type CleanupSummary struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}

// ReconcileService finds and removes bucket objects no property references.
type ReconcileService struct {
	Props PropertySource
	Store storage.ObjectStore
}

func NewReconcileService(db *gorm.DB, store storage.ObjectStore) *ReconcileService {
	return &ReconcileService{Props: GormPropertySource{DB: db}, Store: store}
}

// ExtractStorageKey pulls the bucket key out of an image URL, dropping any
// cache-busting query string. Returns false for malformed URLs and for URLs
// that don't live under our bucket.
func ExtractStorageKey(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		log.Printf("warning: unparseable image url %q: %v", raw, err)
		return "", false
	}

	idx := strings.Index(u.Path, bucketMarker)
	if idx < 0 {
		return "", false
	}

	key := u.Path[idx+len(bucketMarker):]
	if key == "" {
		return "", false
	}
	return key, true
}

// ListAllStorageObjects enumerates the bucket root plus the known sub-folders
// and returns the flat key list in listing order.
func (s *ReconcileService) ListAllStorageObjects(ctx context.Context) ([]string, error) {
	var keys []string

	rootEntries, err := s.Store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list bucket root: %w", err)
	}
	for _, e := range rootEntries {
		// Folder placeholders come back without an object id.
		if e.ID == "" {
			continue
		}
		keys = append(keys, e.Name)
	}

	for _, prefix := range subPrefixes {
		entries, err := s.Store.List(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("list prefix %q: %w", prefix, err)
		}
		for _, e := range entries {
			if e.ID == "" {
				continue
			}
			keys = append(keys, prefix+"/"+e.Name)
		}
	}

	return keys, nil
}

// CollectReferencedKeys unions the storage keys of every image URL on every
// property and room type. URLs outside the bucket are skipped.
func CollectReferencedKeys(properties []models.Property) map[string]struct{} {
	referenced := make(map[string]struct{})

	add := func(urls []string) {
		for _, raw := range urls {
			if key, ok := ExtractStorageKey(raw); ok {
				referenced[key] = struct{}{}
			}
		}
	}

	for i := range properties {
		add(decodeURLList(properties[i].Images))
		for j := range properties[i].RoomTypes {
			add(decodeURLList(properties[i].RoomTypes[j].Images))
		}
	}
	return referenced
}

// FindOrphaned returns the keys present in storage but referenced by no
// property record, in storage listing order.
func (s *ReconcileService) FindOrphaned(ctx context.Context) ([]string, error) {
	stored, err := s.ListAllStorageObjects(ctx)
	if err != nil {
		return nil, err
	}

	properties, err := s.Props.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	referenced := CollectReferencedKeys(properties)

	orphaned := make([]string, 0)
	for _, key := range stored {
		if _, ok := referenced[key]; !ok {
			orphaned = append(orphaned, key)
		}
	}
	return orphaned, nil
}

// DeleteOrphaned removes the given keys in batches. Before deleting it
// re-reads the current references and drops any key that became referenced
// after the scan, so a concurrent property edit can't lose a live image.
// Batch failures are accumulated into the summary, never returned as errors.
func (s *ReconcileService) DeleteOrphaned(ctx context.Context, keys []string) CleanupSummary {
	if len(keys) == 0 {
		return CleanupSummary{}
	}

	if properties, err := s.Props.ListProperties(ctx); err == nil {
		referenced := CollectReferencedKeys(properties)
		safe := keys[:0:0]
		for _, key := range keys {
			if _, ok := referenced[key]; ok {
				log.Printf("skipping %s: referenced again since scan", key)
				continue
			}
			safe = append(safe, key)
		}
		keys = safe
	} else {
		log.Printf("warning: re-check before delete failed, proceeding with scanned set: %v", err)
	}

	return s.deleteBatches(ctx, keys)
}

// DeletePropertyImages eagerly removes a single property's own images (its
// gallery plus every room type's), used when the property itself is deleted.
func (s *ReconcileService) DeletePropertyImages(ctx context.Context, property models.Property) CleanupSummary {
	seen := make(map[string]struct{})
	var keys []string

	collect := func(urls []string) {
		for _, raw := range urls {
			key, ok := ExtractStorageKey(raw)
			if !ok {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}

	collect(decodeURLList(property.Images))
	for i := range property.RoomTypes {
		collect(decodeURLList(property.RoomTypes[i].Images))
	}

	return s.deleteBatches(ctx, keys)
}

// Reconcile runs the full scan-then-delete pass and reports the outcome.
func (s *ReconcileService) Reconcile(ctx context.Context) (CleanupSummary, error) {
	orphaned, err := s.FindOrphaned(ctx)
	if err != nil {
		return CleanupSummary{}, err
	}
	return s.DeleteOrphaned(ctx, orphaned), nil
}

func (s *ReconcileService) deleteBatches(ctx context.Context, keys []string) CleanupSummary {
	summary := CleanupSummary{Total: len(keys)}

	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[start:end]

		if err := s.Store.Remove(ctx, batch); err != nil {
			log.Printf("warning: delete batch of %d failed: %v", len(batch), err)
			summary.Failed += len(batch)
			continue
		}
		summary.Success += len(batch)
	}

	return summary
}

// decodeURLList unpacks a JSON string-array column; a missing or malformed
// column decodes to nothing.
func decodeURLList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil {
		log.Printf("warning: bad image list column: %v", err)
		return nil
	}
	return urls
}
