// README: Firestore record store; one document per sample under users/{uid}/locations.
package record

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// FirestoreStore appends records as documents of the per-user locations
// subcollection. Field names match what the mobile timeline already reads.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

type locationDoc struct {
	Latitude  float64   `firestore:"latitude"`
	Longitude float64   `firestore:"longitude"`
	Timestamp time.Time `firestore:"timestamp"`
	PlaceName string    `firestore:"placeName"`
	Category  string    `firestore:"category"`
	Accuracy  float64   `firestore:"accuracy"`
}

func (s *FirestoreStore) locations(userID string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(userID).Collection("locations")
}

func (s *FirestoreStore) Append(ctx context.Context, userID string, rec Record) error {
	doc := locationDoc{
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		Timestamp: rec.RecordedAt,
		PlaceName: rec.PlaceName,
		Category:  rec.Category,
		Accuracy:  rec.AccuracyM,
	}
	if _, _, err := s.locations(userID).Add(ctx, doc); err != nil {
		return fmt.Errorf("appending location record: %w", err)
	}
	return nil
}

func (s *FirestoreStore) QueryRecent(ctx context.Context, userID string, limit int) ([]Record, error) {
	iter := s.locations(userID).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var out []Record
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("querying location records: %w", err)
		}
		var doc locationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decoding location record %s: %w", snap.Ref.ID, err)
		}
		out = append(out, Record{
			Latitude:   doc.Latitude,
			Longitude:  doc.Longitude,
			RecordedAt: doc.Timestamp,
			PlaceName:  doc.PlaceName,
			Category:   doc.Category,
			AccuracyM:  doc.Accuracy,
		})
	}
	return out, nil
}
