package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Tarun1516/yaakai/domain"
)

// DatabaseAPI implements domain.DocumentStore over Client for a single
// remote database.
type DatabaseAPI struct {
	c          *Client
	databaseID string
}

// NewDatabaseAPI creates the document store adapter.
func NewDatabaseAPI(c *Client, databaseID string) domain.DocumentStore {
	return &DatabaseAPI{c: c, databaseID: databaseID}
}

// documentPayload carries a document's system fields; user fields are
// captured by the enclosing raw map.
type documentPayload map[string]any

type documentListPayload struct {
	Total     int               `json:"total"`
	Documents []documentPayload `json:"documents"`
}

func (d *DatabaseAPI) collectionPath(collectionID string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", d.databaseID, collectionID)
}

func (d *DatabaseAPI) documentPath(collectionID, documentID string) string {
	return d.collectionPath(collectionID) + "/" + documentID
}

// toDocument splits the payload into the document ID and its user
// fields, dropping the backend's $-prefixed system fields.
func toDocument(payload documentPayload) domain.Document {
	doc := domain.Document{Fields: make(map[string]any, len(payload))}
	for k, v := range payload {
		if k == "$id" {
			doc.ID, _ = v.(string)
			continue
		}
		if len(k) > 0 && k[0] == '$' {
			continue
		}
		doc.Fields[k] = v
	}
	return doc
}

// List implements domain.DocumentStore using an equality filter on one
// field, the backend's query syntax for user-scoped listings.
func (d *DatabaseAPI) List(ctx context.Context, collectionID, field, value string) ([]domain.Document, error) {
	q := url.Values{}
	q.Add("queries[]", fmt.Sprintf(`equal("%s", ["%s"])`, field, value))

	var payload documentListPayload
	path := d.collectionPath(collectionID) + "?" + q.Encode()
	if err := d.c.do(ctx, "documents.list", http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(payload.Documents))
	for _, p := range payload.Documents {
		docs = append(docs, toDocument(p))
	}
	return docs, nil
}

// Get implements domain.DocumentStore.
func (d *DatabaseAPI) Get(ctx context.Context, collectionID, documentID string) (*domain.Document, error) {
	var payload documentPayload
	if err := d.c.do(ctx, "documents.get", http.MethodGet, d.documentPath(collectionID, documentID), nil, &payload); err != nil {
		return nil, err
	}

	doc := toDocument(payload)
	return &doc, nil
}

// Create implements domain.DocumentStore with a caller-assigned ID.
func (d *DatabaseAPI) Create(ctx context.Context, collectionID, documentID string, fields map[string]any) (*domain.Document, error) {
	body := map[string]any{
		"documentId": documentID,
		"data":       fields,
	}

	var payload documentPayload
	if err := d.c.do(ctx, "documents.create", http.MethodPost, d.collectionPath(collectionID), body, &payload); err != nil {
		return nil, err
	}

	doc := toDocument(payload)
	return &doc, nil
}

// Update implements domain.DocumentStore; fields is a partial update.
func (d *DatabaseAPI) Update(ctx context.Context, collectionID, documentID string, fields map[string]any) (*domain.Document, error) {
	body := map[string]any{"data": fields}

	var payload documentPayload
	if err := d.c.do(ctx, "documents.update", http.MethodPatch, d.documentPath(collectionID, documentID), body, &payload); err != nil {
		return nil, err
	}

	doc := toDocument(payload)
	return &doc, nil
}

// Delete implements domain.DocumentStore.
func (d *DatabaseAPI) Delete(ctx context.Context, collectionID, documentID string) error {
	return d.c.do(ctx, "documents.delete", http.MethodDelete, d.documentPath(collectionID, documentID), nil, nil)
}
