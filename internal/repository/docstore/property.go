package docstore

import (
	"context"
	"errors"
	"strings"

	"rentloop-payments-backend/internal/docstore"
	"rentloop-payments-backend/internal/repository"
)

const propertiesCollection = "properties"

// Property documents accumulated three owner-reference shapes over the life
// of the mobile app. Resolution order is fixed: the direct hostId field wins,
// then a structured host reference, then the alternate owner-field names.
var ownerFallbackFields = []string{"ownerId", "userId"}

type propertyRepository struct {
	store docstore.Store
}

func NewPropertyRepository(store docstore.Store) repository.PropertyRepository {
	return &propertyRepository{store: store}
}

func (r *propertyRepository) GetHostID(ctx context.Context, propertyID string) (string, error) {
	data, err := r.store.Get(ctx, propertiesCollection, propertyID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	if hostID, ok := data["hostId"].(string); ok && hostID != "" {
		return hostID, nil
	}

	if ref, ok := data["host"].(map[string]interface{}); ok {
		if id, ok := ref["id"].(string); ok && id != "" {
			return id, nil
		}
		if path, ok := ref["path"].(string); ok && path != "" {
			// Reference paths look like "users/<id>".
			parts := strings.Split(path, "/")
			if last := parts[len(parts)-1]; last != "" {
				return last, nil
			}
		}
	}

	for _, field := range ownerFallbackFields {
		if id, ok := data[field].(string); ok && id != "" {
			return id, nil
		}
	}

	return "", nil
}
