package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentloop-payments-backend/internal/docstore"
)

func TestPropertyRepository_GetHostID(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		doc  map[string]interface{}
		want string
	}{
		{
			name: "direct hostId field",
			doc:  map[string]interface{}{"hostId": "host-1", "ownerId": "owner-1"},
			want: "host-1",
		},
		{
			name: "structured host reference id",
			doc: map[string]interface{}{
				"host": map[string]interface{}{"id": "host-2"},
			},
			want: "host-2",
		},
		{
			name: "structured host reference path",
			doc: map[string]interface{}{
				"host": map[string]interface{}{"path": "users/host-3"},
			},
			want: "host-3",
		},
		{
			name: "ownerId fallback",
			doc:  map[string]interface{}{"ownerId": "owner-4", "userId": "user-4"},
			want: "owner-4",
		},
		{
			name: "userId fallback",
			doc:  map[string]interface{}{"userId": "user-5"},
			want: "user-5",
		},
		{
			name: "direct field wins over structured reference",
			doc: map[string]interface{}{
				"hostId": "host-6",
				"host":   map[string]interface{}{"id": "other"},
			},
			want: "host-6",
		},
		{
			name: "no owner reference at all",
			doc:  map[string]interface{}{"title": "Cabin by the lake"},
			want: "",
		},
		{
			name: "empty strings are skipped",
			doc:  map[string]interface{}{"hostId": "", "ownerId": "owner-8"},
			want: "owner-8",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := docstore.NewMemoryStore()
			repo := NewPropertyRepository(store)
			require.NoError(t, store.Set(ctx, "properties", "prop-1", tc.doc))

			hostID, err := repo.GetHostID(ctx, "prop-1")

			require.NoError(t, err)
			assert.Equal(t, tc.want, hostID)
		})
	}

	t.Run("missing property is not an error", func(t *testing.T) {
		repo := NewPropertyRepository(docstore.NewMemoryStore())

		hostID, err := repo.GetHostID(ctx, "prop-missing")

		require.NoError(t, err)
		assert.Empty(t, hostID)
	})
}
