package postgres

import (
	"context"
	"database/sql"
	"strings"

	"rentloop-payments-backend/internal/repository"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

// GetHostID resolves the property owner across the legacy column shapes:
// the direct host_id wins, then the structured host_ref path, then the
// alternate owner_id and user_id columns.
func (r *propertyRepository) GetHostID(ctx context.Context, propertyID string) (string, error) {
	query := `SELECT host_id, host_ref, owner_id, user_id FROM properties WHERE id = $1`

	var hostID, hostRef, ownerID, userID sql.NullString
	err := r.db.QueryRowContext(ctx, query, propertyID).Scan(&hostID, &hostRef, &ownerID, &userID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if hostID.Valid && hostID.String != "" {
		return hostID.String, nil
	}
	if hostRef.Valid && hostRef.String != "" {
		// Reference paths look like "users/<id>".
		parts := strings.Split(hostRef.String, "/")
		if last := parts[len(parts)-1]; last != "" {
			return last, nil
		}
	}
	if ownerID.Valid && ownerID.String != "" {
		return ownerID.String, nil
	}
	if userID.Valid && userID.String != "" {
		return userID.String, nil
	}
	return "", nil
}
