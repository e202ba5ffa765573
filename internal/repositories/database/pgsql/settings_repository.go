package pgsql

import (
	"context"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	"github.com/SscSPs/stock_opname_app/internal/models"
	"github.com/SscSPs/stock_opname_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSettingsRepository keeps one officials_settings row per partition.
type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(db *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) FindOfficials(ctx context.Context, partitionKey string) (*domain.OfficialsSettings, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT partition_key, head_official_name, head_official_nip, keeper_official_name,
		       keeper_official_nip, office_name, office_address, last_updated_at, last_updated_by
		FROM officials_settings
		WHERE partition_key = $1;`, partitionKey)
	if err != nil {
		return nil, mapError(err, "find officials settings")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.OfficialsSettings])
	if err != nil {
		return nil, mapError(err, "find officials settings")
	}
	settings := mapping.ToDomainOfficialsSettings(m)
	return &settings, nil
}

func (r *PgxSettingsRepository) UpsertOfficials(ctx context.Context, s domain.OfficialsSettings) error {
	query := `
		INSERT INTO officials_settings (partition_key, head_official_name, head_official_nip,
			keeper_official_name, keeper_official_nip, office_name, office_address,
			last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (partition_key) DO UPDATE SET
			head_official_name = EXCLUDED.head_official_name,
			head_official_nip = EXCLUDED.head_official_nip,
			keeper_official_name = EXCLUDED.keeper_official_name,
			keeper_official_nip = EXCLUDED.keeper_official_nip,
			office_name = EXCLUDED.office_name,
			office_address = EXCLUDED.office_address,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		s.PartitionKey,
		s.HeadOfficialName,
		s.HeadOfficialNIP,
		s.KeeperOfficialName,
		s.KeeperOfficialNIP,
		s.OfficeName,
		s.OfficeAddress,
		s.LastUpdatedAt,
		s.LastUpdatedBy,
	)
	return mapError(err, "upsert officials settings")
}
