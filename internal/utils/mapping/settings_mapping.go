package mapping

import (
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/models"
)

func ToDomainOfficialsSettings(m models.OfficialsSettings) domain.OfficialsSettings {
	return domain.OfficialsSettings{
		PartitionKey:       m.PartitionKey,
		HeadOfficialName:   m.HeadOfficialName,
		HeadOfficialNIP:    m.HeadOfficialNIP,
		KeeperOfficialName: m.KeeperOfficialName,
		KeeperOfficialNIP:  m.KeeperOfficialNIP,
		OfficeName:         m.OfficeName,
		OfficeAddress:      m.OfficeAddress,
		LastUpdatedAt:      m.LastUpdatedAt,
		LastUpdatedBy:      m.LastUpdatedBy,
	}
}
