package memory

import "partner-quadrant-service/internal/domain"

// DemoPortfolio returns the partner set the database migrations seed, for
// running without PostgreSQL.
func DemoPortfolio() []*domain.Partner {
	rows := []struct {
		name                       string
		lead, invest, engage, algn int
		size                       domain.CompanySize
	}{
		{"VTEX", 5, 4, 5, 5, domain.SizeGG},
		{"Koin", 4, 5, 4, 4, domain.SizeG},
		{"Google", 5, 1, 1, 1, domain.SizeGG},
		{"Wake", 4, 3, 4, 5, domain.SizeG},
		{"Uappi", 5, 3, 4, 4, domain.SizeG},
	}

	partners := make([]*domain.Partner, len(rows))
	for i, r := range rows {
		p := domain.NewPartner(r.name, r.lead, r.invest, r.engage, r.size)
		p.StrategicAlignment = r.algn
		partners[i] = p
	}

	return partners
}
