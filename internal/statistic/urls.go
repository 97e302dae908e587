package statistic

import "exportlens/internal/models"

const URLColumn = "Link"

// ExtractURLs returns the Link column in row order. Instagram tables carry
// href instead and are rejected with a *models.MissingColumnError.
func ExtractURLs(table *models.Table) ([]string, error) {
	return table.Values(URLColumn)
}
