package list_orders

import (
	"net/url"
	"time"

	"github.com/m04kA/SCM-OrderService/internal/domain"
	"github.com/m04kA/SCM-OrderService/internal/service/orders/models"
)

// ParseQuery собирает фильтр выборки из query-параметров:
// ?unit=Crane&date=2025-06-01&status=Requested&includeInactive=true
func ParseQuery(query url.Values) (*models.ListOrdersRequest, error) {
	req := &models.ListOrdersRequest{
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if unit := query.Get("unit"); unit != "" {
		req.Unit = &unit
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
