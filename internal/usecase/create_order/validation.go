package create_order

import (
	"fmt"

	"github.com/m04kA/SCM-OrderService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrdererName == "" {
		return fmt.Errorf("%w: orderer name is required", ErrInvalidInput)
	}

	if len(req.Units) == 0 {
		return fmt.Errorf("%w: at least one unit is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(req.Units))
	for _, unit := range req.Units {
		if !domain.IsValidUnit(domain.UnitType(unit)) {
			return fmt.Errorf("%w: unknown unit %q", ErrInvalidInput, unit)
		}
		// Дубликаты техники гарантированно конфликтуют сами с собой
		if _, ok := seen[unit]; ok {
			return fmt.Errorf("%w: unit %q is selected twice", ErrInvalidInput, unit)
		}
		seen[unit] = struct{}{}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
