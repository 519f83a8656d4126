package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
)

var ErrNoIdentity = errors.New("no employee identity in token")

// EmployeeIDFromContext extracts the authenticated employee id from the
// verified token claims. JSON decoding may surface the id as any
// numeric type depending on how the token was encoded.
func EmployeeIDFromContext(ctx context.Context) (int64, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, err
	}

	switch v := claims["employee_id"].(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(v, 10, 64)
	}

	return 0, ErrNoIdentity
}
