package handler // handler defines http handlers

import (
    "context" // context carries request deadlines into repositories
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types
    "time"    // time bounds database calls

    "github.com/labstack/echo/v4" // echo defines request context types
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

// reqContext derives a bounded context from the incoming request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// getUserID extracts the user_id claim from echo.Context and converts it to
// uint64.  JWT numeric claims decode as float64; string subjects are parsed.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// toInt coerces a JSON value into an integer.  Clients send numeric car
// fields either as numbers or as strings, so both forms are accepted.
func toInt(v interface{}) (int, bool) {
    switch t := v.(type) {
    case float64:
        return int(t), true
    case int:
        return t, true
    case string:
        if n, err := strconv.Atoi(t); err == nil {
            return n, true
        }
    }
    return 0, false
}

// toFloat coerces a JSON value into a float64, accepting numbers and
// numeric strings.
func toFloat(v interface{}) (float64, bool) {
    switch t := v.(type) {
    case float64:
        return t, true
    case int:
        return float64(t), true
    case string:
        if f, err := strconv.ParseFloat(t, 64); err == nil {
            return f, true
        }
    }
    return 0, false
}

// toStr coerces a JSON value into a trimmed-or-raw string.  Only actual
// strings are accepted; anything else reports false.
func toStr(v interface{}) (string, bool) {
    s, ok := v.(string)
    return s, ok
}
