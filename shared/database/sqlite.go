package database

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite"
)

// unicodeLower is registered on every SQLite connection. The built-in LOWER
// only folds ASCII, which would make "Zürich" and "zürich" different.
const unicodeLower = "unicode_lower"

func init() {
	err := sqlite.RegisterDeterministicScalarFunction(unicodeLower, 1,
		func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case nil:
				return nil, nil
			case string:
				return strings.ToLower(v), nil
			case []byte:
				return strings.ToLower(string(v)), nil
			default:
				return strings.ToLower(fmt.Sprint(v)), nil
			}
		},
	)
	if err != nil {
		panic(fmt.Sprintf("register %s: %v", unicodeLower, err))
	}
}

// LowerFunc names the SQL function that lower-cases text with Unicode case
// folding for the client's driver
func (c *Client) LowerFunc() string {
	if c.config.driverName() == DriverSQLite {
		return unicodeLower
	}
	return "LOWER"
}
